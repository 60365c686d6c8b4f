package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsvc "showcase/internal/app"
	"showcase/internal/transport/http/middleware"
)

type AuthHandler struct {
	authService *appsvc.AuthService
	cookie      middleware.SessionCookie
	view        View
}

func NewAuthHandler(authService *appsvc.AuthService, cookie middleware.SessionCookie, view View) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		view:        view,
	}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "login.html", gin.H{"title": "Log in"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form appsvc.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form payload")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), form)
	if err != nil {
		fields, status := h.view.formErrors(c, "login failed", err)
		h.view.HTML(c, status, "login.html", gin.H{
			"title":    "Log in",
			"errors":   fields,
			"username": form.Username,
		})
		return
	}

	h.cookie.Set(c, result.Token)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "register.html", gin.H{"title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form appsvc.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form payload")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), form)
	if err != nil {
		fields, status := h.view.formErrors(c, "register failed", err)
		h.view.HTML(c, status, "register.html", gin.H{
			"title":    "Register",
			"errors":   fields,
			"username": form.Username,
			"email":    form.Email,
		})
		return
	}

	h.view.Logger.Info("account registered", zap.String("username", result.Account.AccountUsername()))
	h.cookie.Set(c, result.Token)
	c.Redirect(http.StatusFound, "/")
}

// Logout ends the current session only; other sessions of the same account
// stay valid.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		h.view.Logger.Warn("logout failed", zap.Error(err))
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}
