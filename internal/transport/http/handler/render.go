package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsvc "showcase/internal/app"
	"showcase/internal/model"
	"showcase/internal/transport/http/middleware"
)

const generalErrorMessage = "An unexpected error occurred"

var errBadID = errors.New("invalid id")

// View renders the embedded page templates with the data every page shares.
type View struct {
	AppName string
	Variant string
	Logger  *zap.Logger
}

func (v View) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["appName"] = v.AppName
	data["variant"] = v.Variant
	if account := middleware.CurrentAccount(c); account != nil {
		data["account"] = account
		data["canAdmin"] = canAdmin(account)
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = appsvc.FieldErrors{}
	}
	c.HTML(status, name, data)
}

// Forbidden renders the 403 page shown to accounts lacking a role.
func (v View) Forbidden(c *gin.Context) {
	v.HTML(c, http.StatusForbidden, "forbidden.html", gin.H{"title": "Forbidden"})
}

func (v View) NotFound(c *gin.Context) {
	v.HTML(c, http.StatusNotFound, "error.html", gin.H{
		"title":   "Not found",
		"message": "The requested item does not exist.",
	})
}

// Failure logs err and renders the generic error page.
func (v View) Failure(c *gin.Context, msg string, err error) {
	v.Logger.Error(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
	_ = c.Error(err)
	v.HTML(c, http.StatusInternalServerError, "error.html", gin.H{
		"title":   "Error",
		"message": generalErrorMessage,
	})
}

// formErrors splits err into field messages to re-render with (status 200)
// or a storage failure, logged and reported under "general" (status 500).
func (v View) formErrors(c *gin.Context, msg string, err error) (appsvc.FieldErrors, int) {
	if fields, ok := appsvc.FieldErrorsOf(err); ok {
		return fields, http.StatusOK
	}
	v.Logger.Error(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
	_ = c.Error(err)
	return appsvc.FieldErrors{"general": generalErrorMessage}, http.StatusInternalServerError
}

// canAdmin reports whether the admin link applies to account. Accounts
// without roles may use the admin page once logged in.
func canAdmin(account model.Authenticatable) bool {
	holder, ok := account.(model.RoleHolder)
	return !ok || holder.HasRole(model.RoleAdmin)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errBadID
	}
	return uint(id), nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
