package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsvc "showcase/internal/app"
	"showcase/internal/model"
	"showcase/internal/session"
)

const (
	ContextSessionKey = "session"
	ContextAccountKey = "account"

	LoginPath = "/login"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, model.Authenticatable, error)
}

// SessionCookie describes the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge int
}

func (sc SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, sc.MaxAge, "/", "", sc.Secure, true)
}

func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// LoadSession attaches the caller's session and account to the context when
// the cookie holds a live session. A rejected cookie is cleared. Store errors
// leave the cookie in place and the request continues anonymously.
func LoadSession(auth Authenticator, cookie SessionCookie, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, account, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, appsvc.ErrUnauthenticated) {
				cookie.Clear(c)
			} else {
				logger.Warn("resolve session failed", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Set(ContextAccountKey, account)
		c.Next()
	}
}

// RequireLogin redirects callers without a session to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentAccount(c) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole lets through accounts holding role and hands everyone else who
// is logged in to forbidden. Anonymous callers are redirected to login.
func RequireRole(role string, forbidden gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := CurrentAccount(c)
		if account == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		holder, ok := account.(model.RoleHolder)
		if !ok || !holder.HasRole(role) {
			forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentAccount(c *gin.Context) model.Authenticatable {
	value, exists := c.Get(ContextAccountKey)
	if !exists {
		return nil
	}
	account, _ := value.(model.Authenticatable)
	return account
}

func CurrentSession(c *gin.Context) *session.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, _ := value.(*session.Session)
	return sess
}
