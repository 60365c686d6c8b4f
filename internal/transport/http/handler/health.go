package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"showcase/internal/bootstrap"
)

const healthTimeout = 2 * time.Second

var errConnClosed = errors.New("connection closed")

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty"`
}

// A disabled dependency counts as healthy.
var disabledDependency = dependencyStatus{OK: true}

func statusOf(err error) dependencyStatus {
	if err != nil {
		return dependencyStatus{Enabled: true, Message: err.Error()}
	}
	return dependencyStatus{OK: true, Enabled: true}
}

// dependencyCheck returns nil when the dependency is switched off, otherwise a check.
type dependencyCheck func(*bootstrap.App) func(context.Context) error

var dependencyChecks = map[string]dependencyCheck{
	"database": databaseCheck,
	"redis":    redisCheck,
	"rabbitmq": rabbitMQCheck,
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	deps := make(gin.H, len(dependencyChecks))
	statusCode := http.StatusOK
	for name, dc := range dependencyChecks {
		status := disabledDependency
		if check := dc(h.app); check != nil {
			status = statusOf(check(ctx))
		}
		if !status.OK {
			statusCode = http.StatusServiceUnavailable
		}
		deps[name] = status
	}

	c.JSON(statusCode, gin.H{
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"variant":      h.app.Config.App.Variant,
		"uptime_sec":   int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": deps,
	})
}

func databaseCheck(app *bootstrap.App) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := app.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// Sessions live in process memory when Redis is off.
func redisCheck(app *bootstrap.App) func(context.Context) error {
	if app.Redis == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return app.Redis.Ping(ctx).Err()
	}
}

func rabbitMQCheck(app *bootstrap.App) func(context.Context) error {
	if !app.Config.RabbitMQ.Enabled {
		return nil
	}
	return func(context.Context) error {
		if app.MQConn == nil || app.MQConn.IsClosed() {
			return errConnClosed
		}
		return nil
	}
}
