package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func statement() (string, int64) {
	return "SELECT * FROM users", 1
}

func TestGormLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Gorm(zap.New(core))
	ctx := context.Background()

	l.Trace(ctx, time.Now(), statement, errors.New("no such table: users"))
	l.Trace(ctx, time.Now().Add(-2*slowQueryThreshold), statement, nil)
	l.Trace(ctx, time.Now(), statement, gorm.ErrRecordNotFound)
	l.Trace(ctx, time.Now(), statement, nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "query failed", entries[0].Message)
	assert.Equal(t, "gorm", entries[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "slow query", entries[1].Message)
}

func TestGormLoggerModes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := Gorm(zap.New(core))
	ctx := context.Background()

	base.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), statement, errors.New("boom"))
	assert.Zero(t, logs.Len())

	base.LogMode(gormlogger.Info).Trace(ctx, time.Now(), statement, nil)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	assert.Equal(t, "SELECT * FROM users", logs.All()[0].ContextMap()["sql"])
}
