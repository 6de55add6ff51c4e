package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLevelMapping(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{LevelInfo, zapcore.InfoLevel},
		{LevelWarn, zapcore.WarnLevel},
		{LevelError, zapcore.ErrorLevel},
		{"bogus", zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := &zapLogger{cfg: &ZapConfig{Level: tt.level}}
			assert.Equal(t, tt.want, l.level())
		})
	}
}

func TestWithAttachesContextLogger(t *testing.T) {
	logger := Init(ZapConfig{Level: LevelError, Mode: ModeProduction, Encoding: EncodingJSON})
	zl := logger.(*zapLogger)

	ctx := logger.With(context.Background(), "user_id", "42")
	assert.NotSame(t, zl.sugarLogger, zl.ctx(ctx))
	assert.Same(t, zl.sugarLogger, zl.ctx(context.Background()))
}

func TestNilContextPanics(t *testing.T) {
	logger := Init(ZapConfig{Level: LevelError, Encoding: EncodingJSON}).(*zapLogger)
	assert.Panics(t, func() {
		//nolint:staticcheck
		logger.ctx(nil)
	})
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()
	ctx := context.Background()
	assert.Equal(t, ctx, logger.With(ctx, "k", "v"))
	assert.NotPanics(t, func() { logger.Errorf(ctx, "boom %d", 1) })
}
