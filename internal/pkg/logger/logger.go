package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/obrastat/obrastat/internal/pkg/constants"
)

var global *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	global = l.Sugar()
}

// SetLogger replaces the package logger, e.g. with a development config.
func SetLogger(l *zap.Logger) {
	global = l.Sugar()
}

// with attaches request-scoped fields carried in ctx.
func with(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return global
	}
	if reqID, ok := ctx.Value(constants.CtxKeyRequestID).(string); ok && reqID != "" {
		return global.With("request_id", reqID)
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	with(ctx).Debugf(format, args...)
}

func Info(ctx context.Context, args ...interface{}) {
	with(ctx).Info(args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	with(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	with(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, args ...interface{}) {
	with(ctx).Error(args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	with(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, args ...interface{}) {
	with(ctx).Fatal(args...)
}
