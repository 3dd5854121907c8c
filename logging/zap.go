package logging

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a *zap.Logger to the Logger interface.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger wraps an existing zap logger. The wrapped core still applies its
// own level; SetLevel adds a second gate in front of it.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{
		logger: logger,
		level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

// NewJSONZapLogger builds a production-style JSON logger writing to w.
// A nil w writes to stderr.
func NewJSONZapLogger(w io.Writer, level Level) *ZapLogger {
	if w == nil {
		w = os.Stderr
	}
	atomic := zap.NewAtomicLevelAt(toZapLevel(level))
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		atomic,
	)
	return &ZapLogger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		level:  atomic,
	}
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func zapFields(fields []Fields) []zap.Field {
	var out []zap.Field
	for _, f := range fields {
		for k, v := range f {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}

func (z *ZapLogger) Debug(msg string, fields ...Fields) {
	if z.level.Enabled(zapcore.DebugLevel) {
		z.logger.Debug(msg, zapFields(fields)...)
	}
}

func (z *ZapLogger) Info(msg string, fields ...Fields) {
	if z.level.Enabled(zapcore.InfoLevel) {
		z.logger.Info(msg, zapFields(fields)...)
	}
}

func (z *ZapLogger) Warn(msg string, fields ...Fields) {
	if z.level.Enabled(zapcore.WarnLevel) {
		z.logger.Warn(msg, zapFields(fields)...)
	}
}

func (z *ZapLogger) Error(err error, msg string, fields ...Fields) {
	if z.level.Enabled(zapcore.ErrorLevel) {
		z.logger.Error(msg, append(zapFields(fields), zap.Error(err))...)
	}
}

func (z *ZapLogger) Fatal(err error, msg string, fields ...Fields) {
	z.logger.Fatal(msg, append(zapFields(fields), zap.Error(err))...)
}

func (z *ZapLogger) WithFields(fields Fields) Logger {
	return &ZapLogger{
		logger: z.logger.With(zapFields([]Fields{fields})...),
		level:  z.level,
	}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := FieldsFromContext(ctx); ok {
		return z.WithFields(fields)
	}
	return z
}

func (z *ZapLogger) SetLevel(level Level) {
	z.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered zap output.
func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}
