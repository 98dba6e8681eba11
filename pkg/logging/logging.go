// Package logging builds the zap logger used for bbranch diagnostics.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvDebug enables debug output when set to a truthy value.
const EnvDebug = "BBRANCH_DEBUG"

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "scope",
	MessageKey:     "msg",
	StacktraceKey:  "stack",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
}

// New returns a console logger writing to w. Debug messages are emitted only
// when debug is true.
func New(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("bbranch")
}

// FromEnv returns a stderr logger configured by BBRANCH_DEBUG.
func FromEnv() *zap.Logger {
	return New(os.Stderr, DebugEnabled(os.Getenv(EnvDebug)))
}

// DebugEnabled reports whether value is one of 1, true, yes (any case).
func DebugEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
