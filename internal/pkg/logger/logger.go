package logger

import (
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger

// Init builds the process-wide logger. Production environments get JSON
// output at info level, everything else gets the colored console encoder
// at debug level.
func Init(appEnv string) *zap.Logger {
	var cfg zap.Config

	if isProduction(appEnv) {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	global = l
	return l
}

// L returns the global logger, initializing a development one if Init was
// never called (tests).
func L() *zap.Logger {
	if global == nil {
		return Init("dev")
	}
	return global
}

func isProduction(appEnv string) bool {
	env := strings.ToLower(strings.TrimSpace(appEnv))
	return env == "prod" || env == "production" || env == "release"
}
