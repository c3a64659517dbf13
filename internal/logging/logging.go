package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BuildDevelopmentLogger logs human-readable lines to stderr.
func BuildDevelopmentLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return config.Build()
}

// BuildProductionLogger logs JSON lines to outputFilePath.
func BuildProductionLogger(outputFilePath string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{outputFilePath}
	return cfg.Build()
}

// Build picks the production logger when a file path is given.
func Build(outputFilePath string) (*zap.Logger, error) {
	if outputFilePath != "" {
		return BuildProductionLogger(outputFilePath)
	}
	return BuildDevelopmentLogger()
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
