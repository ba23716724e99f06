// Package logger собирает zap-логгер сервиса из конфигурации.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Config задаёт уровень и формат логов.
type Config struct {
	Level    string `yaml:"level" json:"level" validate:"oneof=debug info warn error" default:"info"`
	Encoding string `yaml:"encoding" json:"encoding" validate:"oneof=json console" default:"json"`
}

// New строит логгер, пишущий в stdout (ошибки самого логгера — в stderr).
func New(cfg Config) (*zap.Logger, error) {
	zc, err := cfg.zapConfig()
	if err != nil {
		return nil, err
	}

	return zc.Build()
}

func (c Config) zapConfig() (*zap.Config, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.Level, err)
	}

	encoding := c.Encoding
	if encoding == "" {
		encoding = EncodingJSON
	}

	encodeLevel := zapcore.CapitalLevelEncoder
	if encoding == EncodingConsole {
		encodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return &zap.Config{
		Level:            level,
		Encoding:         encoding,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "file",
			TimeKey:        "time",
			EncodeLevel:    encodeLevel,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
	}, nil
}
