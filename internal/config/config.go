package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sir_venger/images_lite/internal/logger"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "./config.yaml"

type Config struct {
	ListenAddr      string        `yaml:"listen_addr" json:"listen_addr" default:"127.0.0.1:8080" validate:"required"`
	FilesDir        string        `yaml:"files_dir" json:"files_dir" default:"./files" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" default:"15s" validate:"gt=0"`
	// MaxUploadBytes ограничивает размер загрузки; 0 — без ограничения.
	MaxUploadBytes int64         `yaml:"max_upload_bytes" json:"max_upload_bytes" validate:"gte=0"`
	Gops           bool          `yaml:"gops" json:"gops"`
	Log            logger.Config `yaml:"log" json:"log"`
}

// Load читает YAML-конфигурацию, применяет дефолты и ENV-переопределения, затем валидирует результат.
func Load() (*Config, error) {
	// .env необязателен.
	_ = godotenv.Load()

	path := getenv("CONFIG_PATH", defaultConfigPath)
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && os.Getenv("CONFIG_PATH") == "":
		// Без файла по умолчанию работаем на дефолтах и ENV.
		b = nil
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(b)
}

// Parse разбирает YAML (допускается пустой), подставляя ${VAR} из окружения.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyEnv() error {
	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("FILES_DIR"); v != "" {
		c.FilesDir = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_ENCODING"); v != "" {
		c.Log.Encoding = strings.ToLower(v)
	}

	return nil
}

// Validate проверяет теги validate и перечисляет все невалидные поля.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	failed := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		failed = append(failed, fmt.Sprintf("%s: %s", fe.Namespace(), tag))
	}

	return fmt.Errorf("invalid config fields: %s", strings.Join(failed, ", "))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
