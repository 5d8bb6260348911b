package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string `mapstructure:"LISTEN_ADDR"`
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	GinMode        string `mapstructure:"GIN_MODE"`
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	StorageDriver  string `mapstructure:"STORAGE_DRIVER"`
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	UploadURLPath  string `mapstructure:"UPLOAD_URL_PATH"`
	S3Bucket       string `mapstructure:"S3_BUCKET"`
	S3Region       string `mapstructure:"S3_REGION"`
	S3Endpoint     string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey    string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey    string `mapstructure:"S3_SECRET_KEY"`
	S3PublicURL    string `mapstructure:"S3_PUBLIC_URL"`
}

var configKeys = []string{
	"LISTEN_ADDR", "PORT", "APP_ENV", "GIN_MODE",
	"DATABASE_DRIVER", "DATABASE_PATH", "DATABASE_URL",
	"JWT_SECRET", "FRONTEND_URL", "ALLOWED_ORIGINS", "REDIS_URL",
	"STORAGE_DRIVER", "UPLOAD_DIR", "UPLOAD_URL_PATH",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_PUBLIC_URL",
}

// Load 从环境变量（以及可选的 config.yml）读取应用配置，缺失项使用默认值，
// 并在返回前执行 Validate。
func Load() (AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return AppConfig{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_PATH", "wakja.db")
	v.SetDefault("STORAGE_DRIVER", StorageLocal)
	v.SetDefault("UPLOAD_DIR", "web/static/uploads")
	v.SetDefault("UPLOAD_URL_PATH", "/static/uploads")
	v.SetDefault("S3_BUCKET", "post-images")
	v.SetDefault("S3_REGION", "us-east-1")

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = fmt.Sprintf(":%s", c.Port)
	}
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.FrontendURL = strings.TrimRight(strings.TrimSpace(c.FrontendURL), "/")
	c.UploadURLPath = "/" + strings.Trim(strings.TrimSpace(c.UploadURLPath), "/")
}

// IsProduction reports whether secure cookies and strict checks apply.
func (c AppConfig) IsProduction() bool {
	return c.Env == EnvProduction || c.Env == "prod"
}

// Origins returns the CORS allow-list: the local frontend, FRONTEND_URL and
// any comma separated ALLOWED_ORIGINS entries, de-duplicated.
func (c AppConfig) Origins() []string {
	seen := make(map[string]struct{})
	origins := make([]string, 0, 4)
	add := func(raw string) {
		origin := strings.TrimRight(strings.TrimSpace(raw), "/")
		if origin == "" {
			return
		}
		if _, ok := seen[origin]; ok {
			return
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}

	add("http://localhost:3000")
	add(c.FrontendURL)
	for _, item := range strings.Split(c.AllowedOrigins, ",") {
		add(item)
	}
	return origins
}

// Validate ensures required values are present. The signing secret has no
// fallback: a missing JWT_SECRET stops the process at startup.
func (c AppConfig) Validate() error {
	if c.Port == "" && c.ListenAddr == "" {
		return errors.New("PORT or LISTEN_ADDR is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.DatabasePath) == "" {
			return errors.New("DATABASE_PATH is required for sqlite")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.StorageDriver {
	case StorageLocal:
		if strings.TrimSpace(c.UploadDir) == "" {
			return errors.New("UPLOAD_DIR is required for local storage")
		}
	case StorageS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return errors.New("S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	return nil
}
