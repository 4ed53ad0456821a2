package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	DBHost         string `mapstructure:"POSTGRES_HOST"`
	DBPort         string `mapstructure:"POSTGRES_PORT"`
	DBUser         string `mapstructure:"POSTGRES_USER"`
	DBPassword     string `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string `mapstructure:"POSTGRES_DB"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	Secret   string        `mapstructure:"SECRET"`
	TokenTTL time.Duration `mapstructure:"TOKEN_TTL"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost      string `mapstructure:"MAIL_HOST"`
	MailPort      int    `mapstructure:"MAIL_PORT"`
	MailUser      string `mapstructure:"MAIL_USER"`
	MailPassword  string `mapstructure:"MAIL_PASSWORD"`
	MailSender    string `mapstructure:"MAIL_SENDER"`
	MailRecipient string `mapstructure:"MAIL_RECIPIENT"`

	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`
	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
}

var defaults = map[string]any{
	"PORT":               "3003",
	"ENVIRONMENT":        "development",
	"VERSION":            "1.0.0",
	"TLS_CERT_FILE":      "",
	"TLS_KEY_FILE":       "",
	"TRUSTED_ORIGINS":    []string{},
	"POSTGRES_HOST":      "localhost",
	"POSTGRES_PORT":      "5432",
	"POSTGRES_USER":      "postgres",
	"POSTGRES_PASSWORD":  "",
	"POSTGRES_DB":        "bloglist",
	"MIGRATIONS_PATH":    "file://migrations",
	"SECRET":             "",
	"TOKEN_TTL":          "24h",
	"RABBITMQ_HOST":      "localhost",
	"RABBITMQ_PORT":      "5672",
	"RABBITMQ_USER":      "guest",
	"RABBITMQ_PASSWORD":  "guest",
	"MAIL_HOST":          "localhost",
	"MAIL_PORT":          25,
	"MAIL_USER":          "",
	"MAIL_PASSWORD":      "",
	"MAIL_SENDER":        "Bloglist <no-reply@bloglist.local>",
	"MAIL_RECIPIENT":     "",
	"RATE_LIMIT_RPS":     2,
	"RATE_LIMIT_BURST":   4,
	"RATE_LIMIT_ENABLED": true,
}

var ErrMissingSecret = errors.New("SECRET must be set")

// loadConfig reads the dotenv file at path, then lets environment variables override it.
// A missing file is not an error so the service can be configured from the environment alone.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Secret == "" {
		return nil, ErrMissingSecret
	}

	return &config, nil
}
