package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"9090"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	Secret           string `env:"SECRET,required"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	RabbitmqURL                  string `env:"RABBITMQ_URL,required"`
	RabbitmqPasswordChangedQueue string `env:"RABBITMQ_PASSWORD_CHANGED_QUEUE" envDefault:"password_changed"`

	PasswordResetValidDurationHours int           `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"1"`
	PasswordResetSweepPeriod        time.Duration `env:"PASSWORD_RESET_SWEEP_PERIOD" envDefault:"10m"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	AwsRegion    string `env:"AWS_REGION,required"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey string `env:"AWS_SECRET_KEY,required"`

	AwsEmailSender                  string  `env:"AWS_EMAIL_SENDER,required"`
	AwsEmailActivateAccountTemplate string  `env:"AWS_EMAIL_ACTIVATE_ACCOUNT_TEMPLATE" envDefault:"authflow-activate-account"`
	AwsEmailPasswordResetTemplate   string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"authflow-password-reset"`
	AwsEmailPasswordChangedTemplate string  `env:"AWS_EMAIL_PASSWORD_CHANGED_TEMPLATE" envDefault:"authflow-password-changed"`
	AwsEmailActivationUrl           url.URL `env:"AWS_EMAIL_ACTIVATION_URL,required"`
	AwsEmailPasswordResetUrl        url.URL `env:"AWS_EMAIL_PASSWORD_RESET_URL,required"`
}

func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config, opts); err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if config.PasswordResetValidDurationHours <= 0 {
		return nil, fmt.Errorf("PASSWORD_RESET_VALID_DURATION_HOURS must be positive, got %d", config.PasswordResetValidDurationHours)
	}
	if config.PasswordResetSweepPeriod <= 0 {
		return nil, fmt.Errorf("PASSWORD_RESET_SWEEP_PERIOD must be positive, got %s", config.PasswordResetSweepPeriod)
	}
	return config, nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}
