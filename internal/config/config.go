package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is shared by every Lambda in the repository. Each function only
// reads the sections it needs.
type Config struct {
	Log      Log      `yaml:"log"`
	Mail     Mail     `yaml:"mail"`
	Orders   Orders   `yaml:"orders"`
	EventBus EventBus `yaml:"event_bus"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Mail holds the transport settings. Username doubles as the notification
// recipient, so an empty Username disables notifications.
type Mail struct {
	Transport string `yaml:"transport" env:"MAIL_TRANSPORT" env-default:"smtp"`
	Service   string `yaml:"service" env:"MAIL_SERVICE" env-default:"gmail"`
	Host      string `yaml:"host" env:"MAIL_HOST"`
	Port      int    `yaml:"port" env:"MAIL_PORT"`
	Username  string `yaml:"username" env:"gmail_email"`
	Password  string `yaml:"password" env:"gmail_password"`
	FromName  string `yaml:"from_name" env:"MAIL_FROM_NAME" env-default:"BintaM"`
	Timeout   int    `yaml:"timeout_seconds" env:"MAIL_TIMEOUT_SECONDS" env-default:"10"`
}

type Orders struct {
	TableName string `yaml:"table_name" env:"TABLE_NAME" env-default:"orders"`
	KeyName   string `yaml:"key_name" env:"ORDERS_KEY" env-default:"orderId"`
}

type EventBus struct {
	Name       string `yaml:"name" env:"EVENT_BUS_NAME" env-default:"DDBStreamCustomEventBus"`
	Source     string `yaml:"source" env:"EVENT_SOURCE" env-default:"orders.stream"`
	DetailType string `yaml:"detail_type" env:"EVENT_DETAIL_TYPE" env-default:"OrderChanged"`
}

// Recipient is the address notifications are sent to.
func (m Mail) Recipient() string {
	return m.Username
}

// New loads config.yaml when present and lets the environment override it.
func New() (*Config, error) {
	return Load("config.yaml")
}

func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config error: %w", err)
		}
		// fallback to env vars if file not found
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	return cfg, nil
}
