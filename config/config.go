package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type config struct {
	AppConfig  AppConfig  `yaml:"app"`
	DBConfig   DBConfig   `yaml:"db"`
	ChatConfig ChatConfig `yaml:"chat"`
}

type AppConfig struct {
	LogLevel string `yaml:"log_level" env-default:"debug"`
}

type ChatConfig struct {
	Addr            string `yaml:"addr" env:"CHAT_ADDR" env-default:"127.0.0.1:5555"`
	MetricsAddr     string `yaml:"metrics_addr" env:"CHAT_METRICS_ADDR" env-default:""`
	MetricsUser     string `yaml:"metrics_user" env:"CHAT_METRICS_USER" env-default:""`
	MetricsPassword string `yaml:"metrics_password" env:"CHAT_METRICS_PASSWORD" env-default:""`
}

type DBConfig struct {
	User     string `yaml:"user" env:"DB_USERNAME" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env:"DB_NAME" env-required:"true"`
	Host     string `yaml:"host" env:"DB_HOST" env-required:"true"`
	Port     int    `yaml:"port" env:"DB_PORT" env-required:"true"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSLMODE" env-default:"disable"`
}

func FromFile(filepath string) (*config, error) {
	var cfg config

	err := cleanenv.ReadConfig(filepath, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
