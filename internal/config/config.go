package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7000"`
	Storage    Storage `yaml:"storage"`
	Redis      Redis   `yaml:"redis"`
}

// Storage selects where sessions live while they are being played.
type Storage struct {
	Driver      string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	SessionTTL  time.Duration `yaml:"session-ttl" env:"STORAGE_SESSION_TTL" env-default:"1h"`
	MaxSessions int           `yaml:"max-sessions" env:"STORAGE_MAX_SESSIONS" env-default:"1024"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
