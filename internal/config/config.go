package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Server      Server      `yaml:"server"`
	Redis       Redis       `yaml:"redis"`
	Session     Session     `yaml:"session"`
	Negotiation Negotiation `yaml:"negotiation"`
}

type Server struct {
	APIURL         string        `yaml:"api-url" env:"ULTIMATEXO_API_URL" env-default:"http://localhost:8080/api"`
	SocketURL      string        `yaml:"socket-url" env:"ULTIMATEXO_SOCKET_URL" env-default:"ws://localhost:8080/ws"`
	DialTimeout    time.Duration `yaml:"dial-timeout" env-default:"10s"`
	RequestTimeout time.Duration `yaml:"request-timeout" env-default:"10s"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Session struct {
	// Store - "memory" keeps the seat for this process, "redis" across runs.
	Store       string        `yaml:"store" env:"ULTIMATEXO_SESSION_STORE" env-default:"memory"`
	ClientID    string        `yaml:"client-id" env:"ULTIMATEXO_CLIENT_ID"`
	TTL         time.Duration `yaml:"ttl" env-default:"24h"`
	ChatHistory int           `yaml:"chat-history" env-default:"100"`
}

type Negotiation struct {
	DrawAnswerTimeout    time.Duration `yaml:"draw-answer-timeout" env-default:"10s"`
	RematchAnswerTimeout time.Duration `yaml:"rematch-answer-timeout" env-default:"0s"`
	DeclineDisplay       time.Duration `yaml:"decline-display" env-default:"5s"`
	AcceptDisplay        time.Duration `yaml:"accept-display" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

// Validate - rejects values the client cannot work with.
func (that *Config) Validate() error {
	switch that.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("session.store must be %q or %q, got %q", StoreMemory, StoreRedis, that.Session.Store)
	}

	if that.Server.APIURL == "" || that.Server.SocketURL == "" {
		return fmt.Errorf("server.api-url and server.socket-url are required")
	}

	if that.Session.ChatHistory < 0 {
		return fmt.Errorf("session.chat-history must not be negative")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
