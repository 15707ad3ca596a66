package configs

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/chenders/deadonfilm/configs/loader"
	"github.com/go-playground/validator/v10"
)

type TMDBConfig struct {
	Token    string `validate:"required"`
	Path     string `validate:"required"`
	Language string
}

type RedisConfig struct {
	Host         string `validate:"required"`
	DB           int
	User         string
	Password     string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

type TelegramConfig struct {
	Token             string        `validate:"required"`
	ConnectionTimeout time.Duration `validate:"required"`
}

type NecrologyConfig struct {
	Path string `validate:"required"`
	Seed string
}

type SearchConfig struct {
	Timeout time.Duration `validate:"required"`
}

type Config struct {
	TMDB   TMDBConfig
	TG     TelegramConfig
	RD     RedisConfig
	NC     NecrologyConfig
	Search SearchConfig
	Env    string
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", "dev", "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := &Config{
		TMDB: TMDBConfig{
			Token:    envs["TMDB_TOKEN"],
			Path:     envs["TMDB_PATH"],
			Language: getEnvOrDefault(envs["TMDB_LANGUAGE"], "ru-RU"),
		},
		TG: TelegramConfig{
			Token:             envs["TELEGRAM_TOKEN"],
			ConnectionTimeout: getEnvAsDuration(envs["TELEGRAM_CONNECTION_TIMEOUT"], 5*time.Second),
		},
		RD: RedisConfig{
			Host:         envs["REDIS_HOST"],
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			User:         envs["REDIS_USER"],
			Password:     envs["REDIS_PASSWORD"],
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
			CacheTTL:     getEnvAsDuration(envs["REDIS_CACHE_TTL"], 24*time.Hour),
		},
		NC: NecrologyConfig{
			Path: envs["NECROLOGY_PATH"],
			Seed: envs["NECROLOGY_SEED"],
		},
		Search: SearchConfig{
			Timeout: getEnvAsDuration(envs["SEARCH_TIMEOUT"], 90*time.Second),
		},
		Env: *env,
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("%s: config validation failed: %+v", op, err)
	}

	return cfg
}

func validateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("missing required configuration: %w", err)
	}
	return nil
}

func getEnvOrDefault(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}
