package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment. A missing
// Discord token is the only fatal startup condition.
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`
}

// New loads .env (if present) and parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
