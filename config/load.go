package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads the toml configuration file into the defaults. Secrets can be
// overridden by environment variables, so they never need to live in the
// file.
func Load(path string) (*Configs, error) {
	configs := defaultConfigs()
	if path != "" {
		if _, err := toml.DecodeFile(path, configs); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		configs.Database.Password = v
	}

	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		configs.Auth.AccessToken.Secret = v
	}

	return configs, nil
}

func defaultConfigs() *Configs {
	return &Configs{
		Env: "local",
		ApiServer: ServerConfigs{
			Host:         "localhost",
			Port:         "8080",
			DefaultLimit: 20,
			MaxLimit:     50,
		},
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "pulsefeed",
			User:     "root",
		},
		Redis: RedisConfigs{
			Addr: "localhost:6379",
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Secret:     "token-secret",
				Expiration: 24 * time.Hour,
			},
		},
	}
}
