package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 30)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure environment variables with BOOKMART_ prefix
	v.SetEnvPrefix("BOOKMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables so they are picked up
	// even when no config file sets the corresponding keys.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "BOOKMART_SERVER_PORT"},
		{"server.log_level", "BOOKMART_SERVER_LOG_LEVEL"},
		{"database.url", "BOOKMART_DATABASE_URL"},
		{"auth.jwt_secret", "BOOKMART_AUTH_JWT_SECRET"},
		{"auth.token_lifetime_minutes", "BOOKMART_AUTH_TOKEN_LIFETIME_MINUTES"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
