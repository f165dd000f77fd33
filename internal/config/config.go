package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs bearer tokens. Rotating it invalidates every
	// outstanding token, which is acceptable given the short lifetime.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the bearer token TTL in minutes.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}
