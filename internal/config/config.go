package config

// Config holds all application configuration.
// It is loaded once at process start and treated as immutable afterwards.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// CORSOrigin is the frontend origin allowed to call the API with
	// credentials. Empty disables CORS headers entirely.
	CORSOrigin string `mapstructure:"cors_origin" validate:"omitempty,url"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication settings: the JWT signing secret,
// the token lifetime, and how the token travels (cookie name and flags).
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"        validate:"required,min=32"`
	TokenTTLSeconds int    `mapstructure:"token_ttl_seconds" validate:"required,gt=0"`
	CookieName      string `mapstructure:"cookie_name"       validate:"required"`

	// CookieSecure controls the Secure flag on the session cookie.
	// Keep false only for local HTTP development.
	CookieSecure bool `mapstructure:"cookie_secure"`
}
