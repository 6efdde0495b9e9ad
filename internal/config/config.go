package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Straico   StraicoConfig   `yaml:"straico"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Limits    LimitsConfig    `yaml:"limits"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"300"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"linkmark"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
}

// StraicoConfig holds settings for the Straico AI gateway client.
// API keys are per-user and live in user settings, not here.
type StraicoConfig struct {
	BaseURL     string        `yaml:"base_url"     env:"STRAICO_BASE_URL"     env-default:"https://api.straico.com"`
	Timeout     time.Duration `yaml:"timeout"      env:"STRAICO_TIMEOUT"      env-default:"60s"`
	Temperature float64       `yaml:"temperature"  env:"STRAICO_TEMPERATURE"  env-default:"0.7"`
	MaxTokens   int           `yaml:"max_tokens"   env:"STRAICO_MAX_TOKENS"   env-default:"1024"`
}

// AnalyticsConfig holds settings for the best-effort event recorder.
type AnalyticsConfig struct {
	QueueSize    int           `yaml:"queue_size"    env:"ANALYTICS_QUEUE_SIZE"    env-default:"256"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"ANALYTICS_WRITE_TIMEOUT" env-default:"5s"`
}

// LimitsConfig caps per-user collection sizes.
type LimitsConfig struct {
	MaxBookmarksPerUser  int `yaml:"max_bookmarks_per_user"  env:"LIMITS_MAX_BOOKMARKS_PER_USER"  env-default:"10000"`
	MaxCategoriesPerUser int `yaml:"max_categories_per_user" env:"LIMITS_MAX_CATEGORIES_PER_USER" env-default:"100"`
	MaxTagsPerUser       int `yaml:"max_tags_per_user"       env:"LIMITS_MAX_TAGS_PER_USER"       env-default:"500"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
