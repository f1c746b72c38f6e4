package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Cache       CacheConfig       `mapstructure:"cache"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Aggregation AggregationConfig `mapstructure:"aggregation" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn" validate:"required"`
}

// CacheConfig holds the snapshot cache settings. The cache is optional: with
// Enabled false the service recomputes every snapshot from the store.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Addr       string `mapstructure:"addr" validate:"required_if=Enabled true"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"required_if=Enabled true"`
}

// FileStorageConfig holds the raw batch archive location.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// AggregationConfig holds aggregation configuration.
type AggregationConfig struct {
	DefaultWindow  string  `mapstructure:"default_window" validate:"required,oneof=1h 24h 7d 30d"`
	MaxRows        int     `mapstructure:"max_rows" validate:"required,min=1"`
	TopN           int     `mapstructure:"top_n" validate:"required,min=1"`
	JitterGreenMs  float64 `mapstructure:"jitter_green_ms" validate:"required,gt=0"`
	JitterYellowMs float64 `mapstructure:"jitter_yellow_ms" validate:"required,gt=0"`
}
