package config

import (
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the application.
type Config struct {
	Server      Server      `mapstructure:"server"`
	Storage     Storage     `mapstructure:"storage"`
	Compression Compression `mapstructure:"compression"`
	Kafka       Kafka       `mapstructure:"kafka"`
	Retry       Retry       `mapstructure:"retry"`
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort string `mapstructure:"http_port"` // HTTP port to listen on
}

// Storage holds configuration for the image store backend.
// Backend selects between the local filesystem ("local") and MinIO ("minio").
type Storage struct {
	Backend  string `mapstructure:"backend"`
	ImageDir string `mapstructure:"image_dir"` // base directory for the local backend

	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	BucketName string `mapstructure:"bucket_name"`
	UseSSL     bool   `mapstructure:"use_ssl"`
}

// Compression holds defaults for the compression endpoint.
type Compression struct {
	DefaultTargetSizeKB float64 `mapstructure:"default_target_size_kb"` // used when target_size_kb is absent
	DefaultQuality      int     `mapstructure:"default_quality"`        // base JPEG quality when quality is absent
	WatermarkFontPath   string  `mapstructure:"watermark_font_path"`    // TTF file for watermark text
}

// Kafka holds configuration for the compression event queue.
type Kafka struct {
	Enabled bool     `mapstructure:"enabled"` // publish events only when true
	Topic   string   `mapstructure:"topic"`   // Kafka topic name
	Brokers []string `mapstructure:"brokers"` // list of Kafka broker addresses
}

// Retry defines retry policy configuration.
type Retry struct {
	Attempts int           `mapstructure:"attempts"` // number of retry attempts
	Delay    time.Duration `mapstructure:"delay"`    // initial delay between retries
	Backoff  float64       `mapstructure:"backoff"`  // backoff multiplier for delays
}

// mustBindEnv binds critical environment variables to Viper keys.
//
// It panics if any environment variable cannot be bound.
func mustBindEnv() {
	bindings := map[string]string{
		"storage.endpoint":   "STORAGE_ENDPOINT",
		"storage.access_key": "STORAGE_ACCESS_KEY",
		"storage.secret_key": "STORAGE_SECRET_KEY",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			zlog.Logger.Panic().Err(err).Msgf("failed to bind env %s", env)
		}
	}
}

// MustLoad loads the configuration from the specified file path.
// It panics if the configuration file cannot be loaded or unmarshaled.
func MustLoad(path string) *Config {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("server.http_port", ":8080")
	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.image_dir", "./images")
	viper.SetDefault("compression.default_target_size_kb", 1024)
	viper.SetDefault("compression.default_quality", 85)

	if err := viper.ReadInConfig(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to read config")
	}

	mustBindEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msgf("failed to unmarshal config: %v", err)
	}

	return &cfg
}
