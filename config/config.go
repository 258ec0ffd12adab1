package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

type ServerConfig struct {
	Address  string `mapstructure:"address"`
	HTTPPort string `mapstructure:"http_port"`
}

type DatabaseConfig struct {
	// Driver: "postgres" | "mysql" | "sqlite"
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type StorageConfig struct {
	// UploadsDir — where uploaded app artifacts land on disk; served
	// back at /uploads/apps/.
	UploadsDir     string `mapstructure:"uploads_dir"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

type SimulatorConfig struct {
	InstallDelay time.Duration `mapstructure:"install_delay"`
}

// Load reads devicelab.yaml (or the explicit path) with DEVICELAB_* env
// overrides on top.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEVICELAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "devicelab.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("storage.uploads_dir", "uploads/apps")
	v.SetDefault("storage.max_upload_bytes", 104857600) // 100 MiB
	v.SetDefault("simulator.install_delay", "2s")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("devicelab")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/devicelab")
		if err := v.ReadInConfig(); err != nil {
			// missing config file is fine, defaults + env apply
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
