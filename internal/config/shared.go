package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"server"`
	Database struct {
		Driver   string `mapstructure:"driver"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		Path     string `mapstructure:"path"`
	} `mapstructure:"database"`
	Auth struct {
		JWTSecret     string `mapstructure:"jwt_secret"`
		TokenTTLHours int    `mapstructure:"token_ttl_hours"`
		AdminUser     string `mapstructure:"admin_user"`
		AdminPassword string `mapstructure:"admin_password"`
	} `mapstructure:"auth"`
	Browse struct {
		SampleLimit     int    `mapstructure:"sample_limit"`
		RefreshInterval int    `mapstructure:"refresh_interval_seconds"`
		RulesFile       string `mapstructure:"rules_file"`
		MinShelfSize    int    `mapstructure:"min_shelf_size"`
	} `mapstructure:"browse"`
	Storage struct {
		Provider string `mapstructure:"provider"`
		LocalDir string `mapstructure:"local_dir"`
		KeyID    string `mapstructure:"key_id"`
		AppKey   string `mapstructure:"app_key"`
		Endpoint string `mapstructure:"endpoint"`
		Region   string `mapstructure:"region"`
		Bucket   string `mapstructure:"bucket"`
	} `mapstructure:"storage"`
	Importer struct {
		MusicDir             string `mapstructure:"music_dir"`
		Enrich               bool   `mapstructure:"enrich"`
		Watch                bool   `mapstructure:"watch"`
		WatchIntervalSeconds int    `mapstructure:"watch_interval_seconds"`
	} `mapstructure:"importer"`
	Agent struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"agent"`
}

func Load() *Config {
	viper.SetEnvPrefix("ORCHIDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.log_level")

	viper.BindEnv("database.driver")
	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")
	viper.BindEnv("database.path")

	viper.BindEnv("auth.jwt_secret")
	viper.BindEnv("auth.token_ttl_hours")
	viper.BindEnv("auth.admin_user")
	viper.BindEnv("auth.admin_password")

	// Browse Config Bindings
	viper.BindEnv("browse.sample_limit")
	viper.BindEnv("browse.refresh_interval_seconds")
	viper.BindEnv("browse.rules_file")
	viper.BindEnv("browse.min_shelf_size")

	viper.BindEnv("storage.provider")
	viper.BindEnv("storage.local_dir")
	viper.BindEnv("storage.key_id")
	viper.BindEnv("storage.app_key")
	viper.BindEnv("storage.endpoint")
	viper.BindEnv("storage.region")
	viper.BindEnv("storage.bucket")

	viper.BindEnv("importer.music_dir")
	viper.BindEnv("importer.enrich")
	viper.BindEnv("importer.watch")
	viper.BindEnv("importer.watch_interval_seconds")

	viper.BindEnv("agent.api_key")
	viper.BindEnv("agent.model")

	// Defaults
	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.log_level", "info")

	// SQLite out of the box; point driver at postgres/sqlserver for real deployments.
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "orchids.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")

	viper.SetDefault("auth.token_ttl_hours", 72)
	viper.SetDefault("auth.admin_user", "admin")

	viper.SetDefault("browse.sample_limit", 50)
	viper.SetDefault("browse.refresh_interval_seconds", 5)
	viper.SetDefault("browse.min_shelf_size", 6)

	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local_dir", "./covers")

	viper.SetDefault("importer.music_dir", "./music")
	viper.SetDefault("importer.enrich", true)
	viper.SetDefault("importer.watch", false)
	viper.SetDefault("importer.watch_interval_seconds", 60)

	viper.SetDefault("agent.model", "gemini-2.0-flash")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	switch cfg.Database.Driver {
	case "sqlite", "postgres", "sqlserver":
	default:
		log.Fatalf("Critical: unsupported database driver %q (ORCHIDS_DATABASE_DRIVER)", cfg.Database.Driver)
	}

	return &cfg
}
