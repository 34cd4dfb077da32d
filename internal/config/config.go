package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	ServerPort   string
	AuthCacheTTL time.Duration
}

// Load reads configs/config.yaml when present and lets environment
// variables override it (DB_HOST beats db.host, and so on).
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.name", "askmate")
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("auth.cache_ttl", "5m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("no config.yaml found, using environment variables and defaults")
	}

	ttl, err := time.ParseDuration(viper.GetString("auth.cache_ttl"))
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Config{
		DBHost:       viper.GetString("db.host"),
		DBPort:       viper.GetString("db.port"),
		DBUser:       viper.GetString("db.user"),
		DBPassword:   viper.GetString("db.password"),
		DBName:       viper.GetString("db.name"),
		DBSSLMode:    viper.GetString("db.sslmode"),
		ServerPort:   viper.GetString("server.port"),
		AuthCacheTTL: ttl,
	}
}
