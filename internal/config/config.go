// Package config loads application configuration.
//
// PRECEDENCE (viper handles this for us): environment variables beat the
// optional config file, which beats the built-in defaults. Every key is
// reachable as FITNESS_<SECTION>_<KEY>, e.g.
//
//	FITNESS_SERVER_ADDR=:9000
//	FITNESS_DATABASE_PATH=/var/lib/fitness/prod.db
//	FITNESS_MODEL_PATH=/etc/fitness/calories_model.json
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Model struct {
		Path string
	}
	Log struct {
		Level string
	}
}

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FITNESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", "data/fitness.db")
	v.SetDefault("model.path", "data/calories_model.json")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshaling: %w", err)
	}

	return cfg, nil
}
