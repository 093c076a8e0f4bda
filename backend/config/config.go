package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string // "sqlite" or "mysql"
	Path   string // sqlite file path
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type Liveness struct {
	Threshold time.Duration
}

type Artifacts struct {
	Dir string
}

type Config struct {
	HTTP      HTTP
	DB        DB
	Liveness  Liveness
	Artifacts Artifacts
	APIToken  string
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("backend.host", "127.0.0.1")
	v.SetDefault("backend.port", 9400)
	v.SetDefault("backend.db.driver", "sqlite")
	v.SetDefault("backend.db.path", "labfleet.db")
	v.SetDefault("backend.db.host", "127.0.0.1")
	v.SetDefault("backend.db.port", 3306)
	v.SetDefault("backend.db.user", "root")
	v.SetDefault("backend.db.pass", "")
	v.SetDefault("backend.db.name", "labfleet")
	v.SetDefault("backend.liveness.threshold_sec", 60)
	v.SetDefault("backend.artifacts.dir", "artifacts")
	v.SetDefault("backend.api_token", "")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("backend.host"), Port: v.GetInt("backend.port")},
		DB: DB{
			Driver: v.GetString("backend.db.driver"),
			Path:   v.GetString("backend.db.path"),
			Host:   v.GetString("backend.db.host"),
			Port:   v.GetInt("backend.db.port"),
			User:   v.GetString("backend.db.user"),
			Pass:   v.GetString("backend.db.pass"),
			Name:   v.GetString("backend.db.name"),
		},
		Liveness:  Liveness{Threshold: time.Duration(v.GetInt("backend.liveness.threshold_sec")) * time.Second},
		Artifacts: Artifacts{Dir: v.GetString("backend.artifacts.dir")},
		APIToken:  v.GetString("backend.api_token"),
	}
	if cfg.Liveness.Threshold <= 0 {
		cfg.Liveness.Threshold = 60 * time.Second
	}
	return cfg, nil
}
