package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type AppConfig struct {
	ServerHost        string
	ServerPort        int
	ClientID          string
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
	AllowDestructive  bool
	AuthToken         string
	LogPath           string
}

var cfg AppConfig

func Init(path string) AppConfig {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// defaults
	v.SetDefault("agent.server.host", "127.0.0.1")
	v.SetDefault("agent.server.port", 9400)
	v.SetDefault("agent.client_id", "")
	v.SetDefault("agent.poll_interval_sec", 5)
	v.SetDefault("agent.heartbeat_interval_sec", 15)
	v.SetDefault("agent.allow_destructive", false)
	v.SetDefault("agent.auth_token", "")
	v.SetDefault("agent.log_path", "")
	_ = v.ReadInConfig()

	// environment overrides, matching the names lab operators already use
	v.SetEnvPrefix("labfleet")
	_ = v.BindEnv("agent.client_id", "LABFLEET_CLIENT_ID")
	_ = v.BindEnv("agent.auth_token", "LABFLEET_AUTH_TOKEN")

	cfg = AppConfig{
		ServerHost:        v.GetString("agent.server.host"),
		ServerPort:        v.GetInt("agent.server.port"),
		ClientID:          v.GetString("agent.client_id"),
		PollInterval:      time.Duration(v.GetInt("agent.poll_interval_sec")) * time.Second,
		HeartbeatInterval: time.Duration(v.GetInt("agent.heartbeat_interval_sec")) * time.Second,
		AllowDestructive:  v.GetBool("agent.allow_destructive"),
		AuthToken:         v.GetString("agent.auth_token"),
		LogPath:           v.GetString("agent.log_path"),
	}
	if cfg.ClientID == "" {
		cfg.ClientID = defaultClientID()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = 15 * time.Second
	}
	return cfg
}

func Get() AppConfig { return cfg }

func (c AppConfig) ServerURL() string {
	return fmt.Sprintf("http://%s:%d", c.ServerHost, c.ServerPort)
}

func defaultClientID() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "client-" + uuid.NewString()[:8]
}
