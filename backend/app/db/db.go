package db

import (
	"fmt"

	"labfleet/backend/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the command store database. sqlite is the default for
// single-node labs; mysql is available for shared deployments.
func Connect(cfg config.DB) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}
