package database

import (
	"fmt"

	"github.com/ubuntu-bounty/crm/internal/common/config"
)

// NewStore creates a new store based on configuration
func NewStore(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "local":
		return NewLocal(&cfg.Local)
	case "", "db":
		switch cfg.Database.Type {
		case "postgres":
			return NewPostgres(&cfg.Database)
		case "sqlite":
			return NewSQLite(&cfg.Database)
		case "mysql":
			return NewMySQL(&cfg.Database)
		default:
			return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
		}
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
