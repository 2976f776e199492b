package database

import (
	"fmt"

	"github.com/ubuntu-bounty/crm/internal/common/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres creates a Store backed by PostgreSQL
func NewPostgres(cfg *config.DatabaseConfig) (Store, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newGormStore(gormDB)
}
