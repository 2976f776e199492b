package database

import (
	"fmt"

	"github.com/ubuntu-bounty/crm/internal/common/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL creates a Store backed by MySQL
func NewMySQL(cfg *config.DatabaseConfig) (Store, error) {
	gormDB, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newGormStore(gormDB)
}
