package db

import (
	"gorm.io/gorm"

	types "github.com/tanujaya/user-directory/internal/domain"
)

// AutoMigrateAll keeps the two-table schema current. Users must come
// before addresses so the cascade foreign key has a target.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},
		&types.Address{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
