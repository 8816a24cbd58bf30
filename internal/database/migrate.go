package database

import (
	"github.com/xpanvictor/quickpost/internal/repository/jobposting"
	"github.com/xpanvictor/quickpost/internal/repository/user"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.UserEntity{},
		&jobposting.JobPostingEntity{},
	)
}
