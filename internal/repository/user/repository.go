package user

import (
	"errors"
	"fmt"

	"github.com/xpanvictor/quickpost/internal/domains/user"
	"gorm.io/gorm"
)

type GormUserRepo struct {
	db *gorm.DB
}

// Create implements user.UserRepository
func (g *GormUserRepo) Create(u *user.User) error {
	entity := NewUserEntityFromDomain(u)
	if err := g.db.Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrMobileAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Update domain object with any changes from database (like auto-generated fields)
	*u = *entity.ToDomain()
	return nil
}

// GetByID implements user.UserRepository
func (g *GormUserRepo) GetByID(id string) (*user.User, error) {
	var entity UserEntity
	if err := g.db.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return entity.ToDomain(), nil
}

// MobileExists implements user.UserRepository
func (g *GormUserRepo) MobileExists(mobile string) (bool, error) {
	var count int64
	if err := g.db.Model(&UserEntity{}).Where("mobile = ?", mobile).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check mobile existence: %w", err)
	}
	return count > 0, nil
}

// NewGormUserRepo creates a new GORM user repository
func NewGormUserRepo(db *gorm.DB) user.UserRepository {
	return &GormUserRepo{db: db}
}
