package jobposting

import (
	"errors"
	"fmt"

	"github.com/xpanvictor/quickpost/internal/domains/jobposting"
	"gorm.io/gorm"
)

type GormJobPostingRepo struct {
	db *gorm.DB
}

// Create implements jobposting.JobPostingRepository
func (g *GormJobPostingRepo) Create(p *jobposting.JobPosting) error {
	var entity JobPostingEntity
	entity.FromDomain(p)
	if err := g.db.Create(&entity).Error; err != nil {
		return fmt.Errorf("failed to create job posting: %w", err)
	}
	*p = *entity.ToDomain()
	return nil
}

// GetByID implements jobposting.JobPostingRepository
func (g *GormJobPostingRepo) GetByID(id string) (*jobposting.JobPosting, error) {
	var entity JobPostingEntity
	if err := g.db.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jobposting.ErrJobPostingNotFound
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return entity.ToDomain(), nil
}

func NewGormJobPostingRepo(db *gorm.DB) jobposting.JobPostingRepository {
	return &GormJobPostingRepo{db: db}
}
