package jobposting

import (
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/quickpost/internal/domains/jobposting"
	"gorm.io/gorm"
)

type JobPostingEntity struct {
	ID               string         `gorm:"primaryKey;type:char(36);not null"`
	ClientID         string         `gorm:"type:char(36);not null;index"`
	Title            string         `gorm:"type:varchar(200);not null"`
	Description      string         `gorm:"type:text"`
	ServiceCategory  string         `gorm:"type:varchar(64);not null;index"`
	Urgency          string         `gorm:"type:varchar(16);not null"`
	Budget           string         `gorm:"type:varchar(50)"`
	Location         string         `gorm:"type:varchar(300)"`
	Requirements     []string       `gorm:"serializer:json;type:json"`
	Timeframe        string         `gorm:"type:varchar(100)"`
	OriginalLanguage string         `gorm:"type:varchar(8)"`
	Status           string         `gorm:"type:varchar(16);not null;default:open"`
	CreatedAt        time.Time      `gorm:"autoCreateTime(3)"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime(3)"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (JobPostingEntity) TableName() string {
	return "job_postings"
}

func (e *JobPostingEntity) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

func (e *JobPostingEntity) ToDomain() *jobposting.JobPosting {
	reqs := e.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return &jobposting.JobPosting{
		ID:               e.ID,
		ClientID:         e.ClientID,
		Title:            e.Title,
		Description:      e.Description,
		ServiceCategory:  e.ServiceCategory,
		Urgency:          e.Urgency,
		Budget:           e.Budget,
		Location:         e.Location,
		Requirements:     reqs,
		Timeframe:        e.Timeframe,
		OriginalLanguage: e.OriginalLanguage,
		Status:           jobposting.Status(e.Status),
		CreatedAt:        e.CreatedAt,
	}
}

func (e *JobPostingEntity) FromDomain(p *jobposting.JobPosting) {
	e.ID = p.ID
	e.ClientID = p.ClientID
	e.Title = p.Title
	e.Description = p.Description
	e.ServiceCategory = p.ServiceCategory
	e.Urgency = p.Urgency
	e.Budget = p.Budget
	e.Location = p.Location
	e.Requirements = p.Requirements
	e.Timeframe = p.Timeframe
	e.OriginalLanguage = p.OriginalLanguage
	e.Status = string(p.Status)
	e.CreatedAt = p.CreatedAt
}
