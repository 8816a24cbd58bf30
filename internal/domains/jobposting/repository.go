package jobposting

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen Status = "open"
)

// JobPosting is a published job request.
// @Description Job posting created from a voice request
type JobPosting struct {
	ID               string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientID         string    `json:"clientId" example:"550e8400-e29b-41d4-a716-446655440001"`
	Title            string    `json:"title" example:"Plumbing service needed in Chennai"`
	Description      string    `json:"description" example:"I need a plumber in Anna Nagar"`
	ServiceCategory  string    `json:"serviceCategory" example:"plumbing"`
	Urgency          string    `json:"urgency" example:"high"`
	Budget           string    `json:"budget,omitempty" example:"2000"`
	Location         string    `json:"location,omitempty" example:"Anna Nagar, Chennai, Tamil Nadu"`
	Requirements     []string  `json:"requirements"`
	Timeframe        string    `json:"timeframe,omitempty" example:"today"`
	OriginalLanguage string    `json:"originalLanguage,omitempty" example:"en"`
	Status           Status    `json:"status" example:"open"`
	CreatedAt        time.Time `json:"createdAt" example:"2023-01-01T12:00:00Z"`
}

// CreateJobPostingRequest carries an extracted job with budget and location
// already flattened to strings.
// @Description Request body for creating a job posting
type CreateJobPostingRequest struct {
	Title            string   `json:"title" binding:"required,max=200" example:"Plumbing service needed in Chennai"`
	Description      string   `json:"description" binding:"max=4000" example:"I need a plumber in Anna Nagar"`
	ServiceCategory  string   `json:"serviceCategory" binding:"required" example:"plumbing"`
	Urgency          string   `json:"urgency" binding:"omitempty,oneof=low medium high" example:"high"`
	Budget           string   `json:"budget" binding:"max=50" example:"2000"`
	Location         string   `json:"location" binding:"max=300" example:"Anna Nagar, Chennai, Tamil Nadu"`
	Requirements     []string `json:"requirements"`
	Timeframe        string   `json:"timeframe" binding:"max=100" example:"today"`
	OriginalLanguage string   `json:"originalLanguage" example:"en"`
}

func NewJobPosting(clientID string, req CreateJobPostingRequest) *JobPosting {
	urgency := req.Urgency
	if urgency == "" {
		urgency = "medium"
	}
	reqs := req.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return &JobPosting{
		ID:               uuid.New().String(),
		ClientID:         clientID,
		Title:            req.Title,
		Description:      req.Description,
		ServiceCategory:  req.ServiceCategory,
		Urgency:          urgency,
		Budget:           req.Budget,
		Location:         req.Location,
		Requirements:     reqs,
		Timeframe:        req.Timeframe,
		OriginalLanguage: req.OriginalLanguage,
		Status:           StatusOpen,
		CreatedAt:        time.Now(),
	}
}

type JobPostingRepository interface {
	Create(p *JobPosting) error
	GetByID(id string) (*JobPosting, error)
}
