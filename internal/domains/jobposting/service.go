package jobposting

import (
	"context"
	"errors"
	"fmt"

	"github.com/xpanvictor/quickpost/pkg/Logger"
)

var (
	ErrJobPostingNotFound = errors.New("job posting not found")
	ErrUnknownService     = errors.New("unknown service category")
)

type JobPostingService interface {
	Create(ctx context.Context, clientID string, req CreateJobPostingRequest) (*JobPosting, error)
	Get(ctx context.Context, id string) (*JobPosting, error)
}

type jobPostingService struct {
	repository JobPostingRepository
	services   map[string]struct{}
	logger     *Logger.Logger
}

// Create implements JobPostingService
func (s *jobPostingService) Create(ctx context.Context, clientID string, req CreateJobPostingRequest) (*JobPosting, error) {
	if s.services != nil {
		if _, ok := s.services[req.ServiceCategory]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, req.ServiceCategory)
		}
	}

	posting := NewJobPosting(clientID, req)
	if err := s.repository.Create(posting); err != nil {
		s.logger.Errorf("error creating job posting: %v", err)
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}

	s.logger.Infof("job posting created: %s (%s) by %s", posting.ID, posting.ServiceCategory, clientID)
	return posting, nil
}

// Get implements JobPostingService
func (s *jobPostingService) Get(ctx context.Context, id string) (*JobPosting, error) {
	return s.repository.GetByID(id)
}

// NewJobPostingService builds the service. serviceIDs limits the accepted
// categories; nil accepts any.
func NewJobPostingService(repository JobPostingRepository, serviceIDs []string, logger *Logger.Logger) JobPostingService {
	if logger == nil {
		logger = Logger.NewNop()
	}
	var services map[string]struct{}
	if len(serviceIDs) > 0 {
		services = make(map[string]struct{}, len(serviceIDs))
		for _, id := range serviceIDs {
			services[id] = struct{}{}
		}
	}
	return &jobPostingService{repository: repository, services: services, logger: logger}
}
