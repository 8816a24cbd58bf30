package jobposting

import (
	"context"
	"errors"
	"testing"
)

type memRepo struct {
	items map[string]*JobPosting
}

func (m *memRepo) Create(p *JobPosting) error {
	m.items[p.ID] = p
	return nil
}

func (m *memRepo) GetByID(id string) (*JobPosting, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, ErrJobPostingNotFound
	}
	return p, nil
}

func TestCreateJobPosting(t *testing.T) {
	repo := &memRepo{items: map[string]*JobPosting{}}
	svc := NewJobPostingService(repo, []string{"plumbing"}, nil)

	p, err := svc.Create(context.Background(), "client-1", CreateJobPostingRequest{
		Title:           "Plumbing service needed in Chennai",
		ServiceCategory: "plumbing",
		Budget:          "2000",
		Location:        "Anna Nagar, Chennai, Tamil Nadu",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != StatusOpen || p.Urgency != "medium" || p.Requirements == nil {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.ClientID != "client-1" {
		t.Errorf("clientId = %q", p.ClientID)
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil || got.Budget != "2000" {
		t.Errorf("Get = %+v, %v", got, err)
	}
}

func TestCreateRejectsUnknownService(t *testing.T) {
	svc := NewJobPostingService(&memRepo{items: map[string]*JobPosting{}}, []string{"plumbing"}, nil)
	_, err := svc.Create(context.Background(), "c", CreateJobPostingRequest{Title: "x", ServiceCategory: "astrology"})
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	svc := NewJobPostingService(&memRepo{items: map[string]*JobPosting{}}, nil, nil)
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrJobPostingNotFound) {
		t.Fatalf("got %v", err)
	}
}
