package extract

import (
	"context"
	"errors"

	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

// DemoJob is the placeholder returned in demo mode. It is always tagged
// voice.SourceDemo.
var DemoJob = voice.ExtractedJob{
	Title:            "Plumber needed for leaking kitchen tap",
	Description:      "Demo request: the kitchen tap is leaking and needs to be fixed.",
	ServiceCategory:  "plumbing",
	Urgency:          voice.UrgencyMedium,
	Budget:           &voice.Budget{Min: 500, Max: 1000},
	Location:         voice.Location{Area: "Anna Nagar", District: "Chennai", State: "Tamil Nadu"},
	Requirements:     []string{},
	Timeframe:        "this week",
	OriginalLanguage: voice.LangEnglish,
}

// DemoUser is the placeholder returned in demo mode.
var DemoUser = voice.ExtractedUser{
	FirstName: "Demo",
	LastName:  "User",
	Location:  voice.Location{District: "Chennai", State: "Tamil Nadu"},
}

// Tagged adapts an Extractor to voice.Extractor. With demo enabled, an
// extraction failure yields the demo record tagged voice.SourceDemo; without
// it the failure propagates.
type Tagged struct {
	inner  Extractor
	demo   bool
	logger *Logger.Logger
}

func Genuine(e Extractor) *Tagged {
	return &Tagged{inner: e, logger: Logger.NewNop()}
}

func WithDemoFallback(e Extractor, logger *Logger.Logger) *Tagged {
	if logger == nil {
		logger = Logger.NewNop()
	}
	return &Tagged{inner: e, demo: true, logger: logger}
}

func (t *Tagged) ExtractJob(ctx context.Context, tr voice.Transcript) (voice.JobResult, error) {
	job, err := t.inner.ExtractJob(ctx, tr)
	if err == nil {
		return voice.JobResult{Job: job, Source: voice.SourceGenuine}, nil
	}
	if !t.demo || !errors.Is(err, voice.ErrExtractionFailed) || ctx.Err() != nil {
		return voice.JobResult{}, err
	}
	t.logger.Warnf("job extraction failed, serving demo record: %v", err)
	demo := DemoJob
	budget := *DemoJob.Budget
	demo.Budget = &budget
	demo.Requirements = []string{}
	return voice.JobResult{Job: demo, Source: voice.SourceDemo}, nil
}

func (t *Tagged) ExtractUser(ctx context.Context, tr voice.Transcript) (voice.UserResult, error) {
	user, err := t.inner.ExtractUser(ctx, tr)
	if err == nil {
		return voice.UserResult{User: user, Source: voice.SourceGenuine}, nil
	}
	if !t.demo || !errors.Is(err, voice.ErrExtractionFailed) || ctx.Err() != nil {
		return voice.UserResult{}, err
	}
	t.logger.Warnf("user extraction failed, serving demo record: %v", err)
	return voice.UserResult{User: DemoUser, Source: voice.SourceDemo}, nil
}
