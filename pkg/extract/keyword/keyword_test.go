package keyword

import (
	"context"
	"errors"
	"testing"

	"github.com/xpanvictor/quickpost/internal/domains/voice"
)

func TestExtractJobScenario(t *testing.T) {
	e := New(nil)
	tr := voice.Transcript{
		Text:             "I need a plumber in Anna Nagar, Chennai, Tamil Nadu, budget 2000, urgent",
		DetectedLanguage: voice.LangEnglish,
	}

	job, err := e.ExtractJob(context.Background(), tr)
	if err != nil {
		t.Fatalf("ExtractJob: %v", err)
	}
	if job.ServiceCategory != "plumbing" {
		t.Errorf("serviceCategory = %q", job.ServiceCategory)
	}
	if job.Urgency != voice.UrgencyHigh {
		t.Errorf("urgency = %q", job.Urgency)
	}
	want := voice.Location{Area: "Anna Nagar", District: "Chennai", State: "Tamil Nadu"}
	if job.Location != want {
		t.Errorf("location = %+v, want %+v", job.Location, want)
	}
	if job.Budget == nil || job.Budget.String() != "2000" {
		t.Errorf("budget = %+v", job.Budget)
	}
	if job.Description != tr.Text || job.OriginalLanguage != voice.LangEnglish {
		t.Errorf("description/language not carried: %+v", job)
	}
	if job.Title == "" {
		t.Error("title is empty")
	}
}

func TestExtractJobFailsOnEmptyOrGarbled(t *testing.T) {
	e := New(nil)
	for _, text := range []string{"", "   ", "zxqv brrgl mmph"} {
		_, err := e.ExtractJob(context.Background(), voice.Transcript{Text: text})
		if !errors.Is(err, voice.ErrExtractionFailed) {
			t.Errorf("%q: got %v, want ErrExtractionFailed", text, err)
		}
	}
}

func TestUrgencyAndBudgetVariants(t *testing.T) {
	e := New(nil)
	cases := []struct {
		text    string
		urgency voice.Urgency
		budget  string
	}{
		{"need an electrician, not urgent, around 500 to 800 rupees", voice.UrgencyLow, "500-800"},
		{"painter needed next week", voice.UrgencyMedium, ""},
		{"carpenter jaldi chahiye, Rs 1,500", voice.UrgencyHigh, "1500"},
	}
	for _, tc := range cases {
		job, err := e.ExtractJob(context.Background(), voice.Transcript{Text: tc.text})
		if err != nil {
			t.Errorf("%q: %v", tc.text, err)
			continue
		}
		if job.Urgency != tc.urgency {
			t.Errorf("%q: urgency = %q, want %q", tc.text, job.Urgency, tc.urgency)
		}
		if got := job.Budget.String(); got != tc.budget {
			t.Errorf("%q: budget = %q, want %q", tc.text, got, tc.budget)
		}
	}
}

func TestDistrictImpliesState(t *testing.T) {
	job, err := New(nil).ExtractJob(context.Background(), voice.Transcript{Text: "cleaner needed in Salem tomorrow"})
	if err != nil {
		t.Fatal(err)
	}
	if job.Timeframe != "tomorrow" {
		t.Errorf("timeframe = %q", job.Timeframe)
	}

	job, err = New(nil).ExtractJob(context.Background(), voice.Transcript{Text: "cleaner needed, Salem"})
	if err != nil {
		t.Fatal(err)
	}
	if job.Location.District != "Salem" || job.Location.State != "Tamil Nadu" {
		t.Errorf("location = %+v", job.Location)
	}
}

func TestExtractUser(t *testing.T) {
	e := New(nil)
	tr := voice.Transcript{Text: "My name is Ravi Kumar, mobile 98765 43210, I live in Salem, Tamil Nadu"}

	user, err := e.ExtractUser(context.Background(), tr)
	if err != nil {
		t.Fatalf("ExtractUser: %v", err)
	}
	if user.FirstName != "Ravi" || user.LastName != "Kumar" {
		t.Errorf("name = %q %q", user.FirstName, user.LastName)
	}
	if user.Mobile != "9876543210" {
		t.Errorf("mobile = %q", user.Mobile)
	}
	if user.Location.District != "Salem" || user.Location.State != "Tamil Nadu" {
		t.Errorf("location = %+v", user.Location)
	}
}

func TestExtractUserSkipsFillerWords(t *testing.T) {
	user, err := New(nil).ExtractUser(context.Background(), voice.Transcript{Text: "I am from Pune. my name is priya and I clean houses"})
	if err != nil {
		t.Fatal(err)
	}
	if user.FirstName != "Priya" || user.LastName != "" {
		t.Errorf("name = %q %q", user.FirstName, user.LastName)
	}
}

func TestExtractUserWithoutName(t *testing.T) {
	_, err := New(nil).ExtractUser(context.Background(), voice.Transcript{Text: "hello hello"})
	if !errors.Is(err, voice.ErrExtractionFailed) {
		t.Fatalf("got %v", err)
	}
}

func TestExtractJobIgnoresWordFragments(t *testing.T) {
	job, err := New(nil).ExtractJob(context.Background(), voice.Transcript{Text: "I need a professional electrician for the final fitting"})
	if err != nil {
		t.Fatalf("ExtractJob: %v", err)
	}
	if job.ServiceCategory != "electrical" {
		t.Errorf("serviceCategory = %q, want electrical", job.ServiceCategory)
	}
}
