package matching

import (
	"testing"

	"github.com/xpanvictor/quickpost/internal/gazetteer"
)

func TestMatchService(t *testing.T) {
	t.Parallel()
	services := gazetteer.Default().Services
	cases := []struct {
		utterance string
		want      string
		ok        bool
	}{
		{"I need a plumber", "plumbing", true},
		{"Plumbing", "plumbing", true},
		{"mujhe bijli ka kaam chahiye", "electrical", true},
		{"सफाई", "cleaning", true},
		{"my washing machine is broken", "appliance_repair", true},
		{"paint", "painting", true},
		{"astrology reading", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		svc, ok := MatchService(c.utterance, services)
		if ok != c.ok || svc.ID != c.want {
			t.Errorf("MatchService(%q) = %q, %v; want %q, %v", c.utterance, svc.ID, ok, c.want, c.ok)
		}
	}
}

func TestMatchServiceWholeWords(t *testing.T) {
	t.Parallel()
	services := gazetteer.Default().Services
	cases := map[string]string{
		"I need a professional electrician":         "electrical",
		"a painter for the national highway office": "painting",
		"final cleaning of my house":                "cleaning",
		"I want someone to clean my infant room":    "cleaning",
		"two plumbers for the new flat":             "plumbing",
	}
	for utterance, want := range cases {
		svc, ok := MatchService(utterance, services)
		if !ok || svc.ID != want {
			t.Errorf("MatchService(%q) = %q, %v; want %q", utterance, svc.ID, ok, want)
		}
	}

	if svc, ok := MatchService("the national anthem", services); ok {
		t.Errorf("word fragment matched %q", svc.ID)
	}
}

func TestMatchServiceFirstWins(t *testing.T) {
	t.Parallel()
	services := []gazetteer.Service{
		{ID: "a", Name: "Alpha", Synonyms: []string{"repair"}},
		{ID: "b", Name: "Beta", Synonyms: []string{"repair"}},
	}
	svc, ok := MatchService("need repair", services)
	if !ok || svc.ID != "a" {
		t.Errorf("got %q, %v; want first catalog entry", svc.ID, ok)
	}
}

func TestIsAffirmative(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"yes":           true,
		"Yes, correct.": true,
		"haan ji":       true,
		"aamam":         true,
		"no":            false,
		"yes no":        false,
		"Salem":         false,
		"":              false,
	}
	for in, want := range cases {
		if got := IsAffirmative(in); got != want {
			t.Errorf("IsAffirmative(%q) = %v, want %v", in, got, want)
		}
	}
}
