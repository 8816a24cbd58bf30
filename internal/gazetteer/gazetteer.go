// Package gazetteer holds the static reference data used to recognise spoken
// locations and services: Indian states with their districts, and the service
// catalog with localized names and synonyms. It is loaded once and read-only
// afterwards, so a *Gazetteer is safe for concurrent use.
package gazetteer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed data.json
var bundled []byte

// State is a state with its districts.
type State struct {
	Name      string   `json:"name"`
	Districts []string `json:"districts"`
}

// Service is one entry of the service catalog.
type Service struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Localized map[string]string `json:"localized,omitempty"`
	Synonyms  []string          `json:"synonyms,omitempty"`
}

// Terms returns every phrase that identifies the service, name first.
func (s Service) Terms() []string {
	terms := make([]string, 0, 1+len(s.Localized)+len(s.Synonyms))
	terms = append(terms, s.Name)
	for _, l := range s.Localized {
		terms = append(terms, l)
	}
	return append(terms, s.Synonyms...)
}

// DistrictRef is a district together with the state it belongs to.
type DistrictRef struct {
	District string `json:"district"`
	State    string `json:"state"`
}

type Gazetteer struct {
	States   []State   `json:"states"`
	Services []Service `json:"services"`

	stateIdx    map[string]int
	districtIdx map[string]DistrictRef
	serviceIdx  map[string]int
}

// Load parses a gazetteer document.
func Load(r io.Reader) (*Gazetteer, error) {
	var g Gazetteer
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to decode gazetteer: %w", err)
	}
	if err := g.index(); err != nil {
		return nil, err
	}
	return &g, nil
}

// LoadFile parses the gazetteer at path.
func LoadFile(path string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gazetteer: %w", err)
	}
	defer f.Close()
	return Load(f)
}

var (
	defaultOnce sync.Once
	defaultGaz  *Gazetteer
)

// Default returns the gazetteer bundled into the binary.
func Default() *Gazetteer {
	defaultOnce.Do(func() {
		g, err := Load(strings.NewReader(string(bundled)))
		if err != nil {
			panic(fmt.Sprintf("bundled gazetteer is invalid: %v", err))
		}
		defaultGaz = g
	})
	return defaultGaz
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (g *Gazetteer) index() error {
	if len(g.States) == 0 {
		return fmt.Errorf("gazetteer has no states")
	}
	g.stateIdx = make(map[string]int, len(g.States))
	g.districtIdx = make(map[string]DistrictRef)
	for i, st := range g.States {
		if _, dup := g.stateIdx[key(st.Name)]; dup {
			return fmt.Errorf("duplicate state %q", st.Name)
		}
		g.stateIdx[key(st.Name)] = i
		for _, d := range st.Districts {
			// first state wins for district names shared across states
			if _, ok := g.districtIdx[key(d)]; !ok {
				g.districtIdx[key(d)] = DistrictRef{District: d, State: st.Name}
			}
		}
	}
	g.serviceIdx = make(map[string]int, len(g.Services))
	for i, s := range g.Services {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("service %d is missing id or name", i)
		}
		g.serviceIdx[s.ID] = i
	}
	return nil
}

// StateNames returns the state names in gazetteer order.
func (g *Gazetteer) StateNames() []string {
	names := make([]string, len(g.States))
	for i, s := range g.States {
		names[i] = s.Name
	}
	return names
}

// State looks a state up case-insensitively.
func (g *Gazetteer) State(name string) (State, bool) {
	i, ok := g.stateIdx[key(name)]
	if !ok {
		return State{}, false
	}
	return g.States[i], true
}

// Districts returns the districts of state, or false when the state is unknown.
func (g *Gazetteer) Districts(state string) ([]string, bool) {
	st, ok := g.State(state)
	if !ok {
		return nil, false
	}
	return st.Districts, true
}

// District looks a district up case-insensitively across all states.
func (g *Gazetteer) District(name string) (DistrictRef, bool) {
	ref, ok := g.districtIdx[key(name)]
	return ref, ok
}

// Service returns the catalog entry with the given id.
func (g *Gazetteer) Service(id string) (Service, bool) {
	i, ok := g.serviceIdx[id]
	if !ok {
		return Service{}, false
	}
	return g.Services[i], true
}
