package ollama

import "testing"

func TestNewRequiresServers(t *testing.T) {
	if _, err := New(nil, "llama3.1:8b-instruct", nil); err == nil {
		t.Fatal("expected error without servers")
	}
}

func TestName(t *testing.T) {
	c := &Completer{model: "llama3.1:8b-instruct"}
	if c.Name() != "ollama:llama3.1:8b-instruct" {
		t.Errorf("name = %q", c.Name())
	}
}
