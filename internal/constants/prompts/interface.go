package prompts

import (
	"fmt"
	"strings"
)

type PromptDefinition struct {
	Content string
	Version float32
}

type SYS_PROMPT struct {
	Intent         string
	CurrentVersion float32
	Items          map[float32]PromptDefinition // version-content
}

func (sp *SYS_PROMPT) GetVersion(version float32) (PromptDefinition, bool) {
	i, ok := sp.Items[version]
	return i, ok
}

func (sp *SYS_PROMPT) GetCurrentPrompt() PromptDefinition {
	return sp.Items[sp.CurrentVersion]
}

// Render fills the prompt's %s placeholder with the allowed service ids.
func (pd PromptDefinition) Render(serviceIDs []string) string {
	if !strings.Contains(pd.Content, "%s") {
		return pd.Content
	}
	return fmt.Sprintf(pd.Content, strings.Join(serviceIDs, ", "))
}
