package conversation

import (
	"fmt"
	"strings"
)

// Field is the piece of the job request a step fills in.
type Field string

const (
	FieldService     Field = "service"
	FieldState       Field = "state"
	FieldDistrict    Field = "district"
	FieldDescription Field = "description"
)

type Step struct {
	Index  int    `json:"index"`
	Field  Field  `json:"field"`
	Prompt string `json:"prompt"`
}

// Steps is the fixed question order. It is never modified at runtime.
var Steps = []Step{
	{Index: 0, Field: FieldService, Prompt: "Hello! What kind of service do you need today?"},
	{Index: 1, Field: FieldState, Prompt: "Which state do you need the service in?"},
	{Index: 2, Field: FieldDistrict, Prompt: "Which district is that in?"},
	{Index: 3, Field: FieldDescription, Prompt: "Please describe the work you need done."},
}

const (
	closingPrompt    = "Thank you. Your request is ready for review."
	exitPrompt       = "Sorry, I could not understand you. Please try again later or fill in the form instead."
	noSpeechPrefix   = "I didn't hear anything. "
	exhaustedToast   = "We couldn't understand the answer. Please use the form to continue."
	recognitionToast = "Voice recognition failed: %s"
)

func confirmationPrompt(value string) string {
	return fmt.Sprintf("Got it, %s.", value)
}

func didYouMeanPrompt(value string) string {
	return fmt.Sprintf("Did you mean %s? Please say yes or no.", value)
}

// examples renders up to three choices as "A, B or C".
func examples(choices []string) string {
	if len(choices) > 3 {
		choices = choices[:3]
	}
	switch len(choices) {
	case 0:
		return ""
	case 1:
		return choices[0]
	}
	return strings.Join(choices[:len(choices)-1], ", ") + " or " + choices[len(choices)-1]
}
