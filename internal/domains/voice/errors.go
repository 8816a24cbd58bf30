package voice

import "errors"

// Failure taxonomy of the intake pipeline. Callers match with errors.Is; the
// concrete cause is wrapped underneath.
var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUnsupportedDevice   = errors.New("unsupported device")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrNetwork             = errors.New("network error")
	ErrValidation          = errors.New("validation error")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
