package core

import "errors"

var (
	// ErrAlreadySelected is returned when a language is chosen twice.
	ErrAlreadySelected = errors.New("language already selected")
	// ErrNotInitialized is returned by Accept before Initialize.
	ErrNotInitialized = errors.New("session not initialized")
	// ErrLanguageNotSelected is returned by Initialize before SelectLanguage.
	ErrLanguageNotSelected = errors.New("language not selected")
	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("session already initialized")
	ErrUnknownLanguage    = errors.New("unknown language")

	// Generation failures. These are recoverable: the user's entry stays in
	// the transcript and the next Accept retries.
	ErrServiceUnavailable   = errors.New("generation service unavailable")
	ErrAuthenticationFailed = errors.New("generation service authentication failed")
	ErrGenerationTimeout    = errors.New("generation timed out")
)

// IsRecoverable reports whether err is a generation failure the user can
// retry by resubmitting.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrAuthenticationFailed) ||
		errors.Is(err, ErrGenerationTimeout)
}
