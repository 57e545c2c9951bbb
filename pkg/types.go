package pkg

import "time"

// Entry is one transcript item as exposed by the JSON API. Role is one of
// "directive", "assistant" or "user".
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionView is the read-only snapshot a presentation layer renders from.
type SessionView struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Language      string    `json:"language,omitempty"`
	LanguageName  string    `json:"language_name,omitempty"`
	State         string    `json:"state"`
	Stage         int       `json:"stage"`
	QuestionCount int       `json:"question_count"`
	Transcript    []Entry   `json:"transcript"`
}

// CreateSessionRequest optionally picks the language while creating the
// session.
type CreateSessionRequest struct {
	Language string `json:"language,omitempty"`
}

type LanguageRequest struct {
	Language string `json:"language"`
}

// ChatRequest carries one patient utterance.
type ChatRequest struct {
	Content string `json:"content"`
}

// ChatResponse reports the reply appended for a ChatRequest. Ignored is set
// when the content was blank and nothing changed.
type ChatResponse struct {
	Reply     string      `json:"reply,omitempty"`
	Generated bool        `json:"generated"`
	Ignored   bool        `json:"ignored"`
	Session   SessionView `json:"session"`
}

// ErrorResponse carries a machine-readable error and, for generation
// failures, a message suitable for showing to the patient.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
