package core

import "strings"

// Language is the conversation language chosen once per session.
type Language int

const (
	LanguageUnset Language = iota
	English
	Urdu
)

// String returns the display name used in the language banner.
func (l Language) String() string {
	switch l {
	case English:
		return "English"
	case Urdu:
		return "Urdu"
	default:
		return "unset"
	}
}

// Code returns the short code used by the JSON API and CLI flags.
func (l Language) Code() string {
	switch l {
	case English:
		return "en"
	case Urdu:
		return "ur"
	default:
		return ""
	}
}

func (l Language) valid() bool { return l == English || l == Urdu }

// ParseLanguage maps user input such as "en", "English" or "اردو" to a
// Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english":
		return English, nil
	case "ur", "urdu", "اردو":
		return Urdu, nil
	}
	return LanguageUnset, ErrUnknownLanguage
}

// Role tags an Entry. Rendering and model mapping branch on it.
type Role string

const (
	RoleDirective Role = "directive"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Entry is one transcript item.
type Entry struct {
	Role    Role
	Content string
}

// State is the position of a session in the intake state machine.
type State int

const (
	AwaitingLanguage State = iota
	Collecting
	Concluded
)

func (s State) String() string {
	switch s {
	case AwaitingLanguage:
		return "awaiting_language"
	case Collecting:
		return "collecting"
	case Concluded:
		return "concluded"
	default:
		return "unknown"
	}
}
