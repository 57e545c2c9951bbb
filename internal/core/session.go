package core

// Session is the state of one intake conversation: the chosen language, the
// append-only transcript and the cursor into the question script. It is not
// safe for concurrent use; callers serialize input per session.
type Session struct {
	scripts    Scripts
	language   Language
	transcript []Entry
	stage      int
	answers    int
}

// NewSession returns a session awaiting its language choice.
func NewSession(scripts Scripts) *Session {
	return &Session{scripts: scripts}
}

// SelectLanguage sets the session language. It can only succeed once.
func (s *Session) SelectLanguage(lang Language) error {
	if s.language != LanguageUnset {
		return ErrAlreadySelected
	}
	if !lang.valid() {
		return ErrUnknownLanguage
	}
	s.language = lang
	return nil
}

// Initialize seeds the transcript with the directive and the first scripted
// question.
func (s *Session) Initialize() error {
	if s.language == LanguageUnset {
		return ErrLanguageNotSelected
	}
	if s.Initialized() {
		return ErrAlreadyInitialized
	}
	s.transcript = []Entry{
		{Role: RoleDirective, Content: s.scripts.Directive(s.language)},
		{Role: RoleAssistant, Content: s.scripts.Questions(s.language)[0]},
	}
	s.stage = 0
	return nil
}

func (s *Session) Initialized() bool { return len(s.transcript) > 0 }

func (s *Session) Language() Language { return s.language }

func (s *Session) Stage() int { return s.stage }

// QuestionCount is N for this session's scripts.
func (s *Session) QuestionCount() int { return s.scripts.Len() }

// Len returns the number of transcript entries.
func (s *Session) Len() int { return len(s.transcript) }

// Transcript returns a copy of the transcript in order.
func (s *Session) Transcript() []Entry {
	out := make([]Entry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// State derives the state machine position from the stored data.
func (s *Session) State() State {
	switch {
	case !s.Initialized():
		return AwaitingLanguage
	case s.answers >= s.scripts.Len():
		return Concluded
	default:
		return Collecting
	}
}

// Last returns the most recent entry, if any.
func (s *Session) Last() (Entry, bool) {
	if len(s.transcript) == 0 {
		return Entry{}, false
	}
	return s.transcript[len(s.transcript)-1], true
}

func (s *Session) appendUser(content string) {
	s.transcript = append(s.transcript, Entry{Role: RoleUser, Content: content})
	s.answers++
}

func (s *Session) appendAssistant(content string) {
	s.transcript = append(s.transcript, Entry{Role: RoleAssistant, Content: content})
}

// advance moves to the next scripted question and appends it. It reports
// false once the script is exhausted.
func (s *Session) advance() bool {
	if s.stage >= s.scripts.Len()-1 {
		return false
	}
	s.stage++
	s.appendAssistant(s.scripts.Questions(s.language)[s.stage])
	return true
}
