package core

// HistoryLine is one labelled line of the conversation history shown next to
// the chat.
type HistoryLine struct {
	Prefix  string
	Content string
	IsUser  bool
}

// History renders the visible part of the transcript with language-specific
// speaker prefixes. The directive is never shown.
func History(sess *Session) []HistoryLine {
	lang := sess.Language()
	entries := sess.Transcript()
	lines := make([]HistoryLine, 0, len(entries))
	for _, e := range entries {
		switch e.Role {
		case RoleUser:
			lines = append(lines, HistoryLine{Prefix: UserPrefix(lang), Content: e.Content, IsUser: true})
		case RoleAssistant:
			lines = append(lines, HistoryLine{Prefix: AssistantPrefix(lang), Content: e.Content})
		}
	}
	return lines
}
