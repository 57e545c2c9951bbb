package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scripts holds the question script and directive for each language. A
// Scripts value is built once at startup and never modified afterwards.
type Scripts struct {
	English          []string `yaml:"english"`
	Urdu             []string `yaml:"urdu"`
	DirectiveEnglish string   `yaml:"directive_english"`
	DirectiveUrdu    string   `yaml:"directive_urdu"`
}

// DefaultScripts returns the built-in five question MediBot scripts.
func DefaultScripts() Scripts {
	return Scripts{
		English:          append([]string(nil), QuestionsEnglish...),
		Urdu:             append([]string(nil), QuestionsUrdu...),
		DirectiveEnglish: DirectiveEnglish,
		DirectiveUrdu:    DirectiveUrdu,
	}
}

// LoadScripts reads a YAML override of the default scripts. Missing
// directives fall back to the built-in ones; question lists are required.
func LoadScripts(path string) (Scripts, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scripts{}, fmt.Errorf("read scripts file: %w", err)
	}
	var s Scripts
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Scripts{}, fmt.Errorf("parse scripts file: %w", err)
	}
	if s.DirectiveEnglish == "" {
		s.DirectiveEnglish = DirectiveEnglish
	}
	if s.DirectiveUrdu == "" {
		s.DirectiveUrdu = DirectiveUrdu
	}
	if err := s.Validate(); err != nil {
		return Scripts{}, err
	}
	return s, nil
}

// Validate checks that both scripts are non-empty and of equal length.
func (s Scripts) Validate() error {
	if len(s.English) == 0 || len(s.Urdu) == 0 {
		return fmt.Errorf("scripts: question lists must not be empty")
	}
	if len(s.English) != len(s.Urdu) {
		return fmt.Errorf("scripts: english has %d questions, urdu has %d", len(s.English), len(s.Urdu))
	}
	return nil
}

// Len is N, the number of scripted questions.
func (s Scripts) Len() int { return len(s.English) }

// Questions returns the script for lang.
func (s Scripts) Questions(lang Language) []string {
	if lang == Urdu {
		return s.Urdu
	}
	return s.English
}

// Directive returns the persona instruction for lang.
func (s Scripts) Directive(lang Language) string {
	if lang == Urdu {
		return s.DirectiveUrdu
	}
	return s.DirectiveEnglish
}
