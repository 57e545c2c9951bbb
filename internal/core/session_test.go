package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StartsAwaitingLanguage(t *testing.T) {
	s := NewSession(DefaultScripts())
	assert.Equal(t, AwaitingLanguage, s.State())
	assert.Equal(t, LanguageUnset, s.Language())
	assert.False(t, s.Initialized())
	assert.Zero(t, s.Len())
	_, ok := s.Last()
	assert.False(t, ok)
}

func TestSession_SelectLanguageOnce(t *testing.T) {
	s := NewSession(DefaultScripts())
	require.NoError(t, s.SelectLanguage(Urdu))

	err := s.SelectLanguage(English)
	require.ErrorIs(t, err, ErrAlreadySelected)
	assert.Equal(t, Urdu, s.Language())
}

func TestSession_SelectLanguageRejectsUnknown(t *testing.T) {
	s := NewSession(DefaultScripts())
	require.ErrorIs(t, s.SelectLanguage(LanguageUnset), ErrUnknownLanguage)
	require.ErrorIs(t, s.SelectLanguage(Language(42)), ErrUnknownLanguage)
	assert.Equal(t, LanguageUnset, s.Language())
}

func TestSession_Initialize(t *testing.T) {
	tests := []struct {
		lang      Language
		directive string
		first     string
	}{
		{English, DirectiveEnglish, QuestionsEnglish[0]},
		{Urdu, DirectiveUrdu, QuestionsUrdu[0]},
	}
	for _, tt := range tests {
		t.Run(tt.lang.String(), func(t *testing.T) {
			s := NewSession(DefaultScripts())
			require.NoError(t, s.SelectLanguage(tt.lang))
			require.NoError(t, s.Initialize())

			assert.Equal(t, []Entry{
				{Role: RoleDirective, Content: tt.directive},
				{Role: RoleAssistant, Content: tt.first},
			}, s.Transcript())
			assert.Equal(t, 0, s.Stage())
			assert.Equal(t, Collecting, s.State())
		})
	}
}

func TestSession_InitializeRequiresLanguage(t *testing.T) {
	s := NewSession(DefaultScripts())
	require.ErrorIs(t, s.Initialize(), ErrLanguageNotSelected)
	assert.Zero(t, s.Len())
}

func TestSession_InitializeOnce(t *testing.T) {
	s := NewSession(DefaultScripts())
	require.NoError(t, s.SelectLanguage(English))
	require.NoError(t, s.Initialize())
	require.ErrorIs(t, s.Initialize(), ErrAlreadyInitialized)
	assert.Equal(t, 2, s.Len())
}

func TestSession_TranscriptIsACopy(t *testing.T) {
	s := NewSession(DefaultScripts())
	require.NoError(t, s.SelectLanguage(English))
	require.NoError(t, s.Initialize())

	tr := s.Transcript()
	tr[0].Content = "tampered"
	assert.Equal(t, DirectiveEnglish, s.Transcript()[0].Content)
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
		err  bool
	}{
		{"en", English, false},
		{" English ", English, false},
		{"UR", Urdu, false},
		{"urdu", Urdu, false},
		{"اردو", Urdu, false},
		{"fr", LanguageUnset, true},
		{"", LanguageUnset, true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, ErrUnknownLanguage, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
