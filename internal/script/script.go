// Package script defines the conversation script exchanged between the
// generation service and the markup assembler.
package script

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLanguage is the locale assumed when the model reports none.
const DefaultLanguage = "en-US"

// ErrEmptyScript is returned when generated output holds no usable turn.
var ErrEmptyScript = errors.New("no valid script content generated")

// ErrInvalidTurn is returned for a turn missing a speaker or a message.
var ErrInvalidTurn = errors.New("invalid script turn")

// Section tags the part of a structured lesson a turn belongs to.
type Section string

const (
	SectionNone          Section = ""
	SectionSummary       Section = "summary"
	SectionLanguageFocus Section = "language_focus"
	SectionQuestions     Section = "questions"
)

// Turn is one line of dialogue.
type Turn struct {
	// Name is the host display name as produced by the generation service.
	Name string `json:"name"`

	// Message is the raw utterance. It may contain cue tokens such as
	// "[laughter]" and the "(CN)" secondary-language marker.
	Message string `json:"message"`

	// Section is set for bilingual lesson scripts only.
	Section Section `json:"section,omitempty"`
}

// Validate checks the turn invariants.
func (t Turn) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: empty speaker", ErrInvalidTurn)
	}
	if strings.TrimSpace(t.Message) == "" {
		return fmt.Errorf("%w: empty message for %q", ErrInvalidTurn, t.Name)
	}
	return nil
}

// Config carries script-level metadata reported by the model.
type Config struct {
	// Language is a BCP-47 tag, e.g. en-US or es-PA.
	Language string `json:"language"`
}

// Script is an ordered conversation plus the two voices that will read it.
type Script struct {
	Config Config `json:"config"`
	Turns  []Turn `json:"script"`

	// Voice1 and Voice2 are synthesis voice identifiers.
	Voice1 string `json:"voice_1,omitempty"`
	Voice2 string `json:"voice_2,omitempty"`
}

// Validate checks every turn and returns the first violation.
func (s *Script) Validate() error {
	for i, t := range s.Turns {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("turn %d: %w", i, err)
		}
	}
	return nil
}

// Speakers returns the distinct speaker names in first-seen order.
func (s *Script) Speakers() []string {
	return Speakers(s.Turns)
}

// Speakers returns the distinct speaker names of turns in first-seen order.
func Speakers(turns []Turn) []string {
	seen := make(map[string]struct{}, 2)
	var out []string
	for _, t := range turns {
		if _, ok := seen[t.Name]; ok {
			continue
		}
		seen[t.Name] = struct{}{}
		out = append(out, t.Name)
	}
	return out
}
