// Package generator defines the interface for turning a source document into
// a two-host conversation script.
//
// Two modes exist: a standard podcast produced as structured JSON, and an
// English-learning lesson produced as free text and classified line by line.
package generator

import (
	"context"
	"fmt"

	"github.com/nadzzz/duocast/internal/script"
)

// Mode selects the conversation format.
type Mode string

const (
	ModeStandard  Mode = "standard"
	ModeBilingual Mode = "bilingual"
)

// Valid reports whether m names a supported mode.
func (m Mode) Valid() bool {
	return m == ModeStandard || m == ModeBilingual
}

// StandardRequest asks for a general-purpose podcast script.
type StandardRequest struct {
	Document string
	Title    string

	// Voice1 and Voice2 are the host display names the model should use.
	Voice1 string
	Voice2 string

	MaxTokens int
}

// BilingualRequest asks for an English-learning lesson with an English
// host (Voice1) and a Chinese host (Voice2).
type BilingualRequest struct {
	Document  string
	Voice1    string
	Voice2    string
	MaxTokens int
}

// Generator produces scripts from documents.
type Generator interface {
	// GenerateStandard returns a validated script with one or more turns.
	GenerateStandard(ctx context.Context, req StandardRequest) (*script.Script, error)

	// GenerateBilingual returns a sectioned script. Output without any
	// host line yields script.ErrEmptyScript.
	GenerateBilingual(ctx context.Context, req BilingualRequest) (*script.Script, error)
}

// Error reports a failed generation call. Err carries the service message.
type Error struct {
	Mode Mode
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script generation failed (%s): %v", e.Mode, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
