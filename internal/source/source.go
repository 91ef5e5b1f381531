// Package source models the ordered list of ingested content a podcast is
// generated from.
//
// A Session is the explicit, session-scoped replacement for ambient UI state:
// callers own it and pass it by reference to every action. Sessions are not
// safe for concurrent use; Store serializes access when they are shared.
package source

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies where a source item came from.
type Kind string

const (
	KindDocument Kind = "document"
	KindWeb      Kind = "web"
	KindVideo    Kind = "video"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDocument, KindWeb, KindVideo:
		return true
	}
	return false
}

const (
	baseTokenBudget      = 3000
	tokensPerExtraSource = 1000
	maxTokenBudget       = 6000

	separator = "\n\n"
)

var (
	// ErrIndexOutOfRange is returned by Remove for an invalid index.
	ErrIndexOutOfRange = errors.New("source index out of range")

	// ErrEmptyContent is returned by Add when the item carries no text.
	ErrEmptyContent = errors.New("source content is empty")
)

// Item is one ingested content unit. Items are immutable once added.
type Item struct {
	Kind       Kind      `json:"kind"`
	Origin     string    `json:"origin"`
	Content    string    `json:"content"`
	CapturedAt time.Time `json:"captured_at"`
}

// Session is an ordered, append-only list of items (removal by index aside).
type Session struct {
	ID        string
	CreatedAt time.Time

	items []Item
}

// NewSession creates an empty session.
func NewSession(id string) *Session {
	return &Session{ID: id, CreatedAt: time.Now()}
}

// Add appends item to the end of the list.
func (s *Session) Add(item Item) error {
	if strings.TrimSpace(item.Content) == "" {
		return ErrEmptyContent
	}
	s.items = append(s.items, item)
	return nil
}

// Remove deletes the item at index, preserving the order of the rest.
// The list is left untouched on error.
func (s *Session) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.items))
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

// Reset drops every item.
func (s *Session) Reset() {
	s.items = nil
}

// Len returns the number of items.
func (s *Session) Len() int { return len(s.items) }

// Items returns a copy of the items in insertion order.
func (s *Session) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// CombinedDocument joins all item contents in list order with a blank line.
func (s *Session) CombinedDocument() string {
	parts := make([]string, len(s.items))
	for i, it := range s.items {
		parts[i] = it.Content
	}
	return strings.Join(parts, separator)
}

// SuggestedTokenBudget is the default generation length for the current
// number of sources. It is a UI default, not an enforced cap.
func (s *Session) SuggestedTokenBudget() int {
	return TokenBudget(len(s.items))
}

// TokenBudget returns min(3000 + 1000*max(0, count-1), 6000).
func TokenBudget(count int) int {
	return min(baseTokenBudget+tokensPerExtraSource*max(0, count-1), maxTokenBudget)
}
