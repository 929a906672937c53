package symbols

import (
	"sync"
	"time"
)

// DefaultBlurDelay is how long the suggestion surface stays up after the
// input loses focus, so a click on a suggestion can still land.
const DefaultBlurDelay = 200 * time.Millisecond

// Suggestor models one symbol input's suggestion surface. Every
// keystroke re-runs the match synchronously; there is no network access.
type Suggestor struct {
	mu        sync.Mutex
	table     *Table
	query     string
	matches   []Entry
	visible   bool
	blurDelay time.Duration
}

func NewSuggestor(table *Table, blurDelay time.Duration) *Suggestor {
	if blurDelay <= 0 {
		blurDelay = DefaultBlurDelay
	}
	return &Suggestor{table: table, blurDelay: blurDelay}
}

// Input re-evaluates the suggestions for the current field value.
// The surface shows only while there is at least one match.
func (s *Suggestor) Input(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.matches = s.table.Match(query)
	s.visible = len(s.matches) > 0
}

// Focus re-evaluates a non-empty field, mirroring a user tabbing back in.
func (s *Suggestor) Focus() {
	s.mu.Lock()
	query := s.query
	s.mu.Unlock()
	if query != "" {
		s.Input(query)
	}
}

// Blur hides the surface after the grace delay.
func (s *Suggestor) Blur() {
	time.AfterFunc(s.blurDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.visible = false
	})
}

// Select picks the i-th suggestion: the field takes the entry's ticker
// and the surface hides. Returns false when nothing is shown at i.
func (s *Suggestor) Select(i int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible || i < 0 || i >= len(s.matches) {
		return "", false
	}
	symbol := s.matches[i].Symbol
	s.query = symbol
	s.visible = false
	s.matches = nil
	return symbol, true
}

// Suggestions snapshots the currently visible matches.
func (s *Suggestor) Suggestions() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible {
		return nil
	}
	out := make([]Entry, len(s.matches))
	copy(out, s.matches)
	return out
}

// Visible reports whether the surface is currently shown.
func (s *Suggestor) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}
