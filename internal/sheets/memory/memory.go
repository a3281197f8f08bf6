// Package memory is an in-process fake of the sheets port for tests and
// local runs without Google credentials.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu     sync.Mutex
	sheets map[string][][]interface{}
}

func New() *Store {
	return &Store{sheets: make(map[string][][]interface{})}
}

// WriteSheet replaces the stored grid for the titled sheet.
func (s *Store) WriteSheet(_ context.Context, title string, values [][]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([][]interface{}, len(values))
	for i, row := range values {
		copied[i] = append([]interface{}(nil), row...)
	}
	s.sheets[title] = copied
	return nil
}

// Sheet returns the last written grid for the titled sheet, nil if never
// written.
func (s *Store) Sheet(title string) [][]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheets[title]
}

// Titles returns the titles written so far.
func (s *Store) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sheets))
	for t := range s.sheets {
		out = append(out, t)
	}
	return out
}
