// Package memory is a Writer that keeps exported rows in process. The worker
// falls back to it when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"berdoz/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	tabs map[string][][]any
}

var _ sheets.Writer = (*Store)(nil)

func New() *Store {
	return &Store{tabs: make(map[string][][]any)}
}

// Upsert stores the row and returns a synthetic reference "mem:tab:n".
func (s *Store) Upsert(_ context.Context, row sheets.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tabs[row.Tab]
	if len(rows) == 0 {
		header := make([]any, len(row.Header))
		for i, h := range row.Header {
			header[i] = h
		}
		rows = append(rows, header)
	}
	n := find(rows, row.ID)
	if n < 0 {
		rows = append(rows, row.Cells())
		n = len(rows) - 1
	} else {
		rows[n] = row.Cells()
	}
	s.tabs[row.Tab] = rows
	return fmt.Sprintf("mem:%s:%d", row.Tab, n+1), nil
}

func (s *Store) Delete(_ context.Context, tab, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tabs[tab]
	if n := find(rows, id); n >= 0 {
		rows[n] = nil
	}
	return nil
}

// Rows returns a copy of the non-cleared data rows of a tab, header
// excluded.
func (s *Store) Rows(tab string) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tabs[tab]
	out := make([][]any, 0, len(rows))
	for i, r := range rows {
		if i == 0 || r == nil {
			continue
		}
		out = append(out, append([]any(nil), r...))
	}
	return out
}

func find(rows [][]any, id string) int {
	for i, r := range rows {
		if i == 0 || len(r) == 0 {
			continue
		}
		if r[0] == id {
			return i
		}
	}
	return -1
}
