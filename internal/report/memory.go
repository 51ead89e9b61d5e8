package report

import (
	"context"
	"sync"
)

// MemoryWriter keeps reports in memory. Used when no spreadsheet is
// configured and in tests.
type MemoryWriter struct {
	mu      sync.Mutex
	reports []Report
}

var _ Writer = (*MemoryWriter)(nil)

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{}
}

func (w *MemoryWriter) Write(_ context.Context, rep Report) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = append(w.reports, rep)
	return nil
}

// Reports returns a copy of everything written so far.
func (w *MemoryWriter) Reports() []Report {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Report, len(w.reports))
	copy(out, w.reports)
	return out
}
