package repository

import (
	"context"
	"sync"

	"github.com/enginelab/crosstable/internal/domain/report"
)

// MemStore keeps the latest compiled report in memory behind a RWMutex.
// Reads are snapshot-consistent: every accessor works against whichever
// report was stored last, never a partially swapped one.
type MemStore struct {
	mu     sync.RWMutex
	report *report.Report
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory report store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put replaces the stored report.
func (s *MemStore) Put(_ context.Context, r *report.Report) error {
	if r == nil {
		return ErrNilReport
	}
	s.mu.Lock()
	s.report = r
	s.mu.Unlock()
	return nil
}

// Latest returns the most recently stored report.
func (s *MemStore) Latest(_ context.Context) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return nil, ErrNoReport
	}
	return s.report, nil
}

// Rankings returns the top-N ranking entries. n <= 0 returns all of them.
func (s *MemStore) Rankings(_ context.Context, n int) ([]report.RankingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return nil, ErrNoReport
	}
	rankings := s.report.UnifiedRankings
	if n <= 0 || n > len(rankings) {
		n = len(rankings)
	}
	out := make([]report.RankingEntry, n)
	copy(out, rankings[:n])
	return out, nil
}

// Engine returns the detail block for a canonical engine name.
func (s *MemStore) Engine(_ context.Context, name string) (report.EngineDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return report.EngineDetail{}, ErrNoReport
	}
	detail, ok := s.report.EngineDetails[name]
	if !ok {
		return report.EngineDetail{}, ErrNotFound
	}
	return detail, nil
}

// Consolidation returns the identity consolidation summary.
func (s *MemStore) Consolidation(_ context.Context) (report.ConsolidationSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return report.ConsolidationSummary{}, ErrNoReport
	}
	return s.report.Consolidation, nil
}

// Count returns the number of ranked engines in the stored report.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return 0
	}
	return len(s.report.UnifiedRankings)
}
