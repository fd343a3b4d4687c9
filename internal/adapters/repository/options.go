package repository

import "github.com/enginelab/crosstable/internal/domain/report"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialReport seeds the store with a previously compiled report,
// e.g. one reloaded from disk at startup.
func WithInitialReport(r *report.Report) Option {
	return func(s *MemStore) {
		if r != nil {
			s.report = r
		}
	}
}
