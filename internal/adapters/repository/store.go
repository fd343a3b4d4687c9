// Package repository defines the analysis report store interface and errors.
package repository

import (
	"context"

	"github.com/enginelab/crosstable/internal/domain/report"
)

// Store provides read/write access to the latest compiled analysis report.
type Store interface {
	// Put replaces the stored report with a newly compiled one.
	Put(ctx context.Context, r *report.Report) error

	// Latest returns the most recently stored report.
	// Returns ErrNoReport if no report has been stored yet.
	Latest(ctx context.Context) (*report.Report, error)

	// Rankings returns the top-N ranking entries ordered by rating desc.
	// n <= 0 returns the full ranking.
	Rankings(ctx context.Context, n int) ([]report.RankingEntry, error)

	// Engine returns the detail block for a canonical engine name.
	// Returns ErrNotFound if the engine is missing from the report.
	Engine(ctx context.Context, name string) (report.EngineDetail, error)

	// Consolidation returns the identity consolidation summary.
	Consolidation(ctx context.Context) (report.ConsolidationSummary, error)

	// Count returns the number of ranked engines in the stored report.
	Count(ctx context.Context) int
}
