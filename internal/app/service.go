// Package service runs the analysis pipeline and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/enginelab/crosstable/internal/adapters/repository"
	"github.com/enginelab/crosstable/internal/domain/aggregate"
	"github.com/enginelab/crosstable/internal/domain/identity"
	"github.com/enginelab/crosstable/internal/domain/ingest"
	"github.com/enginelab/crosstable/internal/domain/model"
	"github.com/enginelab/crosstable/internal/domain/rating"
	"github.com/enginelab/crosstable/internal/domain/reliability"
	"github.com/enginelab/crosstable/internal/domain/report"
	"github.com/enginelab/crosstable/internal/mapping"
	"github.com/enginelab/crosstable/pkg/logger"
	"github.com/enginelab/crosstable/pkg/metrics"
)

// ErrNotRun is returned by read accessors before the first pipeline run.
var ErrNotRun = errors.New("analysis has not run")

// GameSource supplies raw game tuples, typically from a PGN directory walk.
type GameSource interface {
	Load() ([]model.RawGame, error)
}

// Service owns the full pipeline: ingest, consolidate, aggregate, score
// reliability, estimate ratings, and compile the report. Reads are served
// from the report store, so a rerun never exposes intermediate state.
type Service struct {
	mu sync.RWMutex

	source GameSource
	store  repository.Store
	tables mapping.Tables

	lastRun     time.Time
	gamesLoaded int
	gamesValid  int
	gamesSkip   int

	log *logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the game source the pipeline reads from.
func WithSource(src GameSource) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore sets the report store backing the read API.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMappingTables sets the manual consolidation and rating override tables.
func WithMappingTables(t mapping.Tables) Option {
	return func(s *Service) {
		s.tables = t
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New constructs a Service with default configuration. A source must be
// provided via WithSource before Run is called.
func New(opts ...Option) *Service {
	s := &Service{
		store:  repository.NewMemStore(),
		tables: mapping.Empty(),
		log:    logger.Get().Named("analysis"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one full analysis pass and stores the compiled report.
func (s *Service) Run(ctx context.Context) (*report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == nil {
		return nil, errors.New("no game source configured")
	}

	start := time.Now()

	raws, err := s.source.Load()
	if err != nil {
		return nil, err
	}
	s.log.Info("loaded games", logger.Int("raw_games", len(raws)))

	records, skipped := ingest.Ingest(raws)
	for _, sk := range skipped {
		metrics.RecordGameMalformed()
		s.log.Warn("skipping malformed game",
			logger.Int("index", sk.Index),
			logger.String("white", sk.Raw.White),
			logger.String("black", sk.Raw.Black),
			logger.Err(sk.Err))
	}
	for range records {
		metrics.RecordGameIngested()
	}

	normalizer := identity.NewNormalizer(
		identity.WithOverrides(s.tables.Overrides),
	)
	agg := aggregate.NewAggregator(normalizer.Normalize)
	engines := agg.Aggregate(records)

	reliability.Apply(engines)

	estimator := rating.NewEstimator(
		rating.WithOverrides(s.tables.RatingOverrides),
	)
	table := estimator.Estimate(engines)
	rating.ApplyPerformanceRatings(engines, table)

	rep := report.Compile(agg)
	mergeManualGroups(rep, s.tables.Groups)

	if err := s.store.Put(ctx, rep); err != nil {
		return nil, err
	}

	s.lastRun = time.Now()
	s.gamesLoaded = len(raws)
	s.gamesValid = len(records)
	s.gamesSkip = len(skipped)

	metrics.RecordReportBuild()
	metrics.UpdateEnginesTracked(len(engines))
	metrics.UpdateTournamentsTracked(len(agg.Tournaments()))
	metrics.RecordPipelineDuration(time.Since(start).Seconds())

	s.log.Info("analysis complete",
		logger.Int("games", len(records)),
		logger.Int("skipped", len(skipped)),
		logger.Int("engines", len(engines)),
		logger.Int("ranked", len(rep.UnifiedRankings)),
		logger.Duration("elapsed", time.Since(start)))

	return rep, nil
}

// mergeManualGroups folds the mapping file's declared variant groups into
// the observed consolidation audit trail so the report shows manual merges
// even for spellings that never appeared in the corpus.
func mergeManualGroups(rep *report.Report, groups map[string][]string) {
	for canonical, variants := range groups {
		seen := make(map[string]struct{})
		for _, v := range rep.Consolidation.ConsolidatedGroups[canonical] {
			seen[v] = struct{}{}
		}
		for _, v := range variants {
			if _, ok := seen[v]; !ok {
				rep.Consolidation.ConsolidatedGroups[canonical] = append(
					rep.Consolidation.ConsolidatedGroups[canonical], v)
				seen[v] = struct{}{}
			}
		}
	}
}

// Rankings returns the top-N ranking entries from the latest report.
func (s *Service) Rankings(ctx context.Context, n int) ([]report.RankingEntry, error) {
	entries, err := s.store.Rankings(ctx, n)
	if errors.Is(err, repository.ErrNoReport) {
		return nil, ErrNotRun
	}
	return entries, err
}

// Engine returns the detail block for a canonical engine name.
func (s *Service) Engine(ctx context.Context, name string) (report.EngineDetail, error) {
	detail, err := s.store.Engine(ctx, name)
	if errors.Is(err, repository.ErrNoReport) {
		return report.EngineDetail{}, ErrNotRun
	}
	return detail, err
}

// Consolidation returns the identity consolidation summary.
func (s *Service) Consolidation(ctx context.Context) (report.ConsolidationSummary, error) {
	summary, err := s.store.Consolidation(ctx)
	if errors.Is(err, repository.ErrNoReport) {
		return report.ConsolidationSummary{}, ErrNotRun
	}
	return summary, err
}

// Report returns the full latest report.
func (s *Service) Report(ctx context.Context) (*report.Report, error) {
	rep, err := s.store.Latest(ctx)
	if errors.Is(err, repository.ErrNoReport) {
		return nil, ErrNotRun
	}
	return rep, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"hasRun":         !s.lastRun.IsZero(),
		"gamesLoaded":    s.gamesLoaded,
		"gamesValid":     s.gamesValid,
		"gamesSkipped":   s.gamesSkip,
		"rankedEngines":  s.store.Count(context.Background()),
		"manualOverride": len(s.tables.Overrides),
	}
	if !s.lastRun.IsZero() {
		stats["lastRun"] = s.lastRun.UTC().Format(time.RFC3339)
	}
	return stats
}
