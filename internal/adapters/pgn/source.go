// Package pgn reads tournament game archives from a results directory tree.
// Each immediate subdirectory is one tournament; its name becomes the
// tournament label for every game found beneath it. Loose .pgn files at the
// directory root are grouped under the "root_tournament" label.
package pgn

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/notnil/chess"

	"github.com/enginelab/crosstable/internal/domain/model"
	"github.com/enginelab/crosstable/pkg/logger"
	"github.com/enginelab/crosstable/pkg/metrics"
)

// RootTournament labels games found directly in the results directory.
const RootTournament = "root_tournament"

// Source walks a results directory and extracts raw game tuples from the
// PGN files it finds.
type Source struct {
	dir string
	log *logger.Logger
}

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSource creates a Source over the given results directory.
func NewSource(dir string, opts ...Option) *Source {
	s := &Source{dir: dir, log: logger.Get().Named("pgn")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every .pgn file under the results directory and returns the raw
// games in deterministic order (directory walk order, then file order). A
// file that cannot be parsed is logged and skipped; it never aborts the scan.
func (s *Source) Load() ([]model.RawGame, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		return nil, fmt.Errorf("results directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("results directory: %s is not a directory", s.dir)
	}

	var games []model.RawGame
	err = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pgn") {
			return nil
		}
		fileGames, ferr := s.loadFile(path)
		if ferr != nil {
			metrics.RecordPGNParseError()
			s.log.Warn("skipping unreadable pgn file",
				logger.String("path", path), logger.Err(ferr))
			return nil
		}
		metrics.RecordPGNFileParsed()
		games = append(games, fileGames...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk results directory: %w", err)
	}
	return games, nil
}

func (s *Source) loadFile(path string) ([]model.RawGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tournament := s.tournamentFor(path)

	var games []model.RawGame
	scanner := chess.NewScanner(f)
	for scanner.Scan() {
		game := scanner.Next()
		if game == nil {
			continue
		}
		games = append(games, rawFromTags(game, tournament))
	}
	if err := scanner.Err(); err != nil {
		// Keep whatever parsed cleanly before the bad segment.
		if len(games) > 0 {
			metrics.RecordPGNParseError()
			s.log.Warn("pgn file truncated by parse error",
				logger.String("path", path),
				logger.Int("games_kept", len(games)),
				logger.Err(err))
			return games, nil
		}
		return nil, err
	}
	return games, nil
}

// tournamentFor derives the tournament label from the file location: the
// first path element below the results directory, or RootTournament for
// files sitting directly in it.
func (s *Source) tournamentFor(path string) string {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return RootTournament
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return RootTournament
	}
	return parts[0]
}

func rawFromTags(game *chess.Game, tournament string) model.RawGame {
	return model.RawGame{
		White:       tagValue(game, "White"),
		Black:       tagValue(game, "Black"),
		Result:      tagValue(game, "Result"),
		Tournament:  tournament,
		Date:        tagValue(game, "Date"),
		Termination: tagValue(game, "Termination"),
		Opening:     tagValue(game, "Opening"),
		ECO:         tagValue(game, "ECO"),
	}
}

func tagValue(game *chess.Game, key string) string {
	if tp := game.GetTagPair(key); tp != nil {
		return tp.Value
	}
	return ""
}
