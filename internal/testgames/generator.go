// Package testgames writes synthetic PGN tournament corpora for exercising
// the analysis pipeline end to end. The roster deliberately spells engine
// names inconsistently across tournaments so generated data stresses
// identity consolidation, not just the math.
package testgames

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/enginelab/crosstable/pkg/logger"
)

// engine is a roster entry: one true strength, several spellings.
type engine struct {
	strength  float64
	spellings []string
}

// defaultRoster mirrors the kind of field a real engine tournament has: a
// strength-limited reference engine, a random mover, and hobby engines whose
// names drift between events.
var defaultRoster = []engine{
	{strength: 2520, spellings: []string{"Stockfish 10%", "stockfish_10%", "Stockfish_v1.0_10%"}},
	{strength: 1450, spellings: []string{"SlowMate 1.0", "SlowMate_v1.0", "slowmate v1.0"}},
	{strength: 1300, spellings: []string{"Cecilia v2.0", "Cecilia_v2.0"}},
	{strength: 1250, spellings: []string{"Cece 2.0", "cece_v2.0"}},
	{strength: 1100, spellings: []string{"V7P3RAI v1.0", "v7p3rai_v1.0"}},
	{strength: 900, spellings: []string{"Copycat 1.1", "copycat v1.1"}},
	{strength: 600, spellings: []string{"Random_Opponent v1.0", "random opponent 1.0"}},
}

// Config controls corpus generation.
type Config struct {
	// OutputDir receives one subdirectory per tournament.
	OutputDir string
	// Tournaments is the number of round-robin events to write.
	Tournaments int
	// RoundsPerPair is how many game pairs each matchup plays per event.
	RoundsPerPair int
	// Seed fixes the random source; zero derives one from the clock.
	Seed int64
}

// Generator writes synthetic corpora.
type Generator struct {
	cfg    Config
	roster []engine
	rng    *rand.Rand
	log    *logger.Logger
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a Generator for the given config.
func New(cfg Config, opts ...Option) *Generator {
	if cfg.Tournaments < 1 {
		cfg.Tournaments = 3
	}
	if cfg.RoundsPerPair < 1 {
		cfg.RoundsPerPair = 2
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		cfg:    cfg,
		roster: defaultRoster,
		rng:    rand.New(rand.NewSource(seed)),
		log:    logger.Get().Named("testgames"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run writes the corpus and returns the number of games generated.
func (g *Generator) Run() (int, error) {
	total := 0
	for t := 0; t < g.cfg.Tournaments; t++ {
		name := fmt.Sprintf("synthetic_event_%02d", t+1)
		n, err := g.writeTournament(name, t)
		if err != nil {
			return total, err
		}
		total += n
		g.log.Info("wrote tournament",
			logger.String("tournament", name),
			logger.Int("games", n))
	}
	return total, nil
}

func (g *Generator) writeTournament(name string, round int) (int, error) {
	dir := filepath.Join(g.cfg.OutputDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create tournament directory: %w", err)
	}

	var sb strings.Builder
	games := 0
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, round, 0)

	for i := 0; i < len(g.roster); i++ {
		for j := i + 1; j < len(g.roster); j++ {
			for k := 0; k < g.cfg.RoundsPerPair; k++ {
				white, black := g.roster[i], g.roster[j]
				if k%2 == 1 {
					white, black = black, white
				}
				g.writeGame(&sb, name, white, black, date.AddDate(0, 0, games))
				games++
			}
		}
	}

	file := filepath.Join(dir, "games_"+uuid.NewString()[:8]+".pgn")
	if err := os.WriteFile(file, []byte(sb.String()), 0o644); err != nil {
		return 0, fmt.Errorf("write pgn file: %w", err)
	}
	return games, nil
}

// writeGame emits one header-complete PGN game. The movetext is a fixed
// short legal line; only the headers matter downstream.
func (g *Generator) writeGame(sb *strings.Builder, event string, white, black engine, date time.Time) {
	result := g.sampleResult(white.strength, black.strength)

	fmt.Fprintf(sb, "[Event %q]\n", event)
	fmt.Fprintf(sb, "[White %q]\n", g.spell(white))
	fmt.Fprintf(sb, "[Black %q]\n", g.spell(black))
	fmt.Fprintf(sb, "[Result %q]\n", result)
	fmt.Fprintf(sb, "[Date %q]\n", date.Format("2006.01.02"))
	fmt.Fprintf(sb, "[Termination %q]\n", "normal")
	sb.WriteString("\n1. e4 e5 2. Nf3 Nc6 ")
	sb.WriteString(result)
	sb.WriteString("\n\n")
}

// spell picks one of the engine's known spellings at random.
func (g *Generator) spell(e engine) string {
	return e.spellings[g.rng.Intn(len(e.spellings))]
}

// sampleResult draws a game outcome from the logistic expectation implied
// by the two true strengths, with a flat draw band.
func (g *Generator) sampleResult(white, black float64) string {
	expected := 1.0 / (1.0 + math.Pow(10, (black-white)/400.0))
	r := g.rng.Float64()
	const drawShare = 0.15
	switch {
	case r < expected*(1-drawShare):
		return "1-0"
	case r < expected*(1-drawShare)+drawShare:
		return "1/2-1/2"
	default:
		return "0-1"
	}
}
