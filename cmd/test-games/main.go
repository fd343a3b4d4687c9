// Command test-games writes a synthetic PGN corpus for exercising the
// analysis pipeline against realistic, inconsistently spelled engine names.
package main

import (
	"flag"
	"os"

	"github.com/enginelab/crosstable/internal/testgames"
	"github.com/enginelab/crosstable/pkg/logger"
)

func main() {
	var (
		out    = flag.String("out", "results", "output directory for tournament subdirectories")
		events = flag.Int("tournaments", 3, "number of tournaments to generate")
		rounds = flag.Int("rounds", 2, "game pairs per matchup per tournament")
		seed   = flag.Int64("seed", 0, "random seed; 0 derives one from the clock")
		level  = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger.Init(*level)
	log := logger.Get()

	gen := testgames.New(testgames.Config{
		OutputDir:     *out,
		Tournaments:   *events,
		RoundsPerPair: *rounds,
		Seed:          *seed,
	})

	total, err := gen.Run()
	if err != nil {
		log.Error("corpus generation failed", logger.Err(err))
		os.Exit(1)
	}
	log.Info("corpus ready",
		logger.String("dir", *out),
		logger.Int("tournaments", *events),
		logger.Int("games", total))
}
