package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/enginelab/crosstable/internal/adapters/http/api"
	"github.com/enginelab/crosstable/internal/adapters/pgn"
	app "github.com/enginelab/crosstable/internal/app"
	"github.com/enginelab/crosstable/internal/config"
	"github.com/enginelab/crosstable/internal/mapping"
	"github.com/enginelab/crosstable/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// The custom registry carries only analysis metrics; drop the default
	// collectors so a scrape of the default registry stays clean too.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	log := logger.Get()

	tables := mapping.Empty()
	if cfg.MappingFile != "" {
		tables, err = mapping.Load(cfg.MappingFile)
		switch {
		case mapping.IsNotFound(err):
			log.Warn("mapping file missing; continuing with heuristic-only consolidation",
				logger.String("path", cfg.MappingFile))
			tables = mapping.Empty()
		case err != nil:
			log.Error("failed to load mapping file", logger.Err(err))
			os.Exit(1)
		}
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithSource(pgn.NewSource(cfg.ResultsDir)),
		app.WithMappingTables(tables),
	)

	rep, err := svc.Run(ctx)
	if err != nil {
		log.Error("analysis failed", logger.Err(err))
		os.Exit(1)
	}

	if err := writeReport(cfg.OutputPath, rep); err != nil {
		log.Error("failed to write report", logger.Err(err))
		os.Exit(1)
	}
	log.Info("report written", logger.String("path", cfg.OutputPath))

	if !cfg.Serve {
		return
	}

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info("starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", logger.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", logger.Err(err))
	}
	log.Info("server stopped")
}

// writeReport persists the report as indented JSON, creating the parent
// directory when needed.
func writeReport(path string, rep any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
