// Command seiz-sim runs one SEIZ simulation from a YAML config and writes
// the run artifacts: the JSON result document and, optionally, a compressed
// per-step snapshot log, a live pub/sub stream, and a /metrics endpoint.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-seiz/pkg/config"
	"github.com/dd0wney/cluso-seiz/pkg/export"
	"github.com/dd0wney/cluso-seiz/pkg/logging"
	"github.com/dd0wney/cluso-seiz/pkg/metrics"
	"github.com/dd0wney/cluso-seiz/pkg/seiz"
	"github.com/dd0wney/cluso-seiz/pkg/stream"
)

func main() {
	configPath := flag.String("config", "", "path to run configuration (YAML); defaults apply if omitted")
	flag.Parse()

	logger := logging.NewDefaultLogger().With(logging.Component("seiz-sim"))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", logging.Err(err))
			os.Exit(1)
		}
		cfg = loaded
	}

	g, err := cfg.BuildGraph()
	if err != nil {
		logger.Error("failed to build graph", logging.Err(err))
		os.Exit(1)
	}
	logger.Info("graph ready",
		logging.String("type", cfg.Graph.Type),
		logging.Nodes(g.NumNodes()),
		logging.Edges(g.NumEdges()),
	)

	reg := metrics.NewRegistry()
	if addr := cfg.Output.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("metrics server stopped", logging.Err(err))
			}
		}()
		logger.Info("metrics server listening", logging.String("addr", addr))
	}

	var publisher *stream.Publisher
	if addr := cfg.Output.StreamAddr; addr != "" {
		publisher, err = stream.NewPublisher(addr)
		if err != nil {
			logger.Error("failed to start step publisher", logging.Err(err))
			os.Exit(1)
		}
		defer publisher.Close()
		logger.Info("step publisher listening", logging.String("addr", addr))
	}

	var snapshots *export.SnapshotWriter
	if path := cfg.Output.SnapshotPath; path != "" {
		snapshots, err = export.NewSnapshotWriter(path)
		if err != nil {
			logger.Error("failed to open snapshot log", logging.Err(err))
			os.Exit(1)
		}
		defer snapshots.Close()
	}

	observer := func(rec seiz.HistoryRecord, states []seiz.Compartment) {
		if publisher != nil {
			if err := publisher.PublishStep(rec); err != nil {
				logger.Warn("publish failed", logging.Step(rec.Step), logging.Err(err))
			}
		}
		if snapshots != nil {
			if err := snapshots.Append(rec.Step, states); err != nil {
				logger.Warn("snapshot append failed", logging.Step(rec.Step), logging.Err(err))
			}
		}
	}

	sim, err := cfg.NewSimulator(g,
		seiz.WithLogger(logger),
		seiz.WithMetrics(reg),
		seiz.WithStepObserver(observer),
	)
	if err != nil {
		logger.Error("failed to build simulator", logging.Err(err))
		os.Exit(1)
	}

	if err := sim.InitializeStates(cfg.Run.InfectedFrac, cfg.Run.SkepticFrac, cfg.Run.Seed); err != nil {
		logger.Error("failed to initialize states", logging.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := sim.Run(ctx, cfg.Run.Steps); err != nil {
		logger.Error("run failed", logging.Err(err))
		os.Exit(1)
	}

	result := export.BuildResult(sim)
	if path := cfg.Output.JSONPath; path != "" {
		if err := result.SaveJSON(path); err != nil {
			logger.Error("failed to save result", logging.Err(err))
			os.Exit(1)
		}
		logger.Info("result saved",
			logging.String("path", path),
			logging.String("run_id", result.RunID),
		)
	}
	if snapshots != nil {
		frames, raw, compressed := snapshots.Stats()
		logger.Info("snapshot log written",
			logging.String("path", cfg.Output.SnapshotPath),
			logging.Uint64("frames", frames),
			logging.Uint64("bytes_raw", raw),
			logging.Uint64("bytes_compressed", compressed),
		)
	}
}
