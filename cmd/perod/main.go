// cmd/perod/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	_ "modernc.org/sqlite"

	"github.com/nizzatkr/pero/internal/config"
	"github.com/nizzatkr/pero/internal/control"
	"github.com/nizzatkr/pero/internal/publish"
	pmodbus "github.com/nizzatkr/pero/internal/publish/modbus"
	"github.com/nizzatkr/pero/internal/server"
	"github.com/nizzatkr/pero/internal/stream"
	"github.com/nizzatkr/pero/internal/telemetry"
)

// shellConfig is process-level configuration; everything about the
// vehicle itself lives in the YAML file.
type shellConfig struct {
	ConfigPath string `env:"PERO_CONFIG" envDefault:"pero.yaml"`
	Listen     string `env:"PERO_LISTEN" envDefault:":8080"`
	LogLevel   string `env:"PERO_LOG_LEVEL" envDefault:"info"`
}

func main() {
	var shell shellConfig
	if err := env.Parse(&shell); err != nil {
		slog.Error("env parse failed", "error", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		shell.ConfigPath = os.Args[1]
	}

	// --------------------
	// Logging
	// --------------------

	var lvl slog.Level
	switch shell.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(shell.ConfigPath)
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		logger.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	config.Normalize(cfg)
	p := cfg.Pero

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --------------------
	// Classifier
	// --------------------

	classifier, err := control.New(p.Control.Radius, p.Control.DeadZone, p.Control.AxisPriority)
	if err != nil {
		logger.Error("classifier build failed", "error", err)
		os.Exit(1)
	}

	// --------------------
	// Stream monitor
	// --------------------

	prober, err := stream.NewProber(p.Stream.BaseURL, ms(p.Stream.ProbeTimeoutMs))
	if err != nil {
		logger.Error("prober build failed", "error", err)
		os.Exit(1)
	}
	monitor := stream.NewMonitor(prober, ms(p.Stream.ProbeIntervalMs), logger)
	go monitor.Run(ctx)

	// --------------------
	// Command sinks (document primary, direct link opt-in)
	// --------------------

	docSink, err := publish.NewDocumentSink(p.Document.Endpoint, p.Document.Auth, ms(p.Document.TimeoutMs))
	if err != nil {
		logger.Error("document sink build failed", "error", err)
		os.Exit(1)
	}
	sinks := []publish.Sink{docSink}

	if p.DirectLink != nil {
		cli, err := pmodbus.New(pmodbus.Config{
			Endpoint: p.DirectLink.Endpoint,
			UnitID:   p.DirectLink.UnitID,
			Timeout:  ms(p.DirectLink.TimeoutMs),
		})
		if err != nil {
			logger.Error("direct link connect failed", "error", err)
			os.Exit(1)
		}
		defer cli.Close()
		sinks = append(sinks, publish.NewDirectLinkSink(cli, p.DirectLink.CoilBase))
	}

	publisher := publish.New(logger, sinks...)

	// --------------------
	// Telemetry (opt-in)
	// --------------------

	var store *telemetry.Store
	var poller *telemetry.Poller

	if p.Telemetry.Endpoint != "" {
		if p.Telemetry.HistoryDB != "" {
			if dir := filepath.Dir(p.Telemetry.HistoryDB); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					logger.Error("history dir create failed", "error", err)
					os.Exit(1)
				}
			}
			db, err := sql.Open("sqlite", p.Telemetry.HistoryDB)
			if err != nil {
				logger.Error("history db open failed", "error", err)
				os.Exit(1)
			}
			defer db.Close()

			store = telemetry.NewStore(db)
			if err := store.Init(); err != nil {
				logger.Error("history db init failed", "error", err)
				os.Exit(1)
			}
		}

		source, err := telemetry.NewDocumentSource(p.Telemetry.Endpoint, p.Telemetry.Auth, 0)
		if err != nil {
			logger.Error("telemetry source build failed", "error", err)
			os.Exit(1)
		}
		poller, err = telemetry.NewPoller(source, store, ms(p.Telemetry.PollIntervalMs), logger)
		if err != nil {
			logger.Error("telemetry poller build failed", "error", err)
			os.Exit(1)
		}
		go poller.Run(ctx)
	}

	// --------------------
	// HTTP API
	// --------------------

	srv := server.New(server.Config{
		Classifier:   classifier,
		Publisher:    publisher,
		Monitor:      monitor,
		Poller:       poller,
		Store:        store,
		HistoryLimit: p.Telemetry.HistoryLimit,
		Logger:       logger,
	})

	httpSrv := &http.Server{
		Addr:    shell.Listen,
		Handler: srv.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "error", err)
		}
	}()

	logger.Info("perod listening",
		"addr", shell.Listen,
		"vehicle", p.VehicleID,
		"stream", p.Stream.BaseURL,
		"direct_link", p.DirectLink != nil,
		"telemetry", p.Telemetry.Endpoint != "",
	)

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
