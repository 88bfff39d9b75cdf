// Command slid runs the SLI pipeline daemon.
//
// It loads the daemon configuration and the SLI declaration file,
// builds one pipeline per declaration, and publishes each aggregated
// indicator back to the metrics backend until terminated.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/slikit/backend"
	"github.com/kbukum/slikit/clock"
	"github.com/kbukum/slikit/component"
	"github.com/kbukum/slikit/config"
	"github.com/kbukum/slikit/di"
	"github.com/kbukum/slikit/logger"
	"github.com/kbukum/slikit/monitor"
	"github.com/kbukum/slikit/observability"
	"github.com/kbukum/slikit/server"
	"github.com/kbukum/slikit/sli"
	"github.com/kbukum/slikit/sse"
	"github.com/kbukum/slikit/version"
)

func main() {
	configFile := flag.String("config", "", "path to the config file (default: search well-known paths)")
	sliFile := flag.String("slis", "", "path to the SLI declaration file (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if err := run(*configFile, *sliFile); err != nil {
		fmt.Fprintln(os.Stderr, "slid:", err)
		os.Exit(1)
	}
}

func run(configFile, sliFile string) error {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Name)
	log.Info("starting", logger.Fields(
		"version", version.Get().String(),
		"environment", cfg.Environment,
	))

	if err := cfg.DefineResolutions(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		mp, err := observability.InitMeter(ctx, cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing meter: %w", err)
		}
		defer shutdownProvider("meter", mp.Shutdown, log)

		tp, err := observability.InitTracer(ctx, cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer shutdownProvider("tracer", tp.Shutdown, log)
	}

	mon, err := monitor.New(observability.Meter("slid"), log)
	if err != nil {
		return fmt.Errorf("initializing monitor: %w", err)
	}

	container := di.NewContainer()
	container.RegisterSingleton(di.Clock, clock.System())
	container.RegisterSingleton(di.Monitor, mon)
	container.Register(di.BackendClient, func() (any, error) {
		return backend.NewClient(cfg.Backend, log), nil
	})
	container.Register(di.IngestClient, func() (any, error) {
		return backend.NewIngestor(cfg.Ingest, log), nil
	})
	defer container.Close()

	registry := sli.NewRegistry()
	if sliFile == "" {
		sliFile = cfg.SLIs.File
	}
	if sliFile != "" {
		count, err := sli.LoadFile(sliFile, registry)
		if err != nil {
			return fmt.Errorf("loading declarations: %w", err)
		}
		log.Info("declarations loaded", logger.Fields("count", count, "file", sliFile))
	} else {
		log.Warn("no declaration file configured, starting empty")
	}

	components := component.NewRegistry()

	// The hub must be up before pipelines start publishing, and the
	// admin server needs it for the live stream route.
	var hub *sse.Hub
	if cfg.Server.Enabled {
		hub = sse.NewHub(log)
		container.RegisterSingleton(di.Events, hub)
		if err := components.Register(sse.NewComponent(hub)); err != nil {
			return err
		}
	}

	service := sli.NewService(registry, container, log)
	if err := components.Register(service); err != nil {
		return err
	}
	if cfg.Server.Enabled {
		admin := server.New(cfg.Server, registry, service, components, log)
		admin.Engine().GET("/slis/stream", sse.Handler(hub))
		if err := components.Register(admin); err != nil {
			return err
		}
	}

	if err := components.StartAll(ctx); err != nil {
		components.StopAll(context.Background())
		return err
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return components.StopAll(stopCtx)
}

func shutdownProvider(name string, shutdown func(context.Context) error, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn("telemetry shutdown failed", logger.Fields(
			"provider", name,
			logger.FieldError, err.Error(),
		))
	}
}
