package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/xtding233/grape-gamble/internal/config"
	"github.com/xtding233/grape-gamble/internal/grpcapi"
	"github.com/xtding233/grape-gamble/internal/httpapi"
	"github.com/xtding233/grape-gamble/internal/logging"
	"github.com/xtding233/grape-gamble/internal/metrics"
	"github.com/xtding233/grape-gamble/internal/preset"
	"github.com/xtding233/grape-gamble/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "grape-gamble:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "configs/server.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	loader := preset.NewLoader(cfg.PresetDir)
	if _, err := loader.LoadMerged(""); err != nil {
		return fmt.Errorf("load default preset: %w", err)
	}
	watcher := preset.NewFileWatcher([]string{loader.Paths().Dir()}, cfg.WatchInterval, func(path string) {
		loader.Invalidate()
		log.Info("preset changed, cache cleared", zap.String("path", path))
	})
	watcher.Start()
	defer watcher.Stop()

	svc := service.New(loader, log, m, service.Options{
		Workers:       cfg.Simulation.Workers,
		DefaultTrials: cfg.Simulation.DefaultTrials,
		MaxTrials:     cfg.Simulation.MaxTrials,
		Bins:          cfg.Simulation.Bins,
	})

	var lis net.Listener
	if cfg.GRPCAddr != "" {
		if lis, err = net.Listen("tcp", cfg.GRPCAddr); err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.HTTPAddr != "" {
		app := httpapi.NewApp(svc, log, m, reg)
		g.Go(func() error {
			log.Info("http listening", zap.String("addr", cfg.HTTPAddr))
			return app.Listen(cfg.HTTPAddr)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return app.ShutdownWithContext(shutCtx)
		})
	}

	if lis != nil {
		gs, hs := grpcapi.NewGRPCServer(svc, log, m)
		g.Go(func() error {
			log.Info("grpc listening", zap.String("addr", lis.Addr().String()))
			if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			hs.Shutdown()
			gs.GracefulStop()
			return nil
		})
	}

	log.Info("grape-gamble is running")
	err = g.Wait()
	log.Info("grape-gamble stopped")
	return err
}
