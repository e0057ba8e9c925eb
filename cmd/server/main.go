package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/napolitain/battle-lnk/internal/config"
	"github.com/napolitain/battle-lnk/internal/garrison"
	"github.com/napolitain/battle-lnk/internal/loader"
	"github.com/napolitain/battle-lnk/internal/logs"
	"github.com/napolitain/battle-lnk/internal/models"
)

var (
	configFile string
	addr       string
	dataDir    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Battle resolution HTTP service",
		Long: `Serves field battles, sieges and loss distribution as JSON endpoints.
Engine rules are reloaded when the config file changes.`,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file (default configs/battle.yaml)")
	rootCmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides server.addr)")
	rootCmd.Flags().StringVarP(&dataDir, "data", "d", "", "Path to data directory (overrides data_dir)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgLoader := config.NewLoader(configFile)
	cfg, err := cfgLoader.Load()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	if err := logs.Init("battle-server", cfg.Log); err != nil {
		return err
	}
	defer func() { _ = logs.Sync() }()
	logs.Info("config loaded", zap.String("file", cfgLoader.File()), zap.String("addr", cfg.Server.Addr))

	encounters, err := loader.LoadEncounters(cfg.DataDir)
	if err != nil {
		logs.Warn("no encounters loaded", zap.Error(err))
		encounters = []models.Encounter{}
	}
	fortresses, err := loader.LoadFortresses(cfg.DataDir)
	if err != nil {
		logs.Warn("no fortresses loaded", zap.Error(err))
	}

	srv := newServer(cfg, garrison.NewMemoryRegistry(fortresses...), encounters, logs.Logger())

	if cfgLoader.File() != "" {
		cfgLoader.Watch(func(next *config.Config, err error) {
			if err != nil {
				logs.Error("config reload rejected", zap.Error(err))
				return
			}
			srv.reload(next)
			logs.Info("config reloaded")
		})
	}

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	srv.routes(engine)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("listening", zap.String("addr", cfg.Server.Addr),
			zap.Int("encounters", len(encounters)), zap.Int("fortresses", len(fortresses)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logs.Error("server stopped", zap.Error(err))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
