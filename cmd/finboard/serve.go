package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mreyes/finboard/internal/exitcode"
	"github.com/mreyes/finboard/internal/logging"
	"github.com/mreyes/finboard/internal/server"
)

var (
	serveAddr   string
	serveSecret string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", ":8080", "Listen address")
	f.StringVar(&serveSecret, "session-secret", os.Getenv("FINBOARD_SESSION_SECRET"), "Session cookie signing secret (or set FINBOARD_SESSION_SECRET)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	initConfig(log)

	if serveSecret == "" {
		log.Error().Msg("a session secret is required: set --session-secret or FINBOARD_SESSION_SECRET")
		os.Exit(exitcode.UsageError)
	}

	bundle := loadBundle(log)
	srv := server.New(log, cfg, bundle, serveSecret)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(serveAddr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			os.Exit(exitcode.ServeError)
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
			os.Exit(exitcode.ServeError)
		}
	}
	return nil
}
