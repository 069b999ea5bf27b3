package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stagecrew/stageinv/internal/api"
	"github.com/stagecrew/stageinv/internal/auth"
	"github.com/stagecrew/stageinv/internal/store"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}
			return c.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default :8080)")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	cfg := c.cfg

	s, err := c.openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	slog.Info("database ready", "path", cfg.Path(cfg.DBPath))

	secret := cfg.JWTSecret
	if secret == "" {
		// Generated on first run and kept in the database.
		secret, err = store.GetJWTSecret(ctx, s.db)
		if err != nil {
			return err
		}
	}

	if len(s.creds.Load()) == 0 {
		slog.Warn("no users configured, nobody can log in", "credentials", cfg.Path(cfg.CredentialsPath))
	}

	router := api.NewRouter(api.Deps{
		DB: s.db,
		Gate: &auth.Gate{
			Credentials: s.creds,
			DB:          s.db,
			Secret:      secret,
			Expiry:      cfg.SessionExpiry.Duration,
		},
		Images: s.images,
		Board:  s.board,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		return err
	}

	slog.Info("server stopped, closing database")
	return nil
}
