package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpserver "tabib-chatbot/internal/http"
	"tabib-chatbot/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web chat and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	sessions := store.NewSessionStore(a.scripts, a.cfg.Session.TTL, a.log)
	srv, err := httpserver.NewServer(sessions, a.dialogue, a.log)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", logrus.Fields{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("server stopped gracefully")
	return nil
}
