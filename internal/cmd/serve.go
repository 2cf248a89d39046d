package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/buildadvisor/internal/api"
	"github.com/buildadvisor/internal/config"
	"github.com/buildadvisor/pkg/healthcheck"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recommendations over HTTP",
	Long: `Serve loads the snapshot (training first when there is none) and answers
build queries on HTTP_ADDR. A liveness and readiness server listens on
HEALTH_ADDR.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// readiness tracks whether the tables are loaded.
type readiness struct {
	ready atomic.Bool
}

func (r *readiness) check() error {
	if !r.ready.Load() {
		return errors.New("tables not loaded")
	}
	return nil
}

// startHealth runs the health check server in the background.
func startHealth(addr string, ready healthcheck.ReadyFunc) *healthcheck.Server {
	healthServer := healthcheck.New(addr, ready)
	go func() {
		if err := healthServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Health server error: %v", err)
		}
	}()
	return healthServer
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, config.SurfaceServe)
	if err != nil {
		return err
	}
	defer a.Close()

	var state readiness
	healthServer := startHealth(a.cfg.HealthAddr, state.check)

	adv, err := a.loadAdvisor(ctx)
	if err != nil {
		healthServer.Stop(context.Background())
		return err
	}
	state.ready.Store(true)

	handler := api.NewHandler(adv, a.retrain, a.redis)
	server := api.NewServer(a.cfg.HTTPAddr, api.NewRouter(handler, a.cfg.CORSOrigins))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("API listening on %s", a.cfg.HTTPAddr)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-errCh:
		log.Printf("API server error: %v", err)
	}

	log.Println("Shutting down...")

	// Graceful shutdown with short timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	server.Stop(shutdownCtx)
	healthServer.Stop(shutdownCtx)

	log.Println("Stopped")
	return err
}
