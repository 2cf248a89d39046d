package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/buildadvisor/internal/bot"
	"github.com/buildadvisor/internal/config"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Discord bot",
	Long: `Bot loads the snapshot (training first when there is none), registers the
slash commands and answers /build, /matchups and /item until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Starting build advisor bot...")

	a, err := newApp(ctx, config.SurfaceBot)
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

	discordBot, err := bot.New(a.cfg, adv, a.catalog)
	if err != nil {
		healthServer.Stop(context.Background())
		return fmt.Errorf("bot error: %w", err)
	}
	if err := discordBot.Start(); err != nil {
		healthServer.Stop(context.Background())
		return fmt.Errorf("start error: %w", err)
	}
	state.ready.Store(true)

	log.Println("Bot running")
	<-ctx.Done()

	log.Println("Shutting down...")

	// Graceful shutdown with short timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthServer.Stop(shutdownCtx)
	discordBot.Stop()

	log.Println("Stopped")
	return nil
}
