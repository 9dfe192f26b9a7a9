package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"edubook-be/internal/bootstrap"
	"edubook-be/internal/config"
	"edubook-be/internal/model"
	"edubook-be/internal/server"
	"edubook-be/internal/tracer"
	"edubook-be/pkg/database"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edubook",
		Short: "Edubook document-to-ebook generation backend",
		Long:  "Edubook turns uploaded documents into structured educational ebooks through a multi-stage LLM pipeline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server and background pipeline consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err := db.AutoMigrate(
				&model.Session{},
				&model.Document{},
				&model.GeneratedContent{},
				&model.AgentLog{},
				&model.ProcessingEvent{},
				&model.RevisionHistory{},
			); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Println("✅ Database schema is up to date")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "edubook %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func serve() error {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	color.New(color.FgCyan, color.Bold).Printf("Edubook backend %s\n", Version)

	g, ctx := errgroup.WithContext(context.Background())

	// Background pipeline consumer.
	g.Go(func() error {
		log.Println("Background: Starting Processing Consumer...")
		if err := container.ProcessingService.Consume(ctx); err != nil {
			return fmt.Errorf("processing consumer: %w", err)
		}
		<-ctx.Done()
		return ctx.Err()
	})

	// Scheduled purge of acknowledged events.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Events.PurgeSchedule, func() {
		if _, err := container.EventService.Purge(context.Background()); err != nil {
			log.Printf("Scheduled event purge failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule event purge: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server.
	srv := server.New(cfg, container)
	g.Go(srv.Run)

	return g.Wait()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
