// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "Main Application Entry Point"
//   Timestamp: "2025-11-27T14:10:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Wired config, record store, service and web server behind a CLI"
//   Principle_Applied: "Aether-Engineering-SOLID-S, Clean Architecture"
//   Quality_Check: "Graceful shutdown, signal handling, component initialization"
// }}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/analyzer"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/config"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/database"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/filter"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envFile string

	rootCmd = &cobra.Command{
		Use:   "string-analyzer",
		Short: "Analyze, store and filter strings over HTTP",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFormatter(&log.TextFormatter{
				FullTimestamp: true,
			})
		},
		RunE: runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service (default)",
		RunE:  runServe,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze [value]",
		Short: "Print the computed properties of a string without storing it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}

	interpretCmd = &cobra.Command{
		Use:   "interpret [query]",
		Short: "Print the filters a natural-language query maps to",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInterpret,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.GetEnv("ENV_FILE", "data/.env"), "path to an optional .env file")
	rootCmd.AddCommand(serveCmd, analyzeCmd, interpretCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info("starting string analyzer...")

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	log.Infof("using %s database: %s", cfg.DBType, cfg.ConnectionString())
	db, err := database.NewDatabase(database.DatabaseType(cfg.DBType), cfg.ConnectionString(), database.Options{
		MongoDatabase: cfg.MongoDatabase,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Disconnect()

	srv := server.NewServer(cfg, analyzer.NewService(db), db)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for interrupt signal or a failed listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info("received shutdown signal, shutting down gracefully...")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server shutdown error: %v", err)
	}

	log.Info("application stopped")
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	props, err := analyzer.Compute(strings.Join(args, " "))
	if err != nil {
		return err
	}
	return printJSON(cmd, props)
}

func runInterpret(cmd *cobra.Command, args []string) error {
	filters := filter.ParseNaturalLanguage(strings.Join(args, " "))
	if filters.IsEmpty() {
		return analyzer.ErrUnparseableQuery
	}
	if err := filters.CheckConflicts(); err != nil {
		return err
	}
	return printJSON(cmd, filters)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
