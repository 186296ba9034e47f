package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"visaexpert/internal/audit"
	"visaexpert/internal/mcpserver"
	"visaexpert/internal/rulebase"
	"visaexpert/internal/session"
)

var rulebasePath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP transport surface over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := rulebase.LoadYAML(rulebasePath)
		if err != nil {
			return fmt.Errorf("load rule base: %w", err)
		}
		store := rulebase.NewStore(model)

		sink, closeSink, err := buildSink(cfg.Persistence.SQLiteDSN, logger)
		if err != nil {
			return err
		}
		defer closeSink()

		sessions := session.NewStore(logger, sink)
		srv := mcpserver.NewServer("visaexpert", "0.1.0", sessions, store, cfg.Dialogue.Weights())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("serving MCP tools over stdio", zap.String("rulebase", rulebasePath))
		return srv.Start(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	serveCmd.Flags().StringVar(&rulebasePath, "rulebase", "data/rulebase.yaml", "Path to the YAML rule base")
}

func buildSink(dsn string, logger *zap.Logger) (audit.Sink, func(), error) {
	if dsn == "" {
		return audit.NoopSink{}, func() {}, nil
	}
	sink, err := audit.OpenSQLiteSink(dsn, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit sink: %w", err)
	}
	return sink, func() { _ = sink.Close() }, nil
}
