// Package main is the visaexpert CLI entry point and command registration
// hub, following codeNERD's one-file-per-command-group layout:
//
//   - root.go    - rootCmd, persistent flags, logger lifecycle
//   - serve.go   - serveCmd, the optional MCP transport surface
//   - consult.go - consultCmd, an interactive stdin/stdout dialogue
//   - rules.go   - rulesCmd (validate, test subcommands)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"visaexpert/internal/config"
	"visaexpert/internal/logging"
)

var (
	verbose    bool
	configPath string
	logger     *zap.Logger
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "visaexpert",
	Short: "Interactive backward-chaining eligibility advisor",
	Long: `visaexpert walks a user through a question/answer dialogue and concludes
which of a fixed set of visa eligibility goals are achievable, driven
entirely by a rule base over propositional facts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (optional)")

	rootCmd.AddCommand(serveCmd, consultCmd, rulesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
