package main

import (
	"github.com/spf13/cobra"

	"github.com/mv/tabctl/internal/audit"
)

// CommandFunc defines the function signature for command execution.
type CommandFunc func(cmd *cobra.Command, args []string) error

// CommandConfig holds configuration for creating standardized commands.
type CommandConfig struct {
	Use      string
	Short    string
	Long     string
	Args     cobra.PositionalArgs
	Category audit.Category
	Action   string
	RunFunc  CommandFunc
	Example  string
	Aliases  []string
}

// newCommand creates a Cobra command with audit logging and uniform
// error handling wrapped around RunFunc.
func newCommand(cfg CommandConfig) *cobra.Command {
	return &cobra.Command{
		Use:     cfg.Use,
		Short:   cfg.Short,
		Long:    cfg.Long,
		Args:    cfg.Args,
		Example: cfg.Example,
		Aliases: cfg.Aliases,
		Run: func(cmd *cobra.Command, args []string) {
			event := auditLogger.Start(cfg.Category, cfg.Action)

			if err := cfg.RunFunc(cmd, args); err != nil {
				exitOnError(event, err)
				return
			}

			auditLogger.LogSuccess(event)
		},
	}
}

// newStoreCommand is newCommand plus a persistence requirement: the
// command refuses to run when the sqlite store failed to open.
func newStoreCommand(cfg CommandConfig) *cobra.Command {
	cmd := newCommand(cfg)
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		requireStore(cfg.Category, cfg.Action)
	}
	return cmd
}
