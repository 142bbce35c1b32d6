// Package main provides the tabctl CLI entrypoint.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mv/tabctl/internal/audit"
	"github.com/mv/tabctl/internal/config"
	"github.com/mv/tabctl/internal/logging"
	"github.com/mv/tabctl/internal/render"
	"github.com/mv/tabctl/internal/storage"
)

var (
	version = "0.1.0"

	kv          *storage.Store
	auditLogger *audit.Logger
	out         *render.Renderer
	pretty      = true

	log = logging.New("cli")
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tabctl",
		Short: "Organize browser tabs and persist sessions over CDP",
		Long: `tabctl organizes the tabs of a running browser and keeps named
snapshots of them on disk.

Point TABCTL_BROWSER_URL at a browser started with --remote-debugging-port,
or let tabctl launch one. State lives under ~/.tabctl (TABCTL_DATA_DIR).

Use 'tabctl session list' to see saved sessions.
Use 'tabctl help' for the full command list.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			env := config.Env()
			if env.NoColor {
				color.NoColor = true
			}

			// Storage is lazy: commands that need it check for nil.
			var err error
			kv, err = storage.New(env.DataDir)
			if err != nil {
				log.Warn("storage.open", map[string]any{"dir": env.DataDir}, err)
				kv = nil
			} else {
				log.Debug("storage.open", map[string]any{"path": kv.Path()})
			}

			auditLogger, err = audit.Open(env.DataDir)
			if err != nil {
				auditLogger = audit.NewLogger(io.Discard)
			}

			out = render.New(pretty)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if kv != nil {
				kv.Close()
			}
			if auditLogger != nil {
				auditLogger.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty print output")
	rootCmd.PersistentFlags().Bool("yes", false, "Skip confirmation prompts for destructive operations")

	rootCmd.AddGroup(
		&cobra.Group{ID: "tabs", Title: "Tabs:"},
		&cobra.Group{ID: "sessions", Title: "Sessions:"},
		&cobra.Group{ID: "runtime", Title: "Runtime:"},
	)

	organize := organizeCmd()
	organize.GroupID = "tabs"
	rootCmd.AddCommand(organize)

	tabs := tabsCmd()
	tabs.GroupID = "tabs"
	rootCmd.AddCommand(tabs)

	urls := urlsCmd()
	urls.GroupID = "tabs"
	rootCmd.AddCommand(urls)

	session := sessionCmd()
	session.GroupID = "sessions"
	rootCmd.AddCommand(session)

	backup := backupCmd()
	backup.GroupID = "sessions"
	rootCmd.AddCommand(backup)

	settings := settingsCmd()
	settings.GroupID = "runtime"
	rootCmd.AddCommand(settings)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
