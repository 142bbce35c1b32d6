package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mv/tabctl/internal/audit"
	"github.com/mv/tabctl/internal/snapshot"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Aliases: []string{"bak"},
		Short:   "Snapshot and replay open windows",
		Long: `Snapshot every open window (URLs, pinned tabs, active tab, window
state) to a versioned JSON bundle, and replay such a bundle later.

Examples:
  tabctl backup export                    # Write tabctl-windows-<ts>.json
  tabctl backup export -o before-os-update.json
  tabctl backup show before-os-update.json
  tabctl backup import before-os-update.json`,
	}

	cmd.AddCommand(
		backupExportCmd(),
		backupImportCmd(),
		backupShowCmd(),
	)

	return cmd
}

func backupExportCmd() *cobra.Command {
	var output string

	cmd := newCommand(CommandConfig{
		Use:      "export",
		Short:    "Snapshot all open windows to a file",
		Args:     cobra.NoArgs,
		Category: audit.CategoryBackup,
		Action:   "backup.export",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			s, closer, err := browser(ctx)
			if err != nil {
				return err
			}
			defer closer()

			windows, err := s.ListWindows(ctx)
			if err != nil {
				return err
			}

			data, err := snapshot.Marshal(snapshot.EncodeWindows(windows, now))
			if err != nil {
				return fmt.Errorf("encode windows: %w", err)
			}

			if output == "" {
				output = snapshot.Filename("tabctl-windows", now)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			tabs := 0
			for _, w := range windows {
				tabs += len(w.Tabs)
			}
			fmt.Printf("Exported %d windows (%d tabs) to %s\n", len(windows), tabs, output)
			return nil
		},
	})

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default tabctl-windows-<timestamp>.json)")

	return cmd
}

func backupImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replay a window snapshot",
		Long: `Recreate the windows of a snapshot, one window at a time. A window
that fails to replay is logged and skipped; the rest still open.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			event := auditLogger.Start(audit.CategoryBackup, "backup.import")

			data, err := os.ReadFile(args[0])
			if err != nil {
				exitOnError(event, fmt.Errorf("read %s: %w", args[0], err))
			}

			bundle, err := snapshot.DecodeWindows(data)
			if err != nil {
				exitOnError(event, err)
			}

			s, closer, err := browser(ctx)
			if err != nil {
				exitOnError(event, err)
			}
			defer closer()

			pf := snapshot.Replay(ctx, s, bundle)
			fmt.Println(out.Count(pf, "windows restored"))

			if pf.Ok() {
				auditLogger.LogSuccess(event)
			} else {
				auditLogger.LogPartial(event, pf.Done, pf.Failed)
			}
		},
	}
	return cmd
}

func backupShowCmd() *cobra.Command {
	return newCommand(CommandConfig{
		Use:      "show <file>",
		Short:    "Describe a snapshot without replaying it",
		Args:     cobra.ExactArgs(1),
		Category: audit.CategoryBackup,
		Action:   "backup.show",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			bundle, err := snapshot.DecodeWindows(data)
			if err != nil {
				return err
			}

			fmt.Printf("Snapshot taken %s\n", bundle.Timestamp)
			for i, w := range bundle.Windows {
				state := w.State
				if state == "" {
					state = "normal"
				}
				fmt.Printf("Window %d (%s, %d tabs)\n", i, state, len(w.Tabs))
				fmt.Print(out.Tabs(w.Tabs))
			}
			return nil
		},
	})
}
