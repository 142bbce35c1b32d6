package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mv/tabctl/internal/audit"
	"github.com/mv/tabctl/internal/sessions"
	"github.com/mv/tabctl/internal/snapshot"
	"github.com/mv/tabctl/internal/tui"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions", "sess"},
		Short:   "Save, restore and manage tab sessions",
		Long: `Persist the current window's tabs as a named session and bring
sessions back later, in this or another browser.

Sessions are listed newest first; commands that take an index use the
number shown by 'session list'.

Examples:
  tabctl session save
  tabctl session list
  tabctl session rename 0 "research"
  tabctl session restore 0
  tabctl session rm 2 --yes
  tabctl session export -o sessions.json
  tabctl session import sessions.json
  tabctl session browse`,
	}

	cmd.AddCommand(
		sessionSaveCmd(),
		sessionListCmd(),
		sessionRenameCmd(),
		sessionRemoveCmd(),
		sessionClearCmd(),
		sessionRestoreCmd(),
		sessionExportCmd(),
		sessionImportCmd(),
		sessionBrowseCmd(),
	)

	return cmd
}

func sessionSaveCmd() *cobra.Command {
	return newStoreCommand(CommandConfig{
		Use:      "save",
		Short:    "Save the current window's tabs as a session",
		Args:     cobra.NoArgs,
		Category: audit.CategorySessions,
		Action:   "session.save",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, closer, err := browser(ctx)
			if err != nil {
				return err
			}
			defer closer()

			tabs, err := s.ListTabs(ctx)
			if err != nil {
				return err
			}
			if len(tabs) == 0 {
				return fmt.Errorf("nothing to save: no open tabs")
			}

			sess, err := sessions.New(kv).Save(ctx, tabs)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %q\n", sess.DisplayName())
			return nil
		},
	})
}

func sessionListCmd() *cobra.Command {
	return newStoreCommand(CommandConfig{
		Use:      "list",
		Short:    "List saved sessions, newest first",
		Args:     cobra.NoArgs,
		Category: audit.CategorySessions,
		Action:   "session.list",
		Aliases:  []string{"ls"},
		RunFunc: func(cmd *cobra.Command, args []string) error {
			col, err := sessions.New(kv).List(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(out.Sessions(col))
			return nil
		},
	})
}

func sessionRenameCmd() *cobra.Command {
	return newStoreCommand(CommandConfig{
		Use:      "rename <index> <name>",
		Short:    "Set or clear a custom session name",
		Long:     "Give the session at index a custom name. Long names are shortened to fit the listing. An empty name, or the synthetic \"<n> tabs\" label, reverts to the default.",
		Args:     cobra.ExactArgs(2),
		Category: audit.CategorySessions,
		Action:   "session.rename",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store := sessions.New(kv)

			col, err := store.List(ctx)
			if err != nil {
				return err
			}
			idx, err := parseIndex(args[0], len(col))
			if err != nil {
				return err
			}

			sess, err := store.Rename(ctx, idx, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed to %q\n", sess.DisplayName())
			return nil
		},
	})
}

func sessionRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a saved session",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			event := auditLogger.Start(audit.CategorySessions, "session.rm")
			requireStore(audit.CategorySessions, "session.rm")

			store := sessions.New(kv)
			col, err := store.List(ctx)
			if err != nil {
				exitOnError(event, err)
			}
			idx, err := parseIndex(args[0], len(col))
			if err != nil {
				exitOnError(event, err)
			}

			token := confirm(cmd, fmt.Sprintf("Delete session %q?", col[idx].DisplayName()))
			if err := store.Remove(ctx, idx, token); err != nil {
				exitOnError(event, err)
			}
			fmt.Println("Deleted")
			auditLogger.LogSuccess(event)
		},
	}
	return cmd
}

func sessionClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved session",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			event := auditLogger.Start(audit.CategorySessions, "session.clear")
			requireStore(audit.CategorySessions, "session.clear")

			token := confirm(cmd, "Delete ALL saved sessions?")
			if err := sessions.New(kv).Clear(ctx, token); err != nil {
				exitOnError(event, err)
			}
			fmt.Println("Cleared")
			auditLogger.LogSuccess(event)
		},
	}
	return cmd
}

func sessionRestoreCmd() *cobra.Command {
	return newStoreCommand(CommandConfig{
		Use:      "restore <index>",
		Short:    "Reopen a session in a new window",
		Args:     cobra.ExactArgs(1),
		Category: audit.CategorySessions,
		Action:   "session.restore",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store := sessions.New(kv)

			col, err := store.List(ctx)
			if err != nil {
				return err
			}
			idx, err := parseIndex(args[0], len(col))
			if err != nil {
				return err
			}

			s, closer, err := browser(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if err := store.Restore(ctx, s, col[idx]); err != nil {
				return err
			}
			fmt.Printf("Restored %q (%d tabs)\n", col[idx].DisplayName(), len(col[idx].URLs))
			return nil
		},
	})
}

func sessionExportCmd() *cobra.Command {
	var output string

	cmd := newStoreCommand(CommandConfig{
		Use:      "export",
		Short:    "Export all sessions to a JSON bundle",
		Args:     cobra.NoArgs,
		Category: audit.CategorySessions,
		Action:   "session.export",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			col, err := sessions.New(kv).List(context.Background())
			if err != nil {
				return err
			}

			data, err := snapshot.Marshal(snapshot.EncodeSessions(col, now))
			if err != nil {
				return fmt.Errorf("encode sessions: %w", err)
			}

			if output == "" {
				output = snapshot.Filename("tabctl-sessions", now)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Printf("Exported %d sessions to %s\n", len(col), output)
			return nil
		},
	})

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default tabctl-sessions-<timestamp>.json)")

	return cmd
}

func sessionImportCmd() *cobra.Command {
	return newStoreCommand(CommandConfig{
		Use:      "import <file>",
		Short:    "Merge sessions from a JSON bundle",
		Long:     "Merge a previously exported bundle into the saved sessions. Sessions already present are skipped, so importing the same file twice changes nothing.",
		Args:     cobra.ExactArgs(1),
		Category: audit.CategorySessions,
		Action:   "session.import",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			bundle, err := snapshot.DecodeSessions(data)
			if err != nil {
				return err
			}

			res, err := sessions.New(kv).Import(context.Background(), bundle.Sessions)
			if err != nil {
				return err
			}
			fmt.Println(out.Imported(res.Added, res.Skipped))
			return nil
		},
	})
}

func sessionBrowseCmd() *cobra.Command {
	return newStoreCommand(CommandConfig{
		Use:      "browse",
		Short:    "Browse sessions interactively",
		Long:     "Open an interactive session browser: arrow keys to navigate, enter to restore, d to delete, q to quit.",
		Args:     cobra.NoArgs,
		Category: audit.CategorySessions,
		Action:   "session.browse",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, closer, err := browser(ctx)
			if err != nil {
				// Browsing and deleting work without a browser; only
				// restore needs one.
				s = nil
			} else {
				defer closer()
			}

			return tui.Browse(ctx, sessions.New(kv), s)
		},
	})
}
