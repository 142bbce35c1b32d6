package main

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/mv/tabctl/internal/audit"
	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/organize"
)

func tabsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "Inspect and close tabs",
		Long: `Inspect and close tabs in the current browser window.

Examples:
  tabctl tabs list
  tabctl tabs close --match 'https://*.example.com/**'
  tabctl tabs close --match '**/issues/**' --yes`,
	}

	cmd.AddCommand(
		tabsListCmd(),
		tabsCloseCmd(),
	)

	return cmd
}

func tabsListCmd() *cobra.Command {
	return newCommand(CommandConfig{
		Use:      "list",
		Short:    "List tabs in window order",
		Args:     cobra.NoArgs,
		Category: audit.CategoryOrganize,
		Action:   "tabs.list",
		Aliases:  []string{"ls"},
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
			fmt.Print(out.Tabs(tabs))
			return nil
		},
	})
}

func tabsCloseCmd() *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close tabs matching a URL glob",
		Long: `Close every tab in the current window whose URL matches the glob.
Globs use ** to cross path segments; the pattern matches against the
full URL string.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			event := auditLogger.Start(audit.CategoryOrganize, "tabs.close")

			if match == "" {
				exitOnError(event, fmt.Errorf("--match is required"))
			}
			if !doublestar.ValidatePattern(match) {
				exitOnError(event, fmt.Errorf("invalid glob %q", match))
			}

			s, closer, err := browser(ctx)
			if err != nil {
				exitOnError(event, err)
			}
			defer closer()

			tabs, err := s.ListTabs(ctx)
			if err != nil {
				exitOnError(event, err)
			}

			var doomed []domain.TabSnapshot
			for _, t := range tabs {
				ok, err := doublestar.Match(match, t.URL)
				if err != nil {
					exitOnError(event, fmt.Errorf("match %q: %w", match, err))
				}
				if ok {
					doomed = append(doomed, t)
				}
			}
			if len(doomed) == 0 {
				fmt.Println("No matching tabs")
				auditLogger.LogSuccess(event)
				return
			}

			fmt.Print(out.Tabs(doomed))
			if !confirm(cmd, fmt.Sprintf("Close %d tabs?", len(doomed))).Armed() {
				exitOnError(event, fmt.Errorf("aborted: not confirmed"))
			}

			ids := make([]domain.TabID, len(doomed))
			for i, t := range doomed {
				ids[i] = t.ID
			}
			pf := organize.CloseTabs(ctx, s, ids)
			fmt.Println(out.Count(pf, "closed"))

			if pf.Ok() {
				auditLogger.LogSuccess(event)
			} else {
				auditLogger.LogPartial(event, pf.Done, pf.Failed)
			}
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "URL glob to select tabs (doublestar syntax)")

	return cmd
}
