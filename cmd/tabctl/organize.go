package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mv/tabctl/internal/audit"
	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/host"
	"github.com/mv/tabctl/internal/organize"
)

func organizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Reorder or prune the current window's tabs",
		Long: `Reorder or prune the tabs of the current browser window.

Examples:
  tabctl organize group              # Sort tabs into domain buckets
  tabctl organize group --dry-run    # Show the order without moving anything
  tabctl organize shuffle            # Randomize tab order
  tabctl organize dedupe --yes       # Close duplicate tabs`,
	}

	cmd.PersistentFlags().Bool("dry-run", false, "Preview the result without touching the browser")

	cmd.AddCommand(
		organizeGroupCmd(),
		organizeShuffleCmd(),
		organizeDedupeCmd(),
	)

	return cmd
}

// reorder lists the current tabs, computes a target order via plan, and
// either previews it (--dry-run) or applies it move by move.
func reorder(cmd *cobra.Command, action string, plan func([]domain.TabSnapshot) ([]domain.TabSnapshot, error)) {
	ctx := context.Background()
	event := auditLogger.Start(audit.CategoryOrganize, action)

	s, closer, err := browser(ctx)
	if err != nil {
		exitOnError(event, err)
	}
	defer closer()

	tabs, err := s.ListTabs(ctx)
	if err != nil {
		exitOnError(event, err)
	}

	target, err := plan(tabs)
	if err != nil {
		exitOnError(event, err)
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		mem := host.NewMemFrom(tabs)
		if _, err := organize.Apply(ctx, mem, target); err != nil {
			exitOnError(event, err)
		}
		preview, _ := mem.ListTabs(ctx)
		fmt.Print(out.Tabs(preview))
		auditLogger.LogSuccess(event)
		return
	}

	pf, err := organize.Apply(ctx, s, target)
	if err != nil {
		exitOnError(event, err)
	}
	fmt.Println(out.Count(pf, "moved"))

	if pf.Ok() {
		auditLogger.LogSuccess(event)
	} else {
		auditLogger.LogPartial(event, pf.Done, pf.Failed)
	}
}

func organizeGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Sort tabs into domain buckets",
		Long: `Sort the current window's tabs into buckets keyed by base domain
and subdomain, preserving the relative order inside each bucket.
Any tab whose URL cannot be parsed fails the whole pass; nothing moves.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			reorder(cmd, "group", organize.GroupByDomain)
		},
	}
	return cmd
}

func organizeShuffleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Randomize tab order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			reorder(cmd, "shuffle", func(tabs []domain.TabSnapshot) ([]domain.TabSnapshot, error) {
				return organize.Shuffle(tabs), nil
			})
		},
	}
	return cmd
}

func organizeDedupeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Close duplicate tabs",
		Long: `Close tabs whose URL duplicates an earlier tab (case-insensitive).
The first occurrence survives, except that the active tab always
survives its earlier twins.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			event := auditLogger.Start(audit.CategoryOrganize, "dedupe")

			s, closer, err := browser(ctx)
			if err != nil {
				exitOnError(event, err)
			}
			defer closer()

			tabs, err := s.ListTabs(ctx)
			if err != nil {
				exitOnError(event, err)
			}
			active, err := s.ActiveTab(ctx)
			if err != nil {
				exitOnError(event, err)
			}

			dead := organize.FindDuplicates(tabs, active.ID)
			var doomed []domain.TabSnapshot
			for _, t := range tabs {
				if dead[t.ID] {
					doomed = append(doomed, t)
				}
			}
			if len(doomed) == 0 {
				fmt.Println("No duplicate tabs")
				auditLogger.LogSuccess(event)
				return
			}

			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				fmt.Print(out.Tabs(doomed))
				auditLogger.LogSuccess(event)
				return
			}

			if !confirm(cmd, fmt.Sprintf("Close %d duplicate tabs?", len(doomed))).Armed() {
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
	return cmd
}
