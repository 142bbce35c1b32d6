package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mv/tabctl/internal/audit"
	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/organize"
	xstrings "github.com/mv/tabctl/internal/strings"
	"github.com/mv/tabctl/internal/urlsan"
)

func urlsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urls",
		Short: "Extract, open and copy URLs",
		Long: `Work with URLs as text: pull them out of arbitrary input, open
them as tabs, or copy the current window's URLs to the clipboard.

Examples:
  tabctl urls extract notes.txt      # Print URLs found in a file
  cat mail.txt | tabctl urls extract # Same, from stdin
  tabctl urls open https://a.com     # Open URLs in a new window
  tabctl urls copy                   # Copy all tab URLs to the clipboard`,
	}

	cmd.AddCommand(
		urlsExtractCmd(),
		urlsOpenCmd(),
		urlsCopyCmd(),
	)

	return cmd
}

func urlsExtractCmd() *cobra.Command {
	return newCommand(CommandConfig{
		Use:      "extract [file]",
		Short:    "Extract valid URLs from text",
		Long:     "Scan text for http, https and ftp URLs, keep the valid ones in order of appearance, and print one sanitized URL per line. Reads stdin when no file is given.",
		Args:     cobra.MaximumNArgs(1),
		Category: audit.CategoryURLs,
		Action:   "urls.extract",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 && args[0] != "-" {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			prefix := prependPrefix(context.Background())
			for _, u := range urlsan.Extract(string(data)) {
				fmt.Println(prefix + u)
			}
			return nil
		},
	})
}

func urlsOpenCmd() *cobra.Command {
	return newCommand(CommandConfig{
		Use:      "open <url>...",
		Short:    "Open URLs in a new browser window",
		Args:     cobra.MinimumNArgs(1),
		Category: audit.CategoryURLs,
		Action:   "urls.open",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			urls := make([]string, 0, len(args))
			for _, a := range args {
				clean := urlsan.Sanitize(a)
				if clean == "" {
					return domain.NewValidationError("url", fmt.Sprintf("invalid URL %q", a))
				}
				urls = append(urls, clean)
			}

			s, closer, err := browser(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if _, err := s.CreateWindow(ctx, urls, true); err != nil {
				return fmt.Errorf("open window: %w", err)
			}
			fmt.Printf("Opened %d tabs\n", len(urls))
			return nil
		},
	})
}

func urlsCopyCmd() *cobra.Command {
	var selected bool

	cmd := newCommand(CommandConfig{
		Use:      "copy",
		Short:    "Copy tab URLs to the clipboard",
		Long:     "Copy the current window's tab URLs to the system clipboard, one per line, honoring the configured prepend prefix. With --selected, copy the highlighted tabs instead (or just the active tab when nothing is highlighted).",
		Args:     cobra.NoArgs,
		Category: audit.CategoryURLs,
		Action:   "urls.copy",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, closer, err := browser(ctx)
			if err != nil {
				return err
			}
			defer closer()

			var tabs []domain.TabSnapshot
			if selected {
				tabs, err = organize.Selection(ctx, s)
				if err != nil {
					return err
				}
			} else {
				tabs, err = s.ListTabs(ctx)
				if err != nil {
					return err
				}
			}
			if len(tabs) == 0 {
				return fmt.Errorf("no tabs to copy")
			}

			urls := make([]string, len(tabs))
			for i, t := range tabs {
				urls[i] = t.URL
			}
			text := xstrings.JoinLines(urls, prependPrefix(ctx))
			if err := clipboard.WriteAll(text); err != nil {
				return fmt.Errorf("clipboard: %w", err)
			}
			fmt.Printf("Copied %d URLs\n", len(urls))
			return nil
		},
	})

	cmd.Flags().BoolVar(&selected, "selected", false, "Copy highlighted tabs instead of the whole window")

	return cmd
}
