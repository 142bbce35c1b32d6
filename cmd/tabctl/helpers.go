package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mv/tabctl/internal/audit"
	"github.com/mv/tabctl/internal/config"
	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/host"
	"github.com/mv/tabctl/internal/sessions"
	"github.com/mv/tabctl/internal/settings"
)

// exitOnError logs the error to audit and stderr, then exits.
func exitOnError(event *audit.Event, err error) {
	auditLogger.LogError(event, err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// requireStore exits when the sqlite store failed to open.
func requireStore(category audit.Category, action string) {
	if kv != nil {
		return
	}
	event := auditLogger.Start(category, action)
	auditLogger.LogError(event, fmt.Errorf("storage unavailable"))
	fmt.Fprintln(os.Stderr, "Error: storage unavailable; check TABCTL_DATA_DIR")
	os.Exit(1)
}

// browser connects to the host browser and wraps it in the sequential
// queue. The returned closer releases the transport.
func browser(ctx context.Context) (host.Surface, func(), error) {
	r, err := host.Connect(config.Env().BrowserURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect browser: %w", err)
	}
	return host.Sequential(r), func() { r.Close() }, nil
}

// confirm resolves the two-state confirmation token for a destructive
// operation. --yes arms it outright; otherwise an interactive y/N
// prompt is offered, but only on a TTY. Piped input stays unarmed.
func confirm(cmd *cobra.Command, prompt string) sessions.Confirmation {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return sessions.Confirmed()
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return sessions.Confirmation{}
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return sessions.Confirmation{}
	}
	if strings.EqualFold(strings.TrimSpace(line), "y") {
		return sessions.Confirmed()
	}
	return sessions.Confirmation{}
}

// loadSettings reads persisted settings, falling back to defaults when
// storage is unavailable.
func loadSettings(ctx context.Context) domain.Settings {
	if kv == nil {
		return domain.DefaultSettings()
	}
	s, err := settings.Load(ctx, kv)
	if err != nil {
		return domain.DefaultSettings()
	}
	return s
}

// prependPrefix returns the configured URL prefix, or "" when the
// prepend feature is off.
func prependPrefix(ctx context.Context) string {
	s := loadSettings(ctx)
	if !s.Prepend.Enabled {
		return ""
	}
	return s.Prepend.PrependString
}

// parseIndex parses a session index argument against the collection.
func parseIndex(arg string, n int) (int, error) {
	var idx int
	if _, err := fmt.Sscanf(arg, "%d", &idx); err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("index %d out of range (have %d sessions)", idx, n)
	}
	return idx, nil
}
