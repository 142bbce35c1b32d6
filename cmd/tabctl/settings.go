package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mv/tabctl/internal/audit"
	"github.com/mv/tabctl/internal/domain"
	"github.com/mv/tabctl/internal/settings"
)

// settingsKeys maps dotted CLI keys onto the settings struct.
var settingsKeys = []string{
	"prepend.enabled",
	"prepend.string",
	"urlInputVisible",
	"copyLinksVisible",
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change preferences",
		Long: `Inspect and change persisted preferences.

Keys:
  prepend.enabled    bool    prefix copied/extracted URLs
  prepend.string     string  the prefix to apply
  urlInputVisible    bool    show the URL input affordance
  copyLinksVisible   bool    show the copy-links affordance

Examples:
  tabctl settings get
  tabctl settings get prepend.enabled
  tabctl settings set prepend.enabled true
  tabctl settings set prepend.string "- "`,
	}

	cmd.AddCommand(
		settingsGetCmd(),
		settingsSetCmd(),
	)

	return cmd
}

func settingValue(s domain.Settings, key string) (string, error) {
	switch key {
	case "prepend.enabled":
		return strconv.FormatBool(s.Prepend.Enabled), nil
	case "prepend.string":
		return s.Prepend.PrependString, nil
	case "urlInputVisible":
		return strconv.FormatBool(s.URLInputVisible), nil
	case "copyLinksVisible":
		return strconv.FormatBool(s.CopyLinksVisible), nil
	}
	return "", domain.NewValidationError("key", fmt.Sprintf("unknown setting %q (known: %v)", key, settingsKeys))
}

func applySetting(s *domain.Settings, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, domain.NewValidationError("value", fmt.Sprintf("%q is not a bool", value))
		}
		return b, nil
	}

	switch key {
	case "prepend.enabled":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.Prepend.Enabled = b
	case "prepend.string":
		s.Prepend.PrependString = value
	case "urlInputVisible":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.URLInputVisible = b
	case "copyLinksVisible":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.CopyLinksVisible = b
	default:
		return domain.NewValidationError("key", fmt.Sprintf("unknown setting %q (known: %v)", key, settingsKeys))
	}
	return nil
}

func settingsGetCmd() *cobra.Command {
	return newStoreCommand(CommandConfig{
		Use:      "get [key]",
		Short:    "Show one setting, or all of them",
		Args:     cobra.MaximumNArgs(1),
		Category: audit.CategorySettings,
		Action:   "settings.get",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := settings.Load(ctx, kv)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				v, err := settingValue(s, args[0])
				if err != nil {
					return err
				}
				fmt.Println(v)
				return nil
			}

			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})
}

func settingsSetCmd() *cobra.Command {
	return newStoreCommand(CommandConfig{
		Use:      "set <key> <value>",
		Short:    "Change a setting",
		Args:     cobra.ExactArgs(2),
		Category: audit.CategorySettings,
		Action:   "settings.set",
		RunFunc: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := settings.Load(ctx, kv)
			if err != nil {
				return err
			}

			if err := applySetting(&s, args[0], args[1]); err != nil {
				return err
			}
			if err := settings.Save(ctx, kv, s); err != nil {
				return err
			}

			v, _ := settingValue(s, args[0])
			fmt.Printf("%s = %s\n", args[0], v)
			return nil
		},
	})
}
