package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studiowebux/blueline/internal/config"
	"github.com/studiowebux/blueline/internal/executor"
	"github.com/studiowebux/blueline/internal/history"
	"github.com/studiowebux/blueline/internal/keybinds"
	"github.com/studiowebux/blueline/internal/logger"
	"github.com/studiowebux/blueline/internal/session"
	"github.com/studiowebux/blueline/internal/types"
)

var (
	historyLimit int
	historyAll   bool
	historyClear bool
	historyStats bool

	keybindsWrite bool
	keybindsList  bool
	keybindsCheck bool
)

var errInvalidKeybinds = errors.New("keybinds.json has errors")

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the profiles file",
	Long: `Print the JSON schema of the profiles file.

Point your editor at it to validate .profiles.json:
  blueline schema > ~/.blueline/profiles.schema.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := session.ProfilesSchema()
		if err != nil {
			return fmt.Errorf("failed to generate schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently executed requests",
	Long: `List recently executed requests, newest first.

By default only requests sent with the active profile are listed.

Examples:
  blueline history            # Last 20 requests for the active profile
  blueline history -n 5 --all # Last 5 requests across all profiles
  blueline history --stats    # Calls, success rate and timings per endpoint
  blueline history --clear    # Delete the whole history`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		defer logger.Close()

		hist, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer hist.Close()

		if historyClear {
			n, err := hist.GetCount()
			if err != nil {
				return err
			}
			if err := hist.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History cleared (%d entries)\n", n)
			return nil
		}

		profile := ""
		if !historyAll {
			mgr, err := loadSession()
			if err != nil {
				return err
			}
			profile = mgr.GetActiveProfile().Name
		}

		if historyStats {
			stats, err := hist.StatsPerEndpoint(profile)
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history")
				return nil
			}
			for _, s := range stats {
				fmt.Fprintln(cmd.OutOrStdout(), formatStats(s))
			}
			return nil
		}

		entries, err := hist.Recent(profile, historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No history")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), formatHistoryEntry(e))
		}
		return nil
	},
}

// formatHistoryEntry renders one line: time, method, status, duration, URL.
func formatHistoryEntry(e types.HistoryEntry) string {
	status := fmt.Sprintf("%d", e.ResponseStatus)
	if e.Error != "" {
		status = "ERR"
	}
	line := fmt.Sprintf("%s  %-7s %-4s %7s  %s",
		e.Timestamp, e.Method, status, executor.FormatDuration(e.Duration), e.URL)
	if e.Profile != "" {
		line += "  [" + e.Profile + "]"
	}
	return line
}

// formatStats renders one endpoint: calls, success rate, timings and the
// status code breakdown.
func formatStats(s history.Stats) string {
	codes := make([]string, 0, len(s.StatusCodes)+1)
	for _, code := range s.Codes() {
		codes = append(codes, fmt.Sprintf("%d×%d", code, s.StatusCodes[code]))
	}
	if s.NetworkErrors > 0 {
		codes = append(codes, fmt.Sprintf("ERR×%d", s.NetworkErrors))
	}
	return fmt.Sprintf("%-7s %s\n        calls %d  ok %.0f%%  avg %s  min %s  max %s  size %s  [%s]",
		s.Method, s.URL,
		s.TotalCalls, s.SuccessRate()*100,
		executor.FormatDuration(int64(s.AvgDurationMs)),
		executor.FormatDuration(s.MinDurationMs),
		executor.FormatDuration(s.MaxDurationMs),
		executor.FormatSize(int(s.AvgRespSize)),
		strings.Join(codes, " "))
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Print, install, list or check keybindings",
	Long: `Print the default keybindings as a keybinds.json document.

Save the output to ~/.blueline/keybinds.json and edit it to remap keys.
An empty value unbinds an action.

Examples:
  blueline keybinds           # Print the defaults
  blueline keybinds --write   # Install the defaults as ~/.blueline/keybinds.json
  blueline keybinds --list    # Effective bindings, overrides applied
  blueline keybinds --check   # Validate ~/.blueline/keybinds.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !keybindsWrite && !keybindsList && !keybindsCheck {
			data, err := json.MarshalIndent(keybinds.ExportDefaults(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		path := config.KeybindsFile

		switch {
		case keybindsWrite:
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := keybinds.SaveConfig(keybinds.ExportDefaults(), path); err != nil {
				return fmt.Errorf("failed to write keybinds: %w", err)
			}
			fmt.Fprintf(out, "Wrote %s\n", path)

		case keybindsCheck:
			cfg, err := keybinds.LoadConfig(path)
			if err != nil {
				return err
			}
			result := keybinds.NewValidator().ValidateConfig(cfg)
			fmt.Fprintln(out, result.String())
			if result.HasErrors() {
				return errInvalidKeybinds
			}

		case keybindsList:
			registry, err := keybinds.LoadOrDefault(path)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatBindings(registry))
		}
		return nil
	},
}

// formatBindings lists every binding grouped by context. Global bindings
// are listed once, under their own heading.
func formatBindings(r *keybinds.Registry) string {
	var sb strings.Builder
	for _, ctx := range keybinds.AllContexts {
		sb.WriteString(string(ctx) + ":\n")
		for _, b := range r.ListBindings(ctx) {
			if b.Context != ctx {
				continue
			}
			fmt.Fprintf(&sb, "  %-16s %s\n", b.Key, b.Action)
		}
	}
	return sb.String()
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles; the active one is marked with *",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		mgr, err := loadSession()
		if err != nil {
			return err
		}
		active := mgr.GetActiveProfile().Name
		for _, p := range mgr.GetProfiles() {
			marker := " "
			if p.Name == active {
				marker = "*"
			}
			base := p.BaseURL
			if base == "" {
				base = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", marker, p.Name, base)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nProfiles file: %s\n", config.GetProfilesFilePath())
		fmt.Fprintf(cmd.OutOrStdout(), "Session file:  %s\n", config.GetSessionFilePath())
		if config.LocalConfigExists() {
			fmt.Fprintln(cmd.OutOrStdout(), "Local overrides from the working directory are active")
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "Include every profile")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all history entries")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show aggregated statistics per endpoint")

	keybindsCmd.Flags().BoolVar(&keybindsWrite, "write", false, "Write the defaults to the keybinds file")
	keybindsCmd.Flags().BoolVar(&keybindsList, "list", false, "List the effective bindings")
	keybindsCmd.Flags().BoolVar(&keybindsCheck, "check", false, "Validate the keybinds file")
	keybindsCmd.MarkFlagsMutuallyExclusive("write", "list", "check")
}
