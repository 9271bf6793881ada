package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/studiowebux/blueline/internal/config"
	"github.com/studiowebux/blueline/internal/editor"
	"github.com/studiowebux/blueline/internal/executor"
	"github.com/studiowebux/blueline/internal/history"
	"github.com/studiowebux/blueline/internal/keybinds"
	"github.com/studiowebux/blueline/internal/logger"
	"github.com/studiowebux/blueline/internal/parser"
	"github.com/studiowebux/blueline/internal/screen"
	"github.com/studiowebux/blueline/internal/session"
	"github.com/studiowebux/blueline/internal/tui"
)

var (
	version = "0.1.0"
)

var (
	flagProfile string
	flagLogFile string
	flagDebug   bool
	flagScreen  string
)

var errNotTerminal = errors.New("blueline needs an interactive terminal")

var osExit = os.Exit

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blueline [file]",
	Short: "Modal HTTP request editor",
	Long: `blueline edits an HTTP request in a vi-style pane and shows the response
in a second pane.

The request pane holds "METHOD URL", optional "Name: value" headers, a blank
line and the body. Type :x to send it, :q to quit.

Examples:
  blueline                       # Start with an empty request
  blueline get-user.http         # Preload a request file
  blueline -p staging api.http   # Use the 'staging' profile for this run
  blueline --screen tcell        # Use the tcell driver`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		defer logger.Close()

		var text string
		if len(args) > 0 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read request file: %w", err)
			}
			text = string(data)
		}
		return runEditor(text)
	},
}

// setup initializes the config directory and the file logger.
func setup() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	path := flagLogFile
	if path == "" {
		path = config.LogFile()
	}
	if err := logger.Init(path, flagDebug); err != nil {
		return err
	}
	return nil
}

func loadSession() (*session.Manager, error) {
	mgr := session.NewManager(config.GetSessionFilePath(), config.GetProfilesFilePath())
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	if flagProfile != "" {
		if err := mgr.UseProfile(flagProfile); err != nil {
			return nil, err
		}
	}
	return mgr, nil
}

func runEditor(text string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	mgr, err := loadSession()
	if err != nil {
		return err
	}

	keys, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	hist, err := history.NewManager(config.DatabasePath)
	if err != nil {
		// history is optional; the editor works without it
		logger.L().Warn("history disabled", zap.Error(err))
	} else {
		defer hist.Close()
	}

	dispatcher := executor.NewDispatcher(nil)
	defer func() {
		if err := dispatcher.Close(); err != nil {
			logger.L().Warn("dispatcher shutdown", zap.Error(err))
		}
	}()

	env := parser.LoadSystemEnv()
	logger.L().Info("starting",
		zap.String("version", version),
		zap.String("screen", flagScreen),
		zap.String("profile", mgr.GetActiveProfile().Name))

	switch flagScreen {
	case "tea":
		return exitOnForceQuit(tui.Run(tui.Options{
			Text:       text,
			Keys:       keys,
			Profiles:   mgr,
			Dispatcher: dispatcher,
			History:    hist,
			Env:        env,
		}))
	case "tcell":
		return exitOnForceQuit(screen.Run(screen.Options{
			Text:       text,
			Keys:       keys,
			Profiles:   mgr,
			Dispatcher: dispatcher,
			History:    hist,
			Env:        env,
		}))
	default:
		return fmt.Errorf("unknown screen %q (use tea or tcell)", flagScreen)
	}
}

// exitOnForceQuit ends the process after :q! before the deferred closers of
// runEditor run. The driver has already restored the terminal.
func exitOnForceQuit(err error) error {
	if errors.Is(err, editor.ErrForceQuit) {
		osExit(0)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "Profile to use for this run")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.blueline/logs/blueline.log)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&flagScreen, "screen", "tea", "Terminal driver: tea or tcell")

	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(profilesCmd)
}
