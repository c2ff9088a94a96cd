package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naveenspark/nudge/internal/config"
	"github.com/naveenspark/nudge/internal/logging"
	"github.com/naveenspark/nudge/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cli holds what the persistent pre-run resolved for the subcommands.
type cli struct {
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
	logCloser  io.Closer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "nudge",
		Short: "Notifications and a once-a-day satisfaction survey in your terminal",
		Long: `nudge shows transient notifications with auto-dismiss timers and, after
five minutes of use, invites you to a short satisfaction survey at most once
per day.

Run without arguments to start the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			log, closer, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			c.cfg, c.log, c.logCloser = cfg, log, closer
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logCloser != nil {
				c.logCloser.Close() //nolint:errcheck
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultPath(), "path to config file")

	root.AddCommand(
		newStatusCmd(c),
		newResetCmd(c),
		newCompleteCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) runTUI() error {
	s, err := openSession(c.cfg, c.log)
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	app := tui.NewApp(tui.Options{
		Store:           s.store,
		Renderer:        s.renderer,
		Scheduler:       s.scheduler,
		Modal:           s.modal,
		CompleteDelay:   c.cfg.Survey.CompleteDelay,
		DefaultDuration: c.cfg.Notifications.DefaultDuration,
		Version:         version,
		Log:             c.log,
	})
	app.Start()
	defer app.Shutdown()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "nudge "+version)
		},
	}
}
