// Package commands provides CLI commands for wallchat.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/wallchat/internal/config"
	"github.com/diogo/wallchat/internal/logging"
	"github.com/diogo/wallchat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalFlags are the persistent flags shared by every subcommand
type globalFlags struct {
	server   string
	interval time.Duration
	logLevel string
	logFile  string
}

// runtime is the resolved configuration for one command invocation
type runtime struct {
	cfg     config.Config
	logger  zerolog.Logger
	logFile io.Closer
}

func (r *runtime) close() {
	if r.logFile != nil {
		_ = r.logFile.Close()
	}
}

// resolve loads the config file and applies flag overrides. Interactive
// commands log to the log file so the screen is never written to; the
// others log to stderr.
func (f *globalFlags) resolve(cmd *cobra.Command, deps *Dependencies, interactive bool) (*runtime, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = f.server
	}
	if flags.Changed("interval") {
		cfg.PollIntervalMs = int(f.interval / time.Millisecond)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}
	if interactive {
		file, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			rt.logger = zerolog.Nop()
		} else {
			rt.logFile = file
			rt.logger = logging.New(cfg.LogLevel, file, false)
		}
	} else {
		rt.logger = logging.New(cfg.LogLevel, deps.Err, deps.Err == os.Stderr && isStderrTTY())
	}
	logging.SetGlobal(rt.logger)
	tui.UpdateTheme(cfg.TUITheme)

	rt.logger.Debug().
		Str("server", cfg.ServerURL).
		Dur("interval", cfg.PollInterval()).
		Msg("configuration resolved")

	return rt, nil
}

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "wallchat",
		Short: "Terminal client for a wallchat server",
		Long: `wallchat talks to a small HTTP chat service: it shows the message wall,
sends messages and renames, and renders the service's endpoint list.

Examples:
  wallchat chat                          Open the chat screen
  wallchat send "hello everyone"         Send one message
  wallchat send /rename ada              Change your display name
  wallchat wall --watch                  Follow the wall in the terminal
  wallchat docs                          Browse the endpoint list
  wallchat docs --plain > API.txt        Render the endpoint list as text
  wallchat -s http://chat.local:8080 chat`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Out, "wallchat %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return cmd.Help()
		},
	}

	root.SetOut(deps.Out)
	root.SetErr(deps.Err)

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.server, "server", "s", "", "Chat server URL (default from config, or $"+config.EnvServer+")")
	pf.DurationVar(&flags.interval, "interval", 0, "Wall poll interval, e.g. 500ms")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")
	pf.StringVar(&flags.logFile, "log-file", "", "Log file used by the interactive screens")
	root.Flags().BoolP("version", "v", false, "Show version and exit")

	root.AddCommand(
		newChatCmd(deps, flags),
		newDocsCmd(deps, flags),
		newSendCmd(deps, flags),
		newWallCmd(deps, flags),
		NewConfigCmd(deps),
	)

	return root
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command, cancelling on SIGINT or SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, tui.FormatError(err))
		stop()
		os.Exit(1)
	}
}
