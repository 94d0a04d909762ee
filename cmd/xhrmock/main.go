package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var longHelp = strings.TrimSpace(`
Validate xhrmock fixture files and replay requests against them.

A fixture is a TOML file of [[route]] tables. Each route matches a method and
either an exact url or a regular expression pattern, and answers with a
status, headers and body, or fails with a timeout or network error.
`)

var exampleUsage = strings.TrimSpace(`
  xhrmock check routes.toml
  xhrmock try routes.toml --method POST --url /a/123 --body '{"x":1}'
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// newLogger writes human readable logs to w. Dispatch details show up with verbose.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "xhrmock",
		Short:         "Validate xhrmock fixtures and replay requests against them",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every dispatch decision")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newTryCmd(&verbose))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log := newLogger(os.Stderr, false)
		log.Error().Err(err).Msg("xhrmock")
		stop()
		os.Exit(1)
	}
}
