// Package commands implements the CLI commands for moviescrape.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ChaitanyaVootla/movie-browser-api/app"
	"github.com/ChaitanyaVootla/movie-browser-api/config"
	"github.com/spf13/cobra"
)

// globalFlags override the environment configuration.
type globalFlags struct {
	logLevel   string
	headless   bool
	noSandbox  bool
	browserBin string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:   "moviescrape",
		Short: "Extract movie ratings and watch options from the web",
		Long: `moviescrape runs the extraction engine once from the command line.

Configuration comes from MOVIEAPI_* environment variables; flags override them.

Examples:
  # Knowledge-panel ratings, director and watch options
  moviescrape google "The Shawshank Redemption" --region US

  # IMDb and Rotten Tomatoes ratings
  moviescrape ratings --imdb tt0111161 --rt m/shawshank_redemption

  # Parse a saved page offline
  moviescrape parse --source rt page.html`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initLogger(cmd.ErrOrStderr(), g.logLevel)
		},
	}

	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&g.headless, "headless", true, "run the browser headless")
	root.PersistentFlags().BoolVar(&g.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")
	root.PersistentFlags().StringVar(&g.browserBin, "browser-bin", "", "path to the Chrome/Chromium executable")

	root.AddCommand(newGoogleCmd(&g), newRatingsCmd(&g), newParseCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command, g *globalFlags) *config.Config {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("headless") {
		cfg.Browser.Headless = g.headless
	}
	if flags.Changed("no-sandbox") {
		cfg.Browser.NoSandbox = g.noSandbox
	}
	if g.browserBin != "" {
		cfg.Browser.BrowserBin = g.browserBin
	}
	return cfg
}

func newApp(cmd *cobra.Command, g *globalFlags) (*app.App, error) {
	return app.New(loadConfig(cmd, g))
}

func initLogger(w io.Writer, level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
