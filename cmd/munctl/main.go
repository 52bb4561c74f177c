package main

import (
	"fmt"
	"log/slog"
	"munsite/internal/config"
	"munsite/internal/loader"
	"munsite/internal/site"
	"munsite/internal/view"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "munctl",
	Short:         "Build and inspect the Model UN club site",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(exportCmd, nextCmd, renderCmd, publishCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openService loads config and connects the data source. Callers must run
// the returned cleanup.
func openService(style view.LinkStyle) (*config.Config, *site.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, func() {}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, func() {}, err
	}
	src, closeSource, err := cfg.OpenSource()
	if err != nil {
		return nil, nil, closeSource, err
	}
	return cfg, site.NewService(loader.New(src), view.New(style), loc), closeSource, nil
}
