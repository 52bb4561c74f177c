package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"munsite/internal/config"
	"munsite/internal/export"
	"munsite/internal/view"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var exportArgs struct {
	out      string
	watch    bool
	debounce time.Duration
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the site to static files",
	Long:  "Renders every page, the hash-router fragments and meetings.ics into --out. With --watch, rebuilds whenever the data directory changes.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportArgs.out, "out", "o", "public", "output directory")
	exportCmd.Flags().BoolVarP(&exportArgs.watch, "watch", "w", false, "rebuild on data changes")
	exportCmd.Flags().DurationVar(&exportArgs.debounce, "debounce", export.DefaultDebounce, "quiet period before a rebuild")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, svc, cleanup, err := openService(view.PathLinks)
	defer cleanup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	build := func(ctx context.Context) error {
		res, err := export.Build(ctx, svc, exportArgs.out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", len(res.Files), exportArgs.out)
		return nil
	}

	if err := build(ctx); err != nil {
		if !exportArgs.watch {
			return err
		}
		slog.Error("initial build failed", "error", err)
	}
	if !exportArgs.watch {
		return nil
	}

	if cfg.DataSource != config.SourceDir {
		return fmt.Errorf("--watch needs DATA_SOURCE=%s, got %s", config.SourceDir, cfg.DataSource)
	}
	err = export.Watch(ctx, filepath.Join(cfg.DataDir, "data"), exportArgs.debounce, build)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
