package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"munsite/db"
	"munsite/internal/config"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"
)

var publishTo string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the data directory to Redis or Postgres",
	Long:  "Copies every file under DATA_DIR/data into the store named by --to, keyed by its site path (data/site.json, ...), so the server can run with DATA_SOURCE=redis or postgres.",
	Args:  cobra.NoArgs,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishTo, "to", config.SourceRedis, "target store: redis or postgres")
}

// collectFiles reads every regular file under root/data, keyed by its
// slash-separated path relative to root.
func collectFiles(root string) (map[string][]byte, error) {
	files := map[string][]byte{}
	err := filepath.WalkDir(filepath.Join(root, "data"), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		body, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files[path.Clean(filepath.ToSlash(rel))] = body
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect data files: %w", err)
	}
	return files, nil
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	files, err := collectFiles(cfg.DataDir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var put func(p string, body []byte) error
	switch publishTo {
	case config.SourceRedis:
		if err := db.ConnectRedis(cfg.RedisURL); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer db.CloseRedis()
		put = db.PutFileRedis
	case config.SourcePostgres:
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		put = func(p string, body []byte) error {
			return db.PutFile(ctx, p, body)
		}
	default:
		return fmt.Errorf("unknown --to %q, want %s or %s", publishTo, config.SourceRedis, config.SourcePostgres)
	}

	for p, body := range files {
		if err := put(p, body); err != nil {
			return fmt.Errorf("publish %s: %w", p, err)
		}
		slog.Debug("published", "path", p, "bytes", len(body))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "published %d files to %s\n", len(files), publishTo)
	return nil
}
