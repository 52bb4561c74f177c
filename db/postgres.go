package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func Connect(connStr string) error {
	if connStr == "" {
		return errors.New("DATABASE_URL is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}

// EnsureSchema creates the site_file table used by the postgres data source.
func EnsureSchema(ctx context.Context) error {
	_, err := DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS site_file (
			path       TEXT PRIMARY KEY,
			body       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// PutFile stores or replaces one data file.
func PutFile(ctx context.Context, path string, body []byte) error {
	_, err := DB.ExecContext(ctx, `
		INSERT INTO site_file(path, body, updated_at)
		VALUES($1, $2, now())
		ON CONFLICT (path) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`, path, body)
	return err
}
