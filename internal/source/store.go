package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis serves data files stored as plain string keys, e.g.
// "munsite:file:data/site.json".
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Name() string {
	return "redis:" + r.prefix
}

func (r *Redis) Fetch(ctx context.Context, path string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+path).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s redis get: %w", path, err)
	}
	return data, nil
}

// Postgres serves data files from the site_file table:
//
//	CREATE TABLE site_file (path TEXT PRIMARY KEY, body BYTEA NOT NULL);
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Name() string {
	return "postgres:site_file"
}

func (p *Postgres) Fetch(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT body FROM site_file WHERE path = $1
	`, path).Scan(&body)

	if err == sql.ErrNoRows {
		return nil, notFound(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", path, err)
	}
	return body, nil
}
