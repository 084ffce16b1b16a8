package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const blobSchema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PgxQuerier is the subset of *pgxpool.Pool the blob store needs.
type PgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PGBlobKV struct {
	db PgxQuerier
}

func NewPGBlobKV(db PgxQuerier) *PGBlobKV {
	return &PGBlobKV{db: db}
}

func (r *PGBlobKV) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, blobSchema)
	return err
}

func (r *PGBlobKV) Load(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := r.db.QueryRow(ctx, `SELECT value FROM kv_blobs WHERE key=$1`, key).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (r *PGBlobKV) Save(ctx context.Context, key string, blob []byte) error {
	_, err := r.db.Exec(ctx, `INSERT INTO kv_blobs (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, blob)
	return err
}

var _ BlobKV = (*PGBlobKV)(nil)
