package store

import (
	"context"
	"fmt"
	"strings"

	"gettext-extractor/internal/catalog"
	"gettext-extractor/internal/textutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ DB = (*pgxpool.Pool)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS catalog_messages (
	hash         TEXT PRIMARY KEY,
	domain       TEXT NOT NULL,
	msgctxt      TEXT NOT NULL DEFAULT '',
	msgid        TEXT NOT NULL,
	msgid_plural TEXT NOT NULL DEFAULT '',
	flags        TEXT NOT NULL DEFAULT '',
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS catalog_references (
	hash TEXT NOT NULL REFERENCES catalog_messages(hash) ON DELETE CASCADE,
	file TEXT NOT NULL,
	line INTEGER NOT NULL,
	PRIMARY KEY (hash, file, line)
);`

const upsertMessage = `
INSERT INTO catalog_messages (hash, domain, msgctxt, msgid, msgid_plural, flags)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (hash) DO UPDATE SET
	msgid_plural = EXCLUDED.msgid_plural,
	flags        = EXCLUDED.flags,
	updated_at   = now()`

const insertReference = `
INSERT INTO catalog_references (hash, file, line)
VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING`

// CatalogStore persists extracted catalogs in PostgreSQL so several runs,
// or several repositories, can feed one message inventory.
type CatalogStore struct {
	db DB
}

// NewCatalogStore creates a store on db.
func NewCatalogStore(db DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// Connect opens a pool for databaseURL and verifies it.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pool, nil
}

// EnsureSchema creates the catalog tables when missing.
func (s *CatalogStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure catalog schema: %w", err)
	}
	return nil
}

// MessageHash identifies a message within a domain.
func MessageHash(domain string, e *catalog.Entry) string {
	return textutil.Hash(domain, e.Context, e.ID)
}

// Upsert stores every entry of c and its references. It returns how many
// message rows were written.
func (s *CatalogStore) Upsert(ctx context.Context, c *catalog.Catalog) (int, error) {
	written := 0
	for _, e := range c.Entries {
		hash := MessageHash(c.Domain, e)
		tag, err := s.db.Exec(ctx, upsertMessage,
			hash, c.Domain, e.Context, e.ID, e.Plural, strings.Join(e.Flags, ","))
		if err != nil {
			return written, fmt.Errorf("upsert message %s: %w", textutil.Truncate(e.ID, 30), err)
		}
		written += int(tag.RowsAffected())

		for _, ref := range e.References {
			if _, err := s.db.Exec(ctx, insertReference, hash, ref.File, ref.Line); err != nil {
				return written, fmt.Errorf("insert reference %s: %w", ref, err)
			}
		}
	}

	log.Info().Str("domain", c.Domain).Int("messages", written).Msg("Stored catalog")
	return written, nil
}
