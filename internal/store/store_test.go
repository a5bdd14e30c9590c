package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gettext-extractor/internal/catalog"
	"gettext-extractor/internal/extract"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls  []execCall
	failOn string
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, errors.New("connection reset")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func sampleCatalog() *catalog.Catalog {
	return catalog.Build("messages", []extract.Record{
		{Fields: map[string]any{"msgid": "Hello"}, Line: 1, Filename: "a.js"},
		{Fields: map[string]any{"msgid": "Hello"}, Line: 9, Filename: "b.js"},
		{Fields: map[string]any{"msgctxt": "menu", "msgid": "%s saved"}, Line: 2, Filename: "a.js"},
	})
}

func TestCatalogStore_EnsureSchema(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, NewCatalogStore(db).EnsureSchema(context.Background()))
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "CREATE TABLE IF NOT EXISTS catalog_messages")
}

func TestCatalogStore_Upsert(t *testing.T) {
	db := &fakeDB{}
	c := sampleCatalog()

	written, err := NewCatalogStore(db).Upsert(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	// message, ref, ref, message, ref
	require.Len(t, db.calls, 5)
	hello := MessageHash("messages", c.Entries[0])
	assert.Equal(t, []any{hello, "messages", "", "Hello", "", ""}, db.calls[0].args)
	assert.Equal(t, []any{hello, "a.js", 1}, db.calls[1].args)
	assert.Equal(t, []any{hello, "b.js", 9}, db.calls[2].args)

	saved := db.calls[3].args
	assert.Equal(t, "menu", saved[2])
	assert.Equal(t, "javascript-format", saved[5])
}

func TestCatalogStore_UpsertError(t *testing.T) {
	db := &fakeDB{failOn: "catalog_references"}
	written, err := NewCatalogStore(db).Upsert(context.Background(), sampleCatalog())
	assert.ErrorContains(t, err, "insert reference a.js:1")
	assert.Equal(t, 1, written)
}

func TestMessageHash(t *testing.T) {
	a := &catalog.Entry{ID: "Open"}
	b := &catalog.Entry{ID: "Open", Context: "menu"}
	assert.NotEqual(t, MessageHash("messages", a), MessageHash("messages", b))
	assert.NotEqual(t, MessageHash("messages", a), MessageHash("admin", a))
}
