package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContieneEsquemaInicial(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.Contains(t, files, "00001_init.sql")

	body, err := fs.ReadFile(FS, "00001_init.sql")
	require.NoError(t, err)
	sql := string(body)
	assert.True(t, strings.HasPrefix(sql, "-- +goose Up"))
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "WHERE status = 'active'", "índice único parcial de suscripciones activas")
	assert.Contains(t, sql, "UNIQUE (product_id, user_id)")
}

func TestFS_ListadosDesempatanPorSecuencia(t *testing.T) {
	body, err := fs.ReadFile(FS, "00002_insert_order.sql")
	require.NoError(t, err)
	sql := string(body)
	assert.True(t, strings.HasPrefix(sql, "-- +goose Up"))
	assert.Contains(t, sql, "-- +goose Down")
	for _, table := range []string{"leads", "company_subscriptions", "reviews"} {
		assert.Contains(t, sql, "ALTER TABLE "+table+" ADD COLUMN seq BIGSERIAL", "tabla %s", table)
	}
}
