package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return &repo.GormRepo{DB: db}
}

func TestRun_SeedsReferenceCatalog(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Run(ctx, r, nil, l))

	total, err := r.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
}

func TestRun_IsIdempotent(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Run(ctx, r, nil, l))
	require.NoError(t, Run(ctx, r, nil, l))

	total, err := r.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
}

func TestRun_LeavesExistingCatalogAlone(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Run(ctx, r, nil, l))

	// Wipe one product by hand; a rerun must not restock the catalog.
	require.NoError(t, r.DB.Exec("DELETE FROM products WHERE id = 1").Error)
	require.NoError(t, Run(ctx, r, nil, l))

	total, err := r.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 9, total)
}
