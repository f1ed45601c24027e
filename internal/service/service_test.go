package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/events"
	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate())
	return r
}

func newTestRecorder(r *repo.GormRepo) *Recorder {
	return &Recorder{Repo: r, Events: events.Noop{}}
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, category, price string, stock int) models.Product {
	t.Helper()

	p := models.Product{
		Name:            name,
		Price:           decimal.RequireFromString(price),
		Description:     name + " description",
		Category:        category,
		AvailableColors: models.StringList{"Black", "White"},
		AvailableSizes:  models.StringList{"S", "M", "L"},
		StockQuantity:   stock,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, r.CreateProduct(context.Background(), &p))
	return p
}

func interactionCount(t *testing.T, r *repo.GormRepo, userID, interactionType string) int64 {
	t.Helper()

	var n int64
	err := r.DB.Model(&models.UserInteraction{}).
		Where("user_id = ? AND interaction_type = ?", userID, interactionType).
		Count(&n).Error
	require.NoError(t, err)
	return n
}
