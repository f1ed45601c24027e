package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/transport"
)

func newCartService(t *testing.T) *CartService {
	t.Helper()

	r := newTestRepo(t)
	return &CartService{Repo: r, Interactions: newTestRecorder(r)}
}

func TestCartService_AddItem_MergesSameVariant(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	first, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{
		ProductID: p.ID, Quantity: 1, Size: "M", Color: "Black",
	})
	require.NoError(t, err)

	second, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{
		ProductID: p.ID, Quantity: 2, Size: "M", Color: "Black",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	items, err := svc.Repo.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCartService_AddItem_DifferentVariantsStaySeparate(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	_, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 1, Size: "M", Color: "Black"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 1, Size: "L", Color: "Black"})
	require.NoError(t, err)

	items, err := svc.Repo.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartService_AddItem_DefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	item, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)

	_, err := svc.AddItem(context.Background(), "user-1", transport.AddToCartRequest{ProductID: 404, Quantity: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCartService_AddItem_RecordsInteraction(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	_, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	assert.EqualValues(t, 1, interactionCount(t, svc.Repo, "user-1", models.InteractionAddToCart))
}

func TestCartService_UpdateQuantity_ZeroRemovesItem(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	item, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, "user-1", item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, updated)

	items, err := svc.Repo.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_UpdateQuantity_SetsNewQuantity(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	item, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, "user-1", item.ID, 5)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 5, updated.Quantity)
}

func TestCartService_UpdateQuantity_OtherUsersItem(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	item, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, "user-2", item.ID, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	item, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, "user-1", item.ID))

	err = svc.RemoveItem(ctx, "user-1", item.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCartService_ListItems_UsesLivePrices(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "20.00", 10)

	_, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	// Price drops after the item went into the cart.
	p.Price = decimal.RequireFromString("10.00")
	require.NoError(t, svc.Repo.SaveProduct(ctx, &p))

	summary, err := svc.ListItems(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)

	assert.Equal(t, "10.00", summary.Items[0].Price.StringFixed(2))
	assert.Equal(t, "20.00", summary.Items[0].LineTotal.StringFixed(2))
	assert.Equal(t, "20.00", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", summary.ShippingCost.StringFixed(2))
	assert.Equal(t, "2.00", summary.Tax.StringFixed(2))
	assert.Equal(t, "32.00", summary.Total.StringFixed(2))
	assert.Equal(t, 2, summary.TotalItems)
}

func TestCartService_Count(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	p := seedProduct(t, svc.Repo, "Classic Tee", "T-Shirts", "24.99", 10)

	_, err := svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 2, Size: "M"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", transport.AddToCartRequest{ProductID: p.ID, Quantity: 3, Size: "L"})
	require.NoError(t, err)

	count, err := svc.Count(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestCartService_Count_GuestIsZero(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)

	count, err := svc.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, count)
}
