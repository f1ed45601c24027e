package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/transport"
)

var orderSeq atomic.Int64

func seedOrder(t *testing.T, r *repo.GormRepo, userID, status, total string) models.Order {
	t.Helper()

	seq := orderSeq.Add(1)
	o := models.Order{
		OrderNumber: fmt.Sprintf("ORD-20260831120000-%04d", 1000+seq),
		UserID:      userID,
		OrderDate:   time.Now().UTC().Add(-time.Duration(seq) * time.Hour),
		Subtotal:    decimal.RequireFromString(total),
		Total:       decimal.RequireFromString(total),
		Status:      status,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Classic Tee", Price: decimal.RequireFromString(total), Quantity: 1},
		},
	}
	require.NoError(t, r.DB.Create(&o).Error)
	return o
}

func TestOrderService_List_FiltersByStatus(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	seedOrder(t, r, "user-1", models.OrderStatusPending, "10.00")
	seedOrder(t, r, "user-1", models.OrderStatusShipped, "20.00")
	seedOrder(t, r, "user-2", models.OrderStatusPending, "30.00")

	all, err := svc.List(ctx, "user-1", "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shipped, err := svc.List(ctx, "user-1", "shipped")
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, models.OrderStatusShipped, shipped[0].Status)
}

func TestOrderService_List_NewestFirst(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	older := seedOrder(t, r, "user-1", models.OrderStatusPending, "10.00")
	newer := seedOrder(t, r, "user-1", models.OrderStatusPending, "20.00")
	newer.OrderDate = older.OrderDate.Add(2 * time.Hour)
	require.NoError(t, r.DB.Save(&newer).Error)

	orders, err := svc.List(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
}

func TestOrderService_Get_OtherUsersOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	o := seedOrder(t, r, "user-1", models.OrderStatusPending, "10.00")

	_, err := svc.Get(context.Background(), "user-2", o.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOrderService_Dashboard(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	seedOrder(t, r, "user-1", models.OrderStatusPending, "10.00")
	seedOrder(t, r, "user-1", models.OrderStatusProcessing, "20.00")
	seedOrder(t, r, "user-1", models.OrderStatusDelivered, "30.00")
	seedOrder(t, r, "user-1", models.OrderStatusCancelled, "40.00")

	view, err := svc.Dashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 4, view.TotalOrders)
	assert.Equal(t, 2, view.PendingOrders)
	assert.Equal(t, "100.00", view.TotalSpent.StringFixed(2))
	assert.Len(t, view.RecentOrders, 3)
}

func TestOrderService_Cancel_PendingOnly(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	pending := seedOrder(t, r, "user-1", models.OrderStatusPending, "10.00")
	cancelled, err := svc.Cancel(ctx, "user-1", pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
}

func TestOrderService_Cancel_ShippedIsConflict(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	shipped := seedOrder(t, r, "user-1", models.OrderStatusShipped, "10.00")
	_, err := svc.Cancel(ctx, "user-1", shipped.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))

	// The order stays exactly as it was.
	got, err := svc.Get(ctx, "user-1", shipped.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)
}

func TestOrderService_Cancel_UnknownOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	_, err := svc.Cancel(context.Background(), "user-1", 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOrderService_UpdateStatus_ShippedStampsTracking(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	o := seedOrder(t, r, "user-1", models.OrderStatusProcessing, "10.00")

	updated, err := svc.UpdateStatus(ctx, o.ID, transport.UpdateOrderStatusRequest{
		Status:         models.OrderStatusShipped,
		TrackingNumber: "TRACK-123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	require.NotNil(t, updated.ShippedDate)
	assert.Equal(t, "TRACK-123", updated.TrackingNumber)
	assert.Nil(t, updated.DeliveredDate)
}

func TestOrderService_UpdateStatus_DeliveredStampsDate(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	o := seedOrder(t, r, "user-1", models.OrderStatusShipped, "10.00")

	updated, err := svc.UpdateStatus(context.Background(), o.ID, transport.UpdateOrderStatusRequest{
		Status: models.OrderStatusDelivered,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveredDate)
}

func TestOrderService_UpdateStatus_IllegalTransition(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	tests := []struct {
		from, to string
	}{
		{models.OrderStatusDelivered, models.OrderStatusPending},
		{models.OrderStatusCancelled, models.OrderStatusShipped},
		{models.OrderStatusShipped, models.OrderStatusProcessing},
	}
	for _, tt := range tests {
		o := seedOrder(t, r, "user-1", tt.from, "10.00")
		_, err := svc.UpdateStatus(ctx, o.ID, transport.UpdateOrderStatusRequest{Status: tt.to})
		require.Error(t, err, "%s -> %s", tt.from, tt.to)
		assert.True(t, errors.Is(err, ErrConflict), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	o := seedOrder(t, r, "user-1", models.OrderStatusPending, "10.00")
	_, err := svc.UpdateStatus(context.Background(), o.ID, transport.UpdateOrderStatusRequest{Status: "Lost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}
