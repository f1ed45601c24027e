package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/transport"
)

// Legal status transitions. Cancellation is only reachable from Pending.
var statusTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

type OrderService struct {
	Repo *repo.GormRepo
}

// List returns the caller's orders newest first. An empty or "all" status
// means no filter; matching is case-insensitive.
func (s *OrderService) List(ctx context.Context, userID, status string) ([]models.Order, error) {
	if strings.EqualFold(status, "all") {
		status = ""
	}
	return s.Repo.ListOrders(ctx, userID, status)
}

func (s *OrderService) Get(ctx context.Context, userID string, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Dashboard(ctx context.Context, userID string) (*transport.DashboardView, error) {
	orders, err := s.Repo.ListOrders(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	view := transport.DashboardView{
		TotalOrders: len(orders),
		TotalSpent:  decimal.Zero,
	}
	for _, o := range orders {
		if o.Status == models.OrderStatusPending || o.Status == models.OrderStatusProcessing {
			view.PendingOrders++
		}
		view.TotalSpent = view.TotalSpent.Add(o.Total)
	}
	if len(orders) > 3 {
		orders = orders[:3]
	}
	view.RecentOrders = orders
	return &view, nil
}

// Cancel moves a Pending order to Cancelled. Any other status is a
// conflict and the order stays as it was.
func (s *OrderService) Cancel(ctx context.Context, userID string, id uint) (*models.Order, error) {
	order, ok, err := s.Repo.TransitionOrder(ctx, userID, id,
		func(current string) bool { return current == models.OrderStatusPending },
		func(o *models.Order) { o.Status = models.OrderStatusCancelled },
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: only pending orders can be cancelled", ErrConflict)
	}
	return order, nil
}

// UpdateStatus applies an admin status transition, stamping the shipped or
// delivered date and the tracking number where the transition carries one.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, req transport.UpdateOrderStatusRequest) (*models.Order, error) {
	target := req.Status
	if !knownStatus(target) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
	}

	order, ok, err := s.Repo.TransitionOrder(ctx, "", id,
		func(current string) bool { return transitionAllowed(current, target) },
		func(o *models.Order) {
			o.Status = target
			now := time.Now().UTC()
			switch target {
			case models.OrderStatusShipped:
				o.ShippedDate = &now
				if req.TrackingNumber != "" {
					o.TrackingNumber = req.TrackingNumber
				}
			case models.OrderStatusDelivered:
				o.DeliveredDate = &now
			}
		},
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot transition to %s", ErrConflict, target)
	}
	return order, nil
}

func knownStatus(s string) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}

func transitionAllowed(from, to string) bool {
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
