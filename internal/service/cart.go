package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/transport"
)

type CartService struct {
	Repo         *repo.GormRepo
	Interactions *Recorder
}

// AddItem puts a product variant into the user's cart. An existing
// (product, size, color) row has its quantity incremented instead of a
// second row appearing.
func (s *CartService) AddItem(ctx context.Context, userID string, req transport.AddToCartRequest) (*models.CartItem, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := s.Repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, req.ProductID)
		}
		return nil, err
	}

	item := models.CartItem{
		UserID:      userID,
		ProductID:   product.ID,
		Size:        req.Size,
		Color:       req.Color,
		ProductName: product.Name,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		Quantity:    req.Quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}

	s.Interactions.Record(ctx, userID, product.ID, models.InteractionAddToCart)
	return &item, nil
}

// UpdateQuantity sets the item's quantity; zero or negative removes it. The
// returned item is nil when the row was deleted.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, itemID uint, quantity int) (*models.CartItem, error) {
	item, err := s.Repo.SetCartItemQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uint) error {
	if err := s.Repo.DeleteCartItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return err
	}
	return nil
}

// ListItems joins cart rows with live product data, so a price change
// before purchase is what the user sees. The add-time snapshot only backs
// up products that have since disappeared.
func (s *CartService) ListItems(ctx context.Context, userID string) (*transport.CartSummary, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summary := transport.CartSummary{Items: make([]transport.CartItemView, 0, len(items))}
	for _, it := range items {
		view := transport.CartItemView{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			ImageURL:    it.ImageURL,
			Quantity:    it.Quantity,
			Size:        it.Size,
			Color:       it.Color,
		}
		if p, ok := products[it.ProductID]; ok {
			view.ProductName = p.Name
			view.Price = p.Price
			view.ImageURL = p.ImageURL
		}
		view.LineTotal = view.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))

		summary.Subtotal = summary.Subtotal.Add(view.LineTotal)
		summary.TotalItems += it.Quantity
		summary.Items = append(summary.Items, view)
	}

	summary.ShippingCost = ShippingCost(summary.Subtotal)
	summary.Tax = Tax(summary.Subtotal)
	summary.Total = summary.Subtotal.Add(summary.ShippingCost).Add(summary.Tax)
	return &summary, nil
}

// Count never fails a guest: no identity simply means zero items.
func (s *CartService) Count(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	return s.Repo.CountCartItems(ctx, userID)
}
