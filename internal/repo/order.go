package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/outfitly/storefront/internal/models"
)

const maxSavedAddresses = 3

// PlaceOrder materializes an order from the user's cart in one transaction:
// optional address save (capped, silent no-op at the cap), order + item
// rows, stock decrement floored at zero, cart cleared. Any failure rolls
// the whole thing back.
func (r *GormRepo) PlaceOrder(ctx context.Context, order *models.Order, cartItems []models.CartItem, saveAddr *models.UserAddress, firstDefault bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if saveAddr != nil {
			var existing int64
			if err := tx.Model(&models.UserAddress{}).
				Where("user_id = ?", saveAddr.UserID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing < maxSavedAddresses {
				if existing == 0 && firstDefault {
					saveAddr.IsDefault = true
				}
				if err := tx.Create(saveAddr).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range cartItems {
			it := &cartItems[i]
			res := tx.Model(&models.Product{}).
				Where("id = ?", it.ProductID).
				Update("stock_quantity", gorm.Expr(
					"CASE WHEN stock_quantity > ? THEN stock_quantity - ? ELSE 0 END",
					it.Quantity, it.Quantity,
				))
			if res.Error != nil {
				return res.Error
			}
		}

		ids := make([]uint, 0, len(cartItems))
		for i := range cartItems {
			ids = append(ids, cartItems[i].ID)
		}
		return tx.Where("user_id = ? AND id IN ?", order.UserID, ids).
			Delete(&models.CartItem{}).Error
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, userID string, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID, status string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Preload("Items").Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("LOWER(status) = LOWER(?)", status)
	}

	var orders []models.Order
	if err := q.Order("order_date DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionOrder loads the order under a row lock, asks allowed whether
// the transition is legal and applies apply before saving. allowed
// returning false leaves the order untouched.
func (r *GormRepo) TransitionOrder(ctx context.Context, userID string, id uint, allowed func(current string) bool, apply func(o *models.Order)) (*models.Order, bool, error) {
	var order models.Order
	ok := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
		if userID != "" {
			q = q.Where("user_id = ?", userID)
		}
		if err := q.First(&order).Error; err != nil {
			return err
		}
		if !allowed(order.Status) {
			return nil
		}
		apply(&order)
		ok = true
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &order, ok, nil
}
