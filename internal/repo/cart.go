package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCartItem(ctx context.Context, userID string, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// AddToCart merges into the existing (user, product, size, color) row when
// one exists, otherwise inserts the snapshot row.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where(
				"user_id = ? AND product_id = ? AND size = ? AND color = ?",
				item.UserID, item.ProductID, item.Size, item.Color,
			).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where(
				"user_id = ? AND product_id = ? AND size = ? AND color = ?",
				item.UserID, item.ProductID, item.Size, item.Color,
			).First(item).Error
		}

		return tx.Create(item).Error
	})
}

func (r *GormRepo) SetCartItemQuantity(ctx context.Context, userID string, id uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
			return err
		}
		if quantity <= 0 {
			return tx.Delete(&item).Error
		}
		item.Quantity = quantity
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, userID string, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// CountCartItems sums the quantities across the user's cart.
func (r *GormRepo) CountCartItems(ctx context.Context, userID string) (int, error) {
	var count *int
	err := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("SUM(quantity)").
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	if count == nil {
		return 0, nil
	}
	return *count, nil
}
