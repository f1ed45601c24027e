package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/models"
)

func (r *GormRepo) ListAddresses(ctx context.Context, userID string) ([]models.UserAddress, error) {
	var addrs []models.UserAddress
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(maxSavedAddresses).
		Find(&addrs).Error
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *GormRepo) GetAddress(ctx context.Context, userID string, id uint) (*models.UserAddress, error) {
	var addr models.UserAddress
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&addr).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

// CreateAddress inserts the address unless the user is already at the cap.
// Returns false when the request was silently dropped.
func (r *GormRepo) CreateAddress(ctx context.Context, addr *models.UserAddress, firstDefault bool) (bool, error) {
	saved := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.UserAddress{}).
			Where("user_id = ?", addr.UserID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing >= maxSavedAddresses {
			return nil
		}
		if existing == 0 && firstDefault {
			addr.IsDefault = true
		}
		if err := tx.Create(addr).Error; err != nil {
			return err
		}
		saved = true
		return nil
	})
	return saved, err
}

func (r *GormRepo) DeleteAddress(ctx context.Context, userID string, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.UserAddress{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
