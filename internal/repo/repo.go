package repo

import (
	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// Migrate creates or updates the schema for every storefront entity.
func (r *GormRepo) Migrate() error {
	return r.DB.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.UserAddress{},
		&models.UserInteraction{},
	)
}
