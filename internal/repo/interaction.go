package repo

import (
	"context"

	"github.com/outfitly/storefront/internal/models"
)

func (r *GormRepo) CreateInteraction(ctx context.Context, in *models.UserInteraction) error {
	return r.DB.WithContext(ctx).Create(in).Error
}
