package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/outfitly/storefront/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts applies the SQL-side filters and ordering. Size and color
// filtering over the JSON list columns happens in the service.
func (r *GormRepo) ListProducts(ctx context.Context, category string, minPrice, maxPrice *decimal.Decimal, orderExpr string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}
	if minPrice != nil {
		q = q.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		q = q.Where("price <= ?", *maxPrice)
	}

	var items []models.Product
	if err := q.Order(orderExpr).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	if len(ids) == 0 {
		return map[uint]models.Product{}, nil
	}
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *GormRepo) FirstProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}
