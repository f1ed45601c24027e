package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/search"
	"github.com/outfitly/storefront/internal/transport"
	"github.com/outfitly/storefront/pkg/logging"
)

// CatalogQuery is the filter/sort input for product listing. All filters
// combine with AND.
type CatalogQuery struct {
	Category string
	Size     string
	Color    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
}

type CatalogService struct {
	Repo         *repo.GormRepo
	Interactions *Recorder
	Search       *search.Index // nil when search is disabled
}

// Sort keys map to deterministic total orders, id as the tiebreak. The
// catalog has no popularity signal yet, so "popular" orders like "newest".
var sortOrders = map[string]string{
	"newest":     "id DESC",
	"price-low":  "price ASC, id ASC",
	"price-high": "price DESC, id ASC",
	"popular":    "id DESC",
	"featured":   "id ASC",
}

// List filters and sorts the catalog. The route is unpaginated: the result
// and its count cover the whole filtered set. Size and color run over the
// JSON list columns in Go.
func (s *CatalogService) List(ctx context.Context, q CatalogQuery) (*transport.ProductListView, error) {
	sortBy := q.SortBy
	orderExpr, ok := sortOrders[sortBy]
	if !ok {
		sortBy, orderExpr = "featured", sortOrders["featured"]
	}

	products, err := s.Repo.ListProducts(ctx, q.Category, q.MinPrice, q.MaxPrice, orderExpr)
	if err != nil {
		return nil, err
	}

	if q.Size != "" || q.Color != "" {
		filtered := products[:0]
		for _, p := range products {
			if q.Size != "" && !p.AvailableSizes.Contains(q.Size) {
				continue
			}
			if q.Color != "" && !p.AvailableColors.Contains(q.Color) {
				continue
			}
			filtered = append(filtered, p)
		}
		products = filtered
	}

	return &transport.ProductListView{
		Products:   products,
		TotalCount: len(products),
		Category:   q.Category,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Size:       q.Size,
		Color:      q.Color,
		SortBy:     sortBy,
	}, nil
}

// Get returns one product and, for an authenticated caller, records a View
// interaction.
func (s *CatalogService) Get(ctx context.Context, id uint, userID string) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if userID != "" {
		s.Interactions.Record(ctx, userID, product.ID, models.InteractionView)
	}
	return product, nil
}

// Recommendations is a placeholder until the recommendation read path
// exists: the first eight products.
func (s *CatalogService) Recommendations(ctx context.Context) ([]models.Product, error) {
	return s.Repo.FirstProducts(ctx, 8)
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	product := models.Product{
		Name:            req.Name,
		Price:           req.Price,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		Category:        req.Category,
		AvailableColors: req.AvailableColors,
		AvailableSizes:  req.AvailableSizes,
		StockQuantity:   req.StockQuantity,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	s.reindex(ctx, product)
	return &product, nil
}

func (s *CatalogService) Patch(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
		}
		product.StockQuantity = *req.StockQuantity
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.reindex(ctx, *product)
	return product, nil
}

func (s *CatalogService) reindex(ctx context.Context, p models.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("product_index_failed", "product_id", p.ID, "error", err)
	}
}
