package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/search"
)

// Run migrates the schema and seeds the reference catalog once. Idempotent:
// a non-empty products table is left alone. When search is enabled the
// catalog is (re)indexed so the index survives a wiped cluster.
func Run(ctx context.Context, r *repo.GormRepo, ix *search.Index, l *slog.Logger) error {
	if err := r.Migrate(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	total, err := r.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}

	if total == 0 {
		products := catalogProducts()
		for i := range products {
			if err := r.CreateProduct(ctx, &products[i]); err != nil {
				return fmt.Errorf("seed product %q: %w", products[i].Name, err)
			}
		}
		l.Info("catalog seeded", "products", len(products))
	} else {
		l.Info("catalog already seeded", "products", total)
	}

	if ix != nil {
		all, err := r.ListProducts(ctx, "", nil, nil, "id ASC")
		if err != nil {
			return fmt.Errorf("load products for indexing: %w", err)
		}
		if err := ix.IndexProducts(ctx, all); err != nil {
			return fmt.Errorf("index products: %w", err)
		}
		l.Info("catalog indexed", "products", len(all))
	}

	return nil
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	clothingSizes  = models.StringList{"XS", "S", "M", "L", "XL"}
	bottomSizes    = models.StringList{"S", "M", "L"}
	shoeSizes      = models.StringList{"36", "37", "38", "39", "40", "41"}
	neutralColors  = models.StringList{"black", "white", "beige"}
	outerwearTones = models.StringList{"camel", "charcoal", "navy"}
)

func catalogProducts() []models.Product {
	now := time.Now().UTC()
	return []models.Product{
		{
			Name:            "Minimal Cotton Tee",
			Price:           price("49.00"),
			Description:     "Premium quality cotton t-shirt with a minimalist design. Perfect for everyday wear.",
			Category:        "tops",
			StockQuantity:   50,
			AvailableSizes:  clothingSizes,
			AvailableColors: neutralColors,
			CreatedAt:       now,
		},
		{
			Name:            "Tailored Linen Pants",
			Price:           price("89.00"),
			Description:     "Comfortable and breathable linen pants with a tailored fit.",
			Category:        "bottoms",
			StockQuantity:   30,
			AvailableSizes:  bottomSizes,
			AvailableColors: neutralColors,
			CreatedAt:       now,
		},
		{
			Name:            "Leather Crossbody Bag",
			Price:           price("129.00"),
			Description:     "Genuine leather crossbody bag with multiple compartments.",
			Category:        "accessories",
			StockQuantity:   20,
			AvailableColors: models.StringList{"brown", "black"},
			CreatedAt:       now,
		},
		{
			Name:            "Classic Wool Coat",
			Price:           price("249.00"),
			Description:     "Elegant wool coat for cold weather. Timeless design.",
			Category:        "outerwear",
			StockQuantity:   15,
			AvailableSizes:  clothingSizes,
			AvailableColors: outerwearTones,
			CreatedAt:       now,
		},
		{
			Name:            "Silk Blend Blouse",
			Price:           price("79.00"),
			Description:     "Luxurious silk blend blouse with a flowing silhouette.",
			Category:        "tops",
			StockQuantity:   40,
			AvailableSizes:  clothingSizes,
			AvailableColors: models.StringList{"ivory", "blush"},
			CreatedAt:       now,
		},
		{
			Name:            "Denim Jacket",
			Price:           price("119.00"),
			Description:     "Classic denim jacket with a modern fit. A wardrobe essential.",
			Category:        "outerwear",
			StockQuantity:   35,
			AvailableSizes:  clothingSizes,
			AvailableColors: models.StringList{"indigo", "washed blue"},
			CreatedAt:       now,
		},
		{
			Name:            "Wide Leg Trousers",
			Price:           price("95.00"),
			Description:     "Trendy wide leg trousers in a comfortable fabric.",
			Category:        "bottoms",
			StockQuantity:   25,
			AvailableSizes:  bottomSizes,
			AvailableColors: neutralColors,
			CreatedAt:       now,
		},
		{
			Name:            "Cashmere Sweater",
			Price:           price("159.00"),
			Description:     "Soft cashmere sweater for ultimate comfort and warmth.",
			Category:        "tops",
			StockQuantity:   18,
			AvailableSizes:  clothingSizes,
			AvailableColors: models.StringList{"oatmeal", "grey"},
			CreatedAt:       now,
		},
		{
			Name:            "Ankle Boots",
			Price:           price("189.00"),
			Description:     "Stylish ankle boots made from premium leather.",
			Category:        "accessories",
			StockQuantity:   22,
			AvailableSizes:  shoeSizes,
			AvailableColors: models.StringList{"black", "brown"},
			CreatedAt:       now,
		},
		{
			Name:            "Oversized Blazer",
			Price:           price("199.00"),
			Description:     "On-trend oversized blazer that pairs well with any outfit.",
			Category:        "outerwear",
			StockQuantity:   12,
			AvailableSizes:  clothingSizes,
			AvailableColors: outerwearTones,
			CreatedAt:       now,
		},
	}
}
