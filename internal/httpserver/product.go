package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/outfitly/storefront/internal/search"
	"github.com/outfitly/storefront/internal/service"
	"github.com/outfitly/storefront/internal/transport"
	"github.com/outfitly/storefront/internal/util"
	"github.com/outfitly/storefront/pkg/logging"
	"github.com/outfitly/storefront/pkg/middleware/auth"
)

type CatalogHTTP struct {
	Svc    *service.CatalogService
	Search *search.Index
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	q := service.CatalogQuery{
		Category: c.QueryParam("category"),
		Size:     c.QueryParam("size"),
		Color:    c.QueryParam("color"),
		SortBy:   c.QueryParam("sort"),
	}

	var err error
	if q.MinPrice, err = parsePrice(c.QueryParam("min_price")); err != nil {
		l.Warn("get_products_error", "status", 400, "reason", "invalid min_price")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid min_price")
	}
	if q.MaxPrice, err = parsePrice(c.QueryParam("max_price")); err != nil {
		l.Warn("get_products_error", "status", 400, "reason", "invalid max_price")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid max_price")
	}

	view, err := h.Svc.List(ctx, q)
	if err != nil {
		return serviceError(c, l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	product, err := h.Svc.Get(ctx, id, auth.UserID(c))
	if err != nil {
		return serviceError(c, l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_error", "status", 400, "reason", "q required")
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Search.Search(ctx, q, from, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

func (h *CatalogHTTP) Recommendations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.recommendations")

	products, err := h.Svc.Recommendations(ctx)
	if err != nil {
		return serviceError(c, l, "recommendations_error", err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Create(ctx, req)
	if err != nil {
		return serviceError(c, l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("patch_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Patch(ctx, id, req)
	if err != nil {
		return serviceError(c, l, "patch_product_error", err)
	}

	l.Info("patch_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

func parsePrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
