package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/config"
	"github.com/outfitly/storefront/internal/events"
	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/service"
	"github.com/outfitly/storefront/internal/transport"
	"github.com/outfitly/storefront/pkg/middleware/auth"
)

func newCartHandler(t *testing.T) *CartHTTP {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate())

	rec := &service.Recorder{Repo: r, Events: events.Noop{}}
	return &CartHTTP{
		Svc:         &service.CartService{Repo: r, Interactions: rec},
		GuestPolicy: config.GuestRedirect,
		LoginURL:    "/account/login",
	}
}

func seedCartProduct(t *testing.T, r *repo.GormRepo) models.Product {
	t.Helper()

	p := models.Product{
		Name:          "Classic Tee",
		Price:         decimal.RequireFromString("24.99"),
		Category:      "T-Shirts",
		StockQuantity: 10,
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return p
}

func doJSON(t *testing.T, method, target string, body any, userID string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	e := echo.New()
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(auth.CtxUserID, userID)
	}
	return rec, c
}

func TestCartHTTP_AddToCart(t *testing.T) {
	h := newCartHandler(t)
	p := seedCartProduct(t, h.Svc.Repo)

	rec, c := doJSON(t, http.MethodPost, "/api/cart", transport.AddToCartRequest{
		ProductID: p.ID, Quantity: 2, Size: "M",
	}, "user-1")

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, p.ID, item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "Classic Tee", item.ProductName)
}

func TestCartHTTP_AddToCart_GuestRedirectPolicy(t *testing.T) {
	h := newCartHandler(t)

	rec, c := doJSON(t, http.MethodPost, "/api/cart", transport.AddToCartRequest{ProductID: 1}, "")

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/account/login", resp["login_url"])
}

func TestCartHTTP_AddToCart_GuestRejectPolicy(t *testing.T) {
	h := newCartHandler(t)
	h.GuestPolicy = config.GuestReject

	_, c := doJSON(t, http.MethodPost, "/api/cart", transport.AddToCartRequest{ProductID: 1}, "")

	err := h.AddToCart(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestCartHTTP_AddToCart_UnknownProductIs404(t *testing.T) {
	h := newCartHandler(t)

	_, c := doJSON(t, http.MethodPost, "/api/cart", transport.AddToCartRequest{ProductID: 404}, "user-1")

	err := h.AddToCart(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestCartHTTP_UpdateItem_ZeroQuantityRemoves(t *testing.T) {
	h := newCartHandler(t)
	p := seedCartProduct(t, h.Svc.Repo)

	rec, c := doJSON(t, http.MethodPost, "/api/cart", transport.AddToCartRequest{ProductID: p.ID, Quantity: 2}, "user-1")
	require.NoError(t, h.AddToCart(c))

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec, c = doJSON(t, http.MethodPatch, "/api/cart/1", transport.UpdateCartItemRequest{Quantity: 0}, "user-1")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateItem(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "item removed from cart")
}

func TestCartHTTP_GetCart_Summary(t *testing.T) {
	h := newCartHandler(t)
	p := seedCartProduct(t, h.Svc.Repo)

	_, c := doJSON(t, http.MethodPost, "/api/cart", transport.AddToCartRequest{ProductID: p.ID, Quantity: 3}, "user-1")
	require.NoError(t, h.AddToCart(c))

	rec, c := doJSON(t, http.MethodGet, "/api/cart", nil, "user-1")
	require.NoError(t, h.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary transport.CartSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "74.97", summary.Subtotal.StringFixed(2))
	assert.Equal(t, 3, summary.TotalItems)
}

func TestCartHTTP_Count_GuestGetsZero(t *testing.T) {
	h := newCartHandler(t)

	rec, c := doJSON(t, http.MethodGet, "/api/cart/count", nil, "")
	require.NoError(t, h.Count(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp["count"])
}
