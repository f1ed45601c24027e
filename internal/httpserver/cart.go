package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitly/storefront/internal/config"
	"github.com/outfitly/storefront/internal/service"
	"github.com/outfitly/storefront/internal/transport"
	"github.com/outfitly/storefront/pkg/logging"
	"github.com/outfitly/storefront/pkg/middleware/auth"
)

type CartHTTP struct {
	Svc         *service.CartService
	GuestPolicy config.GuestCartPolicy
	LoginURL    string
}

// guest answers a cart-mutating request from an unauthenticated caller per
// the configured policy. Either way no cart state is touched.
func (h *CartHTTP) guest(c echo.Context, l *slog.Logger) error {
	l.Warn("cart_guest_rejected", "status", 401, "policy", string(h.GuestPolicy))
	if h.GuestPolicy == config.GuestRedirect {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"message":   "login required",
			"login_url": h.LoginURL,
		})
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "login required")
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID := auth.UserID(c)
	if userID == "" {
		return h.guest(c, l)
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(ctx, userID, req)
	if err != nil {
		return serviceError(c, l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "product_id", req.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID := auth.UserID(c)
	if userID == "" {
		return h.guest(c, l)
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateQuantity(ctx, userID, id, req.Quantity)
	if err != nil {
		return serviceError(c, l, "update_cart_error", err)
	}
	if item == nil {
		l.Info("update_cart_removed", "cart_item_id", id)
		return c.JSON(http.StatusOK, echo.Map{"message": "item removed from cart"})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID := auth.UserID(c)
	if userID == "" {
		return h.guest(c, l)
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("remove_cart_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Svc.RemoveItem(ctx, userID, id); err != nil {
		return serviceError(c, l, "remove_cart_error", err)
	}

	l.Info("remove_cart_success", "cart_item_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "item removed from cart"})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID := auth.UserID(c)
	if userID == "" {
		return h.guest(c, l)
	}

	summary, err := h.Svc.ListItems(ctx, userID)
	if err != nil {
		return serviceError(c, l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Count is open: guests get zero, never an error.
func (h *CartHTTP) Count(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.count")

	count, err := h.Svc.Count(ctx, auth.UserID(c))
	if err != nil {
		return serviceError(c, l, "cart_count_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
