package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/outfitly/storefront/internal/service"
	"github.com/outfitly/storefront/internal/transport"
	"github.com/outfitly/storefront/pkg/logging"
	"github.com/outfitly/storefront/pkg/middleware/auth"
)

type CheckoutHTTP struct {
	Svc       *service.CheckoutService
	Addresses *service.AddressService
}

func (h *CheckoutHTTP) GetCheckout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.view")

	view, err := h.Svc.View(ctx, auth.UserID(c))
	if err != nil {
		return serviceError(c, l, "checkout_view_error", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHTTP) ProcessOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.process_order")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("process_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, auth.UserID(c), req)
	if err != nil {
		return serviceError(c, l, "process_order_error", err)
	}

	l.Info("process_order_success", "order_id", order.ID, "order_number", order.OrderNumber)
	return c.JSON(http.StatusCreated, order)
}

func (h *CheckoutHTTP) Confirmation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.confirmation")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("confirmation_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	confirmation, err := h.Svc.Confirmation(ctx, auth.UserID(c), id)
	if err != nil {
		return serviceError(c, l, "confirmation_error", err)
	}
	return c.JSON(http.StatusOK, confirmation)
}

func (h *CheckoutHTTP) GetSavedAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.get_saved_address")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_saved_address_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	addr, err := h.Addresses.Get(ctx, auth.UserID(c), id)
	if err != nil {
		return serviceError(c, l, "get_saved_address_error", err)
	}
	return c.JSON(http.StatusOK, addr)
}

// ValidateAddress is the lightweight pre-submit check the checkout form
// calls: names must be present.
func (h *CheckoutHTTP) ValidateAddress(c echo.Context) error {
	var addr transport.ShippingAddress
	if err := c.Bind(&addr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if strings.TrimSpace(addr.FirstName) == "" || strings.TrimSpace(addr.LastName) == "" {
		return c.JSON(http.StatusOK, echo.Map{"valid": false, "message": "name is required"})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "message": "address is valid"})
}

func (h *CheckoutHTTP) CalculateShipping(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.calculate_shipping")

	estimate, err := h.Svc.EstimateShipping(ctx, auth.UserID(c))
	if err != nil {
		return serviceError(c, l, "calculate_shipping_error", err)
	}
	return c.JSON(http.StatusOK, estimate)
}

func (h *CheckoutHTTP) ProcessPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.process_payment")

	var req transport.PaymentInfo
	if err := c.Bind(&req); err != nil {
		l.Warn("process_payment_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.ProcessPayment(req)
	if err != nil {
		return serviceError(c, l, "process_payment_error", err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHTTP) ApplyPromoCode(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.apply_promo")

	var req transport.PromoCodeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("apply_promo_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	discount, ok := service.EvaluatePromoCode(req.Code)
	if !ok {
		return c.JSON(http.StatusOK, transport.PromoCodeResponse{
			Valid:    false,
			Discount: decimal.Zero,
			Message:  "invalid promo code",
		})
	}
	return c.JSON(http.StatusOK, transport.PromoCodeResponse{
		Valid:    true,
		Discount: discount,
		Message:  "promo code applied",
	})
}
