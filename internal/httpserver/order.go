package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitly/storefront/internal/service"
	"github.com/outfitly/storefront/internal/transport"
	"github.com/outfitly/storefront/pkg/logging"
	"github.com/outfitly/storefront/pkg/middleware/auth"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.List(ctx, auth.UserID(c), c.QueryParam("status"))
	if err != nil {
		return serviceError(c, l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	order, err := h.Svc.Get(ctx, auth.UserID(c), id)
	if err != nil {
		return serviceError(c, l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.dashboard")

	view, err := h.Svc.Dashboard(ctx, auth.UserID(c))
	if err != nil {
		return serviceError(c, l, "dashboard_error", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("cancel_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	order, err := h.Svc.Cancel(ctx, auth.UserID(c), id)
	if err != nil {
		return serviceError(c, l, "cancel_order_error", err)
	}

	l.Info("cancel_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req)
	if err != nil {
		return serviceError(c, l, "update_status_error", err)
	}

	l.Info("update_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}
