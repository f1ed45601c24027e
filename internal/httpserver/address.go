package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitly/storefront/internal/service"
	"github.com/outfitly/storefront/internal/transport"
	"github.com/outfitly/storefront/pkg/logging"
	"github.com/outfitly/storefront/pkg/middleware/auth"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list")

	addrs, err := h.Svc.List(ctx, auth.UserID(c))
	if err != nil {
		return serviceError(c, l, "list_addresses_error", err)
	}
	return c.JSON(http.StatusOK, addrs)
}

// SaveAddress silently keeps the existing three when the book is full: the
// caller gets a 200 with saved=false, not an error.
func (h *AddressHTTP) SaveAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.save")

	var req transport.SaveAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("save_address_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, saved, err := h.Svc.Save(ctx, auth.UserID(c), req)
	if err != nil {
		return serviceError(c, l, "save_address_error", err)
	}
	if !saved {
		l.Info("save_address_dropped", "reason", "address book full")
		return c.JSON(http.StatusOK, echo.Map{"saved": false, "message": "address book is full"})
	}

	l.Info("save_address_success", "address_id", addr.ID)
	return c.JSON(http.StatusCreated, addr)
}

func (h *AddressHTTP) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.delete")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("delete_address_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Svc.Delete(ctx, auth.UserID(c), id); err != nil {
		return serviceError(c, l, "delete_address_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
