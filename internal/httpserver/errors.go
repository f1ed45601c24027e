package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitly/storefront/internal/service"
)

// serviceError maps service sentinel errors onto HTTP responses. Everything
// unexpected stays a generic 500.
func serviceError(c echo.Context, l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrCartEmpty):
		l.Warn(op, "status", 400, "reason", "cart is empty")
		return echo.NewHTTPError(http.StatusBadRequest, "your cart is empty")
	case errors.Is(err, service.ErrValidation):
		l.Warn(op, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn(op, "status", 409, "error", err)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrOrderFailed):
		l.Error(op, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "order could not be processed, please try again")
	default:
		l.Error(op, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
