package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Authenticate parses the access token from the accessToken cookie or the
// Authorization header and puts the subject and role into the echo context.
// A missing or invalid token is not an error here: routes decide themselves
// whether an identity is required.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return next(c)
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return next(c)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return next(c)
			}
			if sub, ok := claims["sub"].(string); ok && sub != "" {
				c.Set(CtxUserID, sub)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(CtxRole, role)
			}
			return next(c)
		}
	}
}

// RequireLogin rejects requests that carry no authenticated identity,
// pointing the caller at the login entry point.
func RequireLogin(loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserID(c) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"message":   "login required",
					"login_url": loginURL,
				})
			}
			return next(c)
		}
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get(CtxRole).(string)
		if role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights to see this page")
		}
		return next(c)
	}
}

// UserID returns the authenticated caller's id, or "" for guests.
func UserID(c echo.Context) string {
	s, _ := c.Get(CtxUserID).(string)
	return s
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
