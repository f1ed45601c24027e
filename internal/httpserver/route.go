package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitly/storefront/pkg/middleware/auth"
)

type Deps struct {
	Catalog   *CatalogHTTP
	Cart      *CartHTTP
	Checkout  *CheckoutHTTP
	Orders    *OrderHTTP
	Addresses *AddressHTTP

	LoginURL string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	requireLogin := auth.RequireLogin(d.LoginURL)

	api := e.Group("/api")

	// Catalog browsing is open to guests.
	products := api.Group("/products")
	products.GET("", d.Catalog.GetProducts)
	products.GET("/recommendations", d.Catalog.Recommendations)
	if d.Catalog.Search != nil {
		products.GET("/search", d.Catalog.SearchProducts)
	}
	products.GET("/:id", d.Catalog.GetProduct)

	productsAdmin := products.Group("", requireLogin, auth.RequireAdmin)
	productsAdmin.POST("", d.Catalog.CreateProduct)
	productsAdmin.PATCH("/:id", d.Catalog.PatchProduct)

	// Cart handlers apply the guest policy themselves: Count answers
	// guests with zero, mutations answer per GUEST_CART_POLICY.
	cart := api.Group("/cart")
	cart.GET("", d.Cart.GetCart)
	cart.GET("/count", d.Cart.Count)
	cart.POST("", d.Cart.AddToCart)
	cart.PATCH("/:id", d.Cart.UpdateItem)
	cart.DELETE("/:id", d.Cart.RemoveItem)

	checkout := api.Group("/checkout", requireLogin)
	checkout.GET("", d.Checkout.GetCheckout)
	checkout.POST("", d.Checkout.ProcessOrder)
	checkout.GET("/confirmation/:id", d.Checkout.Confirmation)
	checkout.GET("/address/:id", d.Checkout.GetSavedAddress)
	checkout.POST("/address/validate", d.Checkout.ValidateAddress)
	checkout.POST("/shipping", d.Checkout.CalculateShipping)
	checkout.POST("/payment", d.Checkout.ProcessPayment)
	checkout.POST("/promo", d.Checkout.ApplyPromoCode)

	orders := api.Group("/orders", requireLogin)
	orders.GET("", d.Orders.ListOrders)
	orders.GET("/dashboard", d.Orders.Dashboard)
	orders.GET("/:id", d.Orders.GetOrder)
	orders.POST("/:id/cancel", d.Orders.CancelOrder)
	orders.PATCH("/:id/status", d.Orders.UpdateStatus, auth.RequireAdmin)

	addresses := api.Group("/addresses", requireLogin)
	addresses.GET("", d.Addresses.ListAddresses)
	addresses.POST("", d.Addresses.SaveAddress)
	addresses.DELETE("/:id", d.Addresses.DeleteAddress)
}
