package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/outfitly/storefront/internal/models"
)

type AddToCartRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemView is a cart row joined with the live product, so price edits
// before purchase show up immediately.
type CartItemView struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type CartSummary struct {
	Items        []CartItemView  `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	TotalItems   int             `json:"total_items"`
}

type ShippingAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
}

type PaymentInfo struct {
	Method         string `json:"method"`
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
}

type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Payment         PaymentInfo     `json:"payment"`
	PromoCode       string          `json:"promo_code"`
	SaveAddress     bool            `json:"save_address"`
}

type CheckoutView struct {
	Cart           CartSummary          `json:"cart"`
	SavedAddresses []models.UserAddress `json:"saved_addresses"`
}

type PromoCodeRequest struct {
	Code string `json:"code"`
}

type PromoCodeResponse struct {
	Valid    bool            `json:"valid"`
	Discount decimal.Decimal `json:"discount"`
	Message  string          `json:"message"`
}

type ShippingEstimate struct {
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	EstimatedDays int             `json:"estimated_days"`
}

type PaymentResult struct {
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

type OrderConfirmation struct {
	OrderID           uint               `json:"order_id"`
	OrderNumber       string             `json:"order_number"`
	OrderDate         time.Time          `json:"order_date"`
	Total             decimal.Decimal    `json:"total"`
	Status            string             `json:"status"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
	ShippingAddress   ShippingAddress    `json:"shipping_address"`
	Items             []models.OrderItem `json:"items"`
}

type DashboardView struct {
	TotalOrders   int             `json:"total_orders"`
	PendingOrders int             `json:"pending_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	RecentOrders  []models.Order  `json:"recent_orders"`
}

type SaveAddressRequest struct {
	ShippingAddress
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

type ProductListView struct {
	Products   []models.Product `json:"products"`
	TotalCount int              `json:"total_count"`
	Category   string           `json:"category,omitempty"`
	MinPrice   *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice   *decimal.Decimal `json:"max_price,omitempty"`
	Size       string           `json:"size,omitempty"`
	Color      string           `json:"color,omitempty"`
	SortBy     string           `json:"sort_by"`
}

type CreateProductRequest struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	Category        string          `json:"category"`
	AvailableColors []string        `json:"available_colors"`
	AvailableSizes  []string        `json:"available_sizes"`
	StockQuantity   int             `json:"stock_quantity"`
}

type PatchProductRequest struct {
	Name          *string          `json:"name"`
	Price         *decimal.Decimal `json:"price"`
	Description   *string          `json:"description"`
	ImageURL      *string          `json:"image_url"`
	Category      *string          `json:"category"`
	StockQuantity *int             `json:"stock_quantity"`
}
