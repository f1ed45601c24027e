package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. An order starts Pending and only its status (plus
// the shipping stamps) may change afterwards.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Interaction types recorded for the recommendation write sink.
const (
	InteractionView      = "View"
	InteractionAddToCart = "AddToCart"
	InteractionPurchase  = "Purchase"
)

// StringList stores a set of strings as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

type Product struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"not null"                 json:"name"`
	Price           decimal.Decimal `gorm:"type:numeric;not null"    json:"price"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	Category        string          `gorm:"index;not null"           json:"category"`
	AvailableColors StringList      `gorm:"type:text"                json:"available_colors"`
	AvailableSizes  StringList      `gorm:"type:text"                json:"available_sizes"`
	StockQuantity   int             `gorm:"not null;default:0"       json:"stock_quantity"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CartItem carries an add-time snapshot of the product's name, price and
// image. Cart listings join the live product anyway; the snapshot is what
// was shown when the item went in.
type CartItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"                      json:"id"`
	UserID      string          `gorm:"uniqueIndex:idx_cart_variant;not null"         json:"user_id"`
	ProductID   uint            `gorm:"uniqueIndex:idx_cart_variant;not null"         json:"product_id"`
	Size        string          `gorm:"uniqueIndex:idx_cart_variant;not null;default:''" json:"size"`
	Color       string          `gorm:"uniqueIndex:idx_cart_variant;not null;default:''" json:"color"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `gorm:"not null;check:quantity>0" json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (CartItem) TableName() string { return "cart_items" }

type Order struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string    `gorm:"uniqueIndex;not null"     json:"order_number"`
	UserID      string    `gorm:"index;not null"           json:"user_id"`
	OrderDate   time.Time `gorm:"not null"                 json:"order_date"`

	// Shipping snapshot, copied by value so later address edits never
	// rewrite order history.
	CustomerName         string `json:"customer_name"`
	CustomerEmail        string `json:"customer_email"`
	ShippingAddressLine1 string `json:"shipping_address_line1"`
	ShippingAddressLine2 string `json:"shipping_address_line2"`
	ShippingCity         string `json:"shipping_city"`
	ShippingState        string `json:"shipping_state"`
	ShippingZip          string `json:"shipping_zip"`
	ShippingCountry      string `json:"shipping_country"`

	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`

	Subtotal     decimal.Decimal `gorm:"type:numeric;not null" json:"subtotal"`
	ShippingCost decimal.Decimal `gorm:"type:numeric;not null" json:"shipping_cost"`
	Tax          decimal.Decimal `gorm:"type:numeric;not null" json:"tax"`
	Discount     decimal.Decimal `gorm:"type:numeric;not null" json:"discount"`
	Total        decimal.Decimal `gorm:"type:numeric;not null" json:"total"`

	Status         string      `gorm:"not null" json:"status"`
	ShippedDate    *time.Time  `json:"shipped_date,omitempty"`
	DeliveredDate  *time.Time  `json:"delivered_date,omitempty"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint            `gorm:"index;not null"           json:"order_id"`
	ProductID   uint            `gorm:"not null"                 json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Quantity    int             `gorm:"not null;check:quantity>0" json:"quantity"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

type UserAddress struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"index;not null"           json:"user_id"`
	FirstName    string    `gorm:"not null"                 json:"first_name"`
	LastName     string    `gorm:"not null"                 json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `gorm:"not null"                 json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `gorm:"not null"                 json:"city"`
	State        string    `json:"state"`
	Zip          string    `json:"zip"`
	Country      string    `json:"country"`
	IsDefault    bool      `gorm:"not null;default:false"   json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UserAddress) TableName() string { return "user_addresses" }

// UserInteraction is an append-only event row. UserID is empty for
// anonymous browsing. No read path exists yet.
type UserInteraction struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string    `gorm:"index"                    json:"user_id"`
	ProductID       uint      `gorm:"not null"                 json:"product_id"`
	InteractionType string    `gorm:"not null"                 json:"interaction_type"`
	Timestamp       time.Time `gorm:"not null"                 json:"timestamp"`
}
