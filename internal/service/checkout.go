package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/outfitly/storefront/internal/models"
	"github.com/outfitly/storefront/internal/repo"
	"github.com/outfitly/storefront/internal/transport"
	"github.com/outfitly/storefront/pkg/logging"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

type CheckoutService struct {
	Repo         *repo.GormRepo
	Cart         *CartService
	Interactions *Recorder

	// First saved address becomes the user's default.
	AddressFirstDefault bool
}

// View assembles the checkout page data: the live-priced cart summary and
// up to three saved addresses, newest first.
func (s *CheckoutService) View(ctx context.Context, userID string) (*transport.CheckoutView, error) {
	summary, err := s.Cart.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, ErrCartEmpty
	}

	addrs, err := s.Repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &transport.CheckoutView{Cart: *summary, SavedAddresses: addrs}, nil
}

// PlaceOrder runs the single checkout transition: validate input, price the
// cart from live product data, then atomically create the order and its
// item snapshots, deduct stock (floored at zero) and clear the cart. Any
// storage failure rolls everything back and surfaces a retryable outcome.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, req transport.CheckoutRequest) (*models.Order, error) {
	cartItems, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	if err := validateShippingAddress(req.ShippingAddress); err != nil {
		return nil, err
	}
	if err := validatePayment(req.Payment); err != nil {
		return nil, err
	}
	if req.Payment.Method == "" {
		req.Payment.Method = "card"
	}

	discount := decimal.Zero
	if req.PromoCode != "" {
		d, ok := EvaluatePromoCode(req.PromoCode)
		if !ok {
			return nil, fmt.Errorf("%w: invalid promo code", ErrValidation)
		}
		discount = d
	}

	ids := make([]uint, 0, len(cartItems))
	for _, it := range cartItems {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, it := range cartItems {
		// Price-at-purchase snapshot comes from the live product; the
		// add-time snapshot only covers products removed since.
		name, price, image := it.ProductName, it.Price, it.ImageURL
		if p, ok := products[it.ProductID]; ok {
			name, price, image = p.Name, p.Price, p.ImageURL
		}

		line := price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(line)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   it.ProductID,
			ProductName: name,
			Price:       price,
			Quantity:    it.Quantity,
			Size:        it.Size,
			Color:       it.Color,
			ImageURL:    image,
		})
	}

	shipping := ShippingCost(subtotal)
	tax := Tax(subtotal)
	total := subtotal.Add(shipping).Add(tax).Sub(discount)

	addr := req.ShippingAddress
	order := &models.Order{
		OrderNumber: generateOrderNumber(),
		UserID:      userID,
		OrderDate:   time.Now().UTC(),

		CustomerName:         strings.TrimSpace(addr.FirstName + " " + addr.LastName),
		CustomerEmail:        addr.Email,
		ShippingAddressLine1: addr.AddressLine1,
		ShippingAddressLine2: addr.AddressLine2,
		ShippingCity:         addr.City,
		ShippingState:        addr.State,
		ShippingZip:          addr.Zip,
		ShippingCountry:      addr.Country,

		PaymentMethod: req.Payment.Method,
		TransactionID: uuid.NewString(),

		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Discount:     discount,
		Total:        total,

		Status: models.OrderStatusPending,
		Items:  orderItems,
	}

	var saveAddr *models.UserAddress
	if req.SaveAddress {
		saveAddr = &models.UserAddress{
			UserID:       userID,
			FirstName:    addr.FirstName,
			LastName:     addr.LastName,
			Email:        addr.Email,
			Phone:        addr.Phone,
			AddressLine1: addr.AddressLine1,
			AddressLine2: addr.AddressLine2,
			City:         addr.City,
			State:        addr.State,
			Zip:          addr.Zip,
			Country:      addr.Country,
			CreatedAt:    time.Now().UTC(),
		}
	}

	if err := s.Repo.PlaceOrder(ctx, order, cartItems, saveAddr, s.AddressFirstDefault); err != nil {
		logging.FromContext(ctx).Error("place_order_rollback", "error", err)
		return nil, fmt.Errorf("%w, please try again", ErrOrderFailed)
	}

	for _, it := range order.Items {
		s.Interactions.Record(ctx, userID, it.ProductID, models.InteractionPurchase)
	}
	return order, nil
}

// Confirmation returns the post-checkout summary with the fixed five-day
// delivery estimate.
func (s *CheckoutService) Confirmation(ctx context.Context, userID string, orderID uint) (*transport.OrderConfirmation, error) {
	order, err := s.Repo.GetOrder(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	first, last := splitName(order.CustomerName)
	return &transport.OrderConfirmation{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		OrderDate:         order.OrderDate,
		Total:             order.Total,
		Status:            order.Status,
		EstimatedDelivery: order.OrderDate.AddDate(0, 0, EstimatedDeliveryDays),
		ShippingAddress: transport.ShippingAddress{
			FirstName:    first,
			LastName:     last,
			Email:        order.CustomerEmail,
			AddressLine1: order.ShippingAddressLine1,
			AddressLine2: order.ShippingAddressLine2,
			City:         order.ShippingCity,
			State:        order.ShippingState,
			Zip:          order.ShippingZip,
			Country:      order.ShippingCountry,
		},
		Items: order.Items,
	}, nil
}

// EstimateShipping prices shipping for the caller's current cart.
func (s *CheckoutService) EstimateShipping(ctx context.Context, userID string) (*transport.ShippingEstimate, error) {
	summary, err := s.Cart.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &transport.ShippingEstimate{
		ShippingCost:  ShippingCost(summary.Subtotal),
		EstimatedDays: EstimatedDeliveryDays,
	}, nil
}

// ProcessPayment simulates the payment gateway: it only checks that a card
// number was submitted and mints a transaction id.
func (s *CheckoutService) ProcessPayment(req transport.PaymentInfo) (*transport.PaymentResult, error) {
	if err := validatePayment(req); err != nil {
		return nil, err
	}
	return &transport.PaymentResult{
		TransactionID: uuid.NewString(),
		Message:       "payment processed successfully",
	}, nil
}

func validateShippingAddress(a transport.ShippingAddress) error {
	required := []struct{ name, value string }{
		{"first_name", a.FirstName},
		{"last_name", a.LastName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"address_line1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"zip", a.Zip},
		{"country", a.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if !zipPattern.MatchString(a.Zip) {
		return fmt.Errorf("%w: zip code must be exactly 5 digits", ErrValidation)
	}
	return nil
}

func validatePayment(p transport.PaymentInfo) error {
	if strings.TrimSpace(p.CardNumber) == "" {
		return fmt.Errorf("%w: card number is required", ErrValidation)
	}
	return nil
}

func generateOrderNumber() string {
	timestamp := time.Now().UTC().Format("20060102150405")
	return fmt.Sprintf("ORD-%s-%04d", timestamp, 1000+rand.IntN(9000))
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
