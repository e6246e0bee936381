package domain

import "time"

// Fulfillment methods. Pickup earns the self-service discount; delivery
// requires an address.
const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

// Payment methods accepted at checkout. Online may be disabled by
// configuration.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentOnline = "online"
)

// PickupDiscountPercent is applied to the subtotal when the order is picked
// up at the restaurant.
const PickupDiscountPercent = 10

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Delivery describes the fulfillment choice. Address and Comment are present
// only when Method is FulfillmentDelivery.
type Delivery struct {
	Method  string `json:"method"`
	Address string `json:"address,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// Order is an immutable submission built once from a cart snapshot and form
// input at submit time.
type Order struct {
	ID        string     `json:"id,omitempty"`
	Customer  Customer   `json:"customer"`
	Delivery  Delivery   `json:"delivery"`
	Payment   string     `json:"payment"`
	Items     []CartLine `json:"items"`
	Subtotal  int64      `json:"subtotal"`
	Discount  int64      `json:"discount"`
	Total     int64      `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}

// Reservation is a table booking request.
type Reservation struct {
	ID     string `json:"id,omitempty"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Phone  string `json:"phone"`
}

// ValidFulfillment reports whether m is a known fulfillment method.
func ValidFulfillment(m string) bool {
	return m == FulfillmentPickup || m == FulfillmentDelivery
}

// ValidPayment reports whether m is a known payment method.
func ValidPayment(m string) bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentOnline
}

// PickupDiscount rounds subtotal*10% half-up. Delivery orders get no
// discount.
func PickupDiscount(subtotal int64, method string) int64 {
	if method != FulfillmentPickup {
		return 0
	}
	return (subtotal*PickupDiscountPercent + 50) / 100
}
