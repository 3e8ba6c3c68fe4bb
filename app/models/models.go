// Package models holds the client-side domain types for the Zaika
// storefront. Products are immutable projections of backend data; orders are
// read-only snapshots owned by the backend.
package models

import "time"

// Product is a menu item sourced from GET /api/foods.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

// CartLine pairs a product with a quantity. Quantity is always >= 1; a
// quantity update to zero removes the line instead.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price × quantity for this line.
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// OrderItem is a snapshot copy of a cart line at checkout time — not a live
// reference to Product, so later menu edits never rewrite order history.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// OrderStatus is the lifecycle state reported by the backend.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Cancellable reports whether the backend still accepts a cancellation for
// an order in this status.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Order is the client's read-only projection of a backend order.
type Order struct {
	ID              string      `json:"_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Phone           string      `json:"phone"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// ShortID returns the last 8 characters of the order id, the form shown in
// listings ("Order #a1b2c3d4").
func (o Order) ShortID() string {
	if len(o.ID) <= 8 {
		return o.ID
	}
	return o.ID[len(o.ID)-8:]
}

// User is the authenticated customer identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is an authenticated user plus the opaque bearer token that
// authorises order-related requests.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
