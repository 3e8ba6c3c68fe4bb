package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/ananyakrishnan/zaika/app/models"
)

// Food is a menu item.
type Food struct {
	gorm.Model
	Name     string  `gorm:"size:255;not null;index"`
	Price    float64 `gorm:"not null;default:0"`
	Category string  `gorm:"size:100;index"`
	Image    string  `gorm:"size:512"`
}

// PublicID is what the API exposes; the numeric primary key stays internal.
func (f Food) PublicID() string {
	return hex.EncodeToString([]byte{byte(f.ID >> 24), byte(f.ID >> 16), byte(f.ID >> 8), byte(f.ID)})
}

func (f Food) toProduct() models.Product {
	return models.Product{
		ID:       f.PublicID(),
		Name:     f.Name,
		Price:    f.Price,
		Category: f.Category,
		Image:    f.Image,
	}
}

// Account is a registered customer.
type Account struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"`
	Email    string `gorm:"uniqueIndex;size:255;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt hash, never serialised
	Phone    string `gorm:"size:20"`
	Address  string `gorm:"type:text"`
}

func (a Account) toUser() models.User {
	return models.User{
		ID:    publicAccountID(a.ID),
		Name:  a.Name,
		Email: a.Email,
	}
}

func publicAccountID(id uint) string {
	return hex.EncodeToString([]byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)})
}

// Order is a placed order. Items are stored as a JSON snapshot so later menu
// edits never rewrite order history.
type Order struct {
	gorm.Model
	PublicID        string  `gorm:"uniqueIndex;size:24;not null"`
	AccountID       uint    `gorm:"not null;index"`
	ItemsJSON       string  `gorm:"type:text;not null"`
	TotalAmount     float64 `gorm:"not null"`
	DeliveryAddress string  `gorm:"type:text;not null"`
	Phone           string  `gorm:"size:20;not null"`
	Status          string  `gorm:"size:20;not null;default:pending;index"`
}

// newPublicID returns a 24-hex-character order identifier.
func newPublicID() string {
	buf := make([]byte, 12)
	rand.Read(buf) //nolint:errcheck
	return hex.EncodeToString(buf)
}

func (o Order) toAPI() models.Order {
	var items []models.OrderItem
	json.Unmarshal([]byte(o.ItemsJSON), &items) //nolint:errcheck
	return models.Order{
		ID:              o.PublicID,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		Status:          models.OrderStatus(o.Status),
		CreatedAt:       o.CreatedAt,
	}
}
