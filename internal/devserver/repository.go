package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/pkg/cache"
	"github.com/ananyakrishnan/zaika/pkg/orm"
)

// menuCacheKey and menuCacheTTL govern the Redis-backed menu cache. Every
// menu read goes through it; menu writes are out of scope, so invalidation
// is TTL-only.
const (
	menuCacheKey = "zaika:menu"
	menuCacheTTL = 5 * time.Minute
)

var errNotFound = errors.New("devserver: not found")

// repository owns all database access for the dev backend.
type repository struct {
	db *gorm.DB
}

func (r *repository) q() *orm.Query { return orm.With(r.db) }

// ─── Menu ─────────────────────────────────────────────────────────────────────

func (r *repository) listFoods() ([]models.Product, error) {
	var foods []Food
	if err := r.q().Model(&Food{}).Order("id asc").Cache(menuCacheKey, menuCacheTTL, &foods); err != nil {
		return nil, fmt.Errorf("devserver: list foods: %w", err)
	}
	out := make([]models.Product, 0, len(foods))
	for _, f := range foods {
		out = append(out, f.toProduct())
	}
	return out, nil
}

// ─── Accounts ─────────────────────────────────────────────────────────────────

func (r *repository) findAccountByEmail(email string) (Account, error) {
	var acc Account
	err := r.q().Model(&Account{}).Where("email = ?", email).First(&acc)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Account{}, errNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("devserver: find account: %w", err)
	}
	return acc, nil
}

func (r *repository) createAccount(acc *Account) error {
	if err := r.q().Create(acc); err != nil {
		return fmt.Errorf("devserver: create account: %w", err)
	}
	return nil
}

// ─── Orders ───────────────────────────────────────────────────────────────────

func (r *repository) createOrder(accountID uint, items []models.OrderItem, total float64, address, phone string) (Order, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return Order{}, fmt.Errorf("devserver: marshal items: %w", err)
	}

	order := Order{
		PublicID:        newPublicID(),
		AccountID:       accountID,
		ItemsJSON:       string(raw),
		TotalAmount:     total,
		DeliveryAddress: address,
		Phone:           phone,
		Status:          string(models.StatusPending),
	}
	if err := r.q().Create(&order); err != nil {
		return Order{}, fmt.Errorf("devserver: create order: %w", err)
	}
	return order, nil
}

// listOrders returns the account's orders, newest first, matching how the
// storefront presents history.
func (r *repository) listOrders(accountID uint) ([]Order, error) {
	var orders []Order
	err := r.q().Model(&Order{}).Where("account_id = ?", accountID).Order("created_at desc").Get(&orders)
	if err != nil {
		return nil, fmt.Errorf("devserver: list orders: %w", err)
	}
	return orders, nil
}

func (r *repository) findOrder(accountID uint, publicID string) (Order, error) {
	var order Order
	err := r.q().Model(&Order{}).
		Where("account_id = ? AND public_id = ?", accountID, publicID).
		First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, errNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("devserver: find order: %w", err)
	}
	return order, nil
}

func (r *repository) saveOrder(order *Order) error {
	if err := r.q().Save(order); err != nil {
		return fmt.Errorf("devserver: save order: %w", err)
	}
	return nil
}

// activeOrders returns every order still moving through the kitchen, across
// all accounts. Used by the progression ticker.
func (r *repository) activeOrders() ([]Order, error) {
	var orders []Order
	err := r.q().Model(&Order{}).
		Where("status IN ?", []string{
			string(models.StatusPending),
			string(models.StatusConfirmed),
			string(models.StatusPreparing),
		}).
		Get(&orders)
	if err != nil {
		return nil, fmt.Errorf("devserver: active orders: %w", err)
	}
	return orders, nil
}

// invalidateMenu drops the cached menu; call after seeding.
func invalidateMenu() {
	cache.Forget(menuCacheKey) //nolint:errcheck
}
