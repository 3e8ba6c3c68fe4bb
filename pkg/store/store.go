// Package store persists the client's cart and session between runs.
//
// Both stores are write-through: the application state holder calls Save as
// part of the same operation that mutates in-memory state, so a crash or exit
// never loses a mutation that already returned to the caller. State lives on
// a storage.Disk ("local" by default), under three keys:
//
//	cart           — the serialized cart lines, in insertion order
//	session/user   — the serialized authenticated user
//	session/token  — the bearer token, AES-GCM encrypted at rest
//
// Logout clears all three together.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/ananyakrishnan/zaika/app/models"
	"github.com/ananyakrishnan/zaika/pkg/crypt"
	"github.com/ananyakrishnan/zaika/pkg/storage"
)

const (
	cartKey  = "cart"
	userKey  = "session/user"
	tokenKey = "session/token"
)

// ─── Cart store ───────────────────────────────────────────────────────────────

// CartStore mirrors cart contents to durable storage.
type CartStore struct {
	disk storage.Disk
}

// NewCartStore returns a CartStore backed by disk.
func NewCartStore(disk storage.Disk) *CartStore {
	return &CartStore{disk: disk}
}

// Save writes the full cart snapshot. Called on every cart mutation.
func (s *CartStore) Save(lines []models.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("store: marshal cart: %w", err)
	}
	if err := s.disk.Put(cartKey, raw); err != nil {
		return fmt.Errorf("store: save cart: %w", err)
	}
	return nil
}

// Load restores the persisted cart. A missing file is an empty cart, not an
// error — first run and post-logout look identical.
func (s *CartStore) Load() ([]models.CartLine, error) {
	if !s.disk.Exists(cartKey) {
		return nil, nil
	}
	raw, err := s.disk.Get(cartKey)
	if err != nil {
		return nil, fmt.Errorf("store: load cart: %w", err)
	}
	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("store: decode cart: %w", err)
	}
	return lines, nil
}

// Clear removes the persisted cart.
func (s *CartStore) Clear() error {
	if err := s.disk.Delete(cartKey); err != nil {
		return fmt.Errorf("store: clear cart: %w", err)
	}
	return nil
}

// ─── Session store ────────────────────────────────────────────────────────────

// SessionStore persists the authenticated identity and bearer token.
type SessionStore struct {
	disk storage.Disk
}

// NewSessionStore returns a SessionStore backed by disk.
func NewSessionStore(disk storage.Disk) *SessionStore {
	return &SessionStore{disk: disk}
}

// Save persists the session. The token is encrypted before it touches disk.
func (s *SessionStore) Save(sess models.Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("store: marshal user: %w", err)
	}
	encToken, err := crypt.Encrypt(sess.Token)
	if err != nil {
		return fmt.Errorf("store: encrypt token: %w", err)
	}

	if err := s.disk.Put(userKey, rawUser); err != nil {
		return fmt.Errorf("store: save user: %w", err)
	}
	if err := s.disk.Put(tokenKey, []byte(encToken)); err != nil {
		return fmt.Errorf("store: save token: %w", err)
	}
	return nil
}

// Load restores the persisted session. Absent state returns (nil, nil) —
// the anonymous default, not an error. Both keys must be present and intact;
// a half-written or undecryptable session is discarded.
func (s *SessionStore) Load() (*models.Session, error) {
	if !s.disk.Exists(userKey) || !s.disk.Exists(tokenKey) {
		return nil, nil
	}

	rawUser, err := s.disk.Get(userKey)
	if err != nil {
		return nil, fmt.Errorf("store: load user: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return nil, fmt.Errorf("store: decode user: %w", err)
	}

	rawToken, err := s.disk.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("store: load token: %w", err)
	}
	token, err := crypt.Decrypt(string(rawToken))
	if err != nil {
		return nil, fmt.Errorf("store: decrypt token: %w", err)
	}

	return &models.Session{User: user, Token: token}, nil
}

// Clear removes the persisted session.
func (s *SessionStore) Clear() error {
	if err := s.disk.Delete(userKey); err != nil {
		return fmt.Errorf("store: clear user: %w", err)
	}
	if err := s.disk.Delete(tokenKey); err != nil {
		return fmt.Errorf("store: clear token: %w", err)
	}
	return nil
}
