package domain

import (
	"context"
	"time"
)

// MarketData defines the interface for the exchange's public market endpoints.
type MarketData interface {
	GetTickers(ctx context.Context) ([]Ticker, error)
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]Candle, error)
}

// Cache is a key-value store with per-entry expiration.
// Get returns ErrCacheMiss for absent or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// UserRepository defines storage operations for registered users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
