package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/vitos/crypto_indicator_api/internal/domain"
)

// mockMarket serves canned tickers and klines and counts upstream calls.
type mockMarket struct {
	tickers    []domain.Ticker
	tickersErr error

	klines     map[string][]domain.Candle
	failSymbol string

	tickerCalls int
	klineCalls  int
}

func (m *mockMarket) GetTickers(ctx context.Context) ([]domain.Ticker, error) {
	m.tickerCalls++
	if m.tickersErr != nil {
		return nil, m.tickersErr
	}
	return m.tickers, nil
}

func (m *mockMarket) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	m.klineCalls++
	if symbol == m.failSymbol {
		return nil, fmt.Errorf("%w: connection refused", domain.ErrUpstreamUnavailable)
	}
	candles, ok := m.klines[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: unknown symbol %s", domain.ErrUpstreamUnavailable, symbol)
	}
	if len(candles) > limit {
		candles = candles[:limit]
	}
	return candles, nil
}

// brokenCache fails every operation, for the cache-degradation paths.
type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("cache backend down")
}

func (brokenCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return fmt.Errorf("cache backend down")
}

func (brokenCache) Ping(ctx context.Context) error { return fmt.Errorf("cache backend down") }
func (brokenCache) Close() error                   { return nil }

// memUsers is an in-memory UserRepository for auth tests.
type memUsers struct {
	users []*domain.User
}

func (m *memUsers) CreateUser(ctx context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = int64(len(m.users) + 1)
	m.users = append(m.users, user)
	return nil
}

func (m *memUsers) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// makeCandles builds n bars of a simple rising series starting at base.
func makeCandles(n int, base float64) []domain.Candle {
	candles := make([]domain.Candle, n)
	for i := 0; i < n; i++ {
		price := base + float64(i)
		candles[i] = domain.Candle{
			OpenTime: int64(1700000000000 + i*3600000),
			Open:     price,
			High:     price + 1,
			Low:      price - 1,
			Close:    price + 0.5,
		}
	}
	return candles
}
