package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vitos/crypto_indicator_api/internal/domain"
)

const BinanceBaseURL = "https://api.binance.com"

// BinanceAdapter talks to the Binance public REST API. Only the unsigned
// market-data endpoints are used, so no API key is required.
type BinanceAdapter struct {
	baseURL string
	client  *http.Client
}

func NewBinanceAdapter(baseURL string, timeout time.Duration) *BinanceAdapter {
	if baseURL == "" {
		baseURL = BinanceBaseURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &BinanceAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (b *BinanceAdapter) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	return body, nil
}

// GetTickers fetches the full 24h ticker snapshot for all traded pairs.
func (b *BinanceAdapter) GetTickers(ctx context.Context) ([]domain.Ticker, error) {
	body, err := b.get(ctx, "/api/v3/ticker/24hr")
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Symbol      string `json:"symbol"`
		QuoteVolume string `json:"quoteVolume"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode tickers: %w", err)
	}

	tickers := make([]domain.Ticker, 0, len(raw))
	for _, r := range raw {
		qv, err := strconv.ParseFloat(r.QuoteVolume, 64)
		if err != nil {
			continue
		}
		tickers = append(tickers, domain.Ticker{Symbol: r.Symbol, QuoteVolume: qv})
	}

	return tickers, nil
}

// GetKlines fetches up to limit OHLC bars for one symbol, oldest first.
// Binance rows look like [openTime, "open", "high", "low", "close", ...].
func (b *BinanceAdapter) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))

	body, err := b.get(ctx, "/api/v3/klines?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}

	candles := make([]domain.Candle, 0, len(rows))
	for _, raw := range rows {
		if len(raw) < 5 {
			continue
		}

		var ts int64
		if err := json.Unmarshal(raw[0], &ts); err != nil {
			continue
		}

		vals := make([]float64, 4)
		ok := true
		for i := 0; i < 4; i++ {
			var s string
			if err := json.Unmarshal(raw[i+1], &s); err != nil {
				ok = false
				break
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		candles = append(candles, domain.Candle{
			OpenTime: ts,
			Open:     vals[0],
			High:     vals[1],
			Low:      vals[2],
			Close:    vals[3],
		})
	}

	return candles, nil
}
