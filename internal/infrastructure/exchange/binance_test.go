package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/crypto_indicator_api/internal/domain"
)

func TestGetTickers(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","quoteVolume":"12345.67","lastPrice":"50000"},
			{"symbol":"ETHBTC","quoteVolume":"99.5"},
			{"symbol":"BADUSDT","quoteVolume":"not-a-number"}
		]`))
	}))
	defer ts.Close()

	adapter := NewBinanceAdapter(ts.URL, 5*time.Second)
	tickers, err := adapter.GetTickers(context.Background())
	require.NoError(t, err)

	// The malformed row is skipped, the rest parsed.
	require.Len(t, tickers, 2)
	assert.Equal(t, domain.Ticker{Symbol: "BTCUSDT", QuoteVolume: 12345.67}, tickers[0])
	assert.Equal(t, domain.Ticker{Symbol: "ETHBTC", QuoteVolume: 99.5}, tickers[1])
}

func TestGetKlines(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/klines", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "BTCUSDT", q.Get("symbol"))
		assert.Equal(t, "1h", q.Get("interval"))
		assert.Equal(t, "2", q.Get("limit"))

		w.Write([]byte(`[
			[1700000000000,"100.5","101.0","99.5","100.8","123.4",1700003599999],
			[1700003600000,"100.8","102.0","100.1","101.9","98.7",1700007199999]
		]`))
	}))
	defer ts.Close()

	adapter := NewBinanceAdapter(ts.URL, 5*time.Second)
	candles, err := adapter.GetKlines(context.Background(), "BTCUSDT", "1h", 2)
	require.NoError(t, err)

	require.Len(t, candles, 2)
	assert.Equal(t, domain.Candle{
		OpenTime: 1700000000000,
		Open:     100.5, High: 101.0, Low: 99.5, Close: 100.8,
	}, candles[0])
	assert.Equal(t, int64(1700003600000), candles[1].OpenTime)
	assert.Equal(t, 101.9, candles[1].Close)
}

func TestGetKlines_SkipsMalformedRows(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			[1700000000000,"100.5","101.0","99.5","100.8"],
			[1700003600000,"oops","102.0","100.1","101.9"],
			[1700007200000]
		]`))
	}))
	defer ts.Close()

	adapter := NewBinanceAdapter(ts.URL, 5*time.Second)
	candles, err := adapter.GetKlines(context.Background(), "BTCUSDT", "1h", 3)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, int64(1700000000000), candles[0].OpenTime)
}

func TestUpstreamErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-1121,"msg":"Invalid symbol."}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	adapter := NewBinanceAdapter(ts.URL, 5*time.Second)

	_, err := adapter.GetTickers(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	_, err = adapter.GetKlines(context.Background(), "NOPEUSDT", "1h", 10)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestTransportError(t *testing.T) {
	// Point at a closed server to force a connection error.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	adapter := NewBinanceAdapter(ts.URL, time.Second)
	_, err := adapter.GetTickers(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
