package domain

// Ticker is a single entry of the 24h ticker snapshot.
type Ticker struct {
	Symbol      string  `json:"symbol"`
	QuoteVolume float64 `json:"quote_volume"`
}

// Candle is one OHLC bar as returned by the exchange, times in ms.
type Candle struct {
	OpenTime int64   `json:"open_time"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
}

// IndicatorBar is a candle joined with the indicator values aligned to it.
// Numeric fields are pointers so a missing value serializes as null, never 0.
type IndicatorBar struct {
	Timestamp int64    `json:"timestamp"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	SMA       *float64 `json:"sma"`
	RSI       *float64 `json:"rsi"`
}

// CoinReport is the per-symbol section of the top-coins response.
type CoinReport struct {
	Symbol   string         `json:"symbol"`
	Interval string         `json:"interval"`
	Bars     []IndicatorBar `json:"data"`
}
