package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vitos/crypto_indicator_api/internal/domain"
	"github.com/vitos/crypto_indicator_api/internal/indicator"
	"github.com/vitos/crypto_indicator_api/internal/metrics"
	"github.com/vitos/crypto_indicator_api/internal/sanitize"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// IndicatorService assembles the top-coins indicator response: rank symbols
// by volume, fetch history per symbol, compute SMA/RSI, sanitize, cache.
//
// A failure for any one symbol aborts the whole aggregation and nothing is
// cached. Partial results are never returned.
type IndicatorService struct {
	market   domain.MarketData
	ranking  *RankingService
	cache    domain.Cache
	ttl      time.Duration
	topCount int
	logger   *zap.Logger

	group singleflight.Group
}

func NewIndicatorService(
	market domain.MarketData,
	ranking *RankingService,
	cache domain.Cache,
	ttl time.Duration,
	topCount int,
	logger *zap.Logger,
) *IndicatorService {
	return &IndicatorService{
		market:   market,
		ranking:  ranking,
		cache:    cache,
		ttl:      ttl,
		topCount: topCount,
		logger:   logger,
	}
}

func cacheKey(interval string, limit int) string {
	return fmt.Sprintf("indicators:%s:%d", interval, limit)
}

// TopCoinIndicators returns the serialized JSON array of per-coin reports
// for the given interval and bar count, served from the cache when a fresh
// entry exists. Concurrent misses for the same key are coalesced so only
// one caller performs the upstream fetches.
func (s *IndicatorService) TopCoinIndicators(ctx context.Context, interval string, limit int) ([]byte, error) {
	key := cacheKey(interval, limit)

	if payload, err := s.cache.Get(ctx, key); err == nil {
		metrics.CacheHits.Inc()
		return payload, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		// A broken cache backend must not take the endpoint down.
		s.logger.Warn("cache read failed, computing fresh", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheMisses.Inc()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.aggregate(ctx, key, interval, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *IndicatorService) aggregate(ctx context.Context, key, interval string, limit int) ([]byte, error) {
	start := time.Now()

	symbols, err := s.ranking.TopSymbols(ctx, s.topCount)
	if err != nil {
		metrics.UpstreamErrors.Inc()
		return nil, err
	}

	reports := make([]domain.CoinReport, 0, len(symbols))
	for _, symbol := range symbols {
		candles, err := s.market.GetKlines(ctx, symbol, interval, limit)
		if err != nil {
			metrics.UpstreamErrors.Inc()
			return nil, fmt.Errorf("fetch klines for %s: %w", symbol, err)
		}
		reports = append(reports, buildReport(symbol, interval, candles))
	}

	payload, err := json.Marshal(reports)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}

	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		// Non-fatal: serve the computed response even if caching it failed.
		metrics.CacheWriteErrors.Inc()
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}

	metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("aggregated top-coin indicators",
		zap.String("interval", interval),
		zap.Int("limit", limit),
		zap.Int("symbols", len(symbols)),
		zap.Duration("took", time.Since(start)))

	return payload, nil
}

// buildReport joins one symbol's candles with its indicator series. Every
// numeric leaf passes through sanitize.Finite, so warm-up NaN values and any
// non-finite input serialize as null rather than breaking json.Marshal.
func buildReport(symbol, interval string, candles []domain.Candle) domain.CoinReport {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	series := indicator.Compute(closes)

	bars := make([]domain.IndicatorBar, len(candles))
	for i, c := range candles {
		bars[i] = domain.IndicatorBar{
			Timestamp: c.OpenTime,
			Open:      sanitize.Finite(c.Open),
			High:      sanitize.Finite(c.High),
			Low:       sanitize.Finite(c.Low),
			Close:     sanitize.Finite(c.Close),
			SMA:       sanitize.Finite(series.SMA[i]),
			RSI:       sanitize.Finite(series.RSI[i]),
		}
	}

	return domain.CoinReport{Symbol: symbol, Interval: interval, Bars: bars}
}
