package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vitos/crypto_indicator_api/internal/domain"
)

const quoteSuffix = "USDT"

// RankingService selects the top USDT-quoted pairs by 24h quote volume.
type RankingService struct {
	market  domain.MarketData
	exclude map[string]struct{}
}

func NewRankingService(market domain.MarketData, exclude []string) *RankingService {
	ex := make(map[string]struct{}, len(exclude))
	for _, s := range exclude {
		ex[s] = struct{}{}
	}
	return &RankingService{market: market, exclude: ex}
}

// TopSymbols returns up to limit symbols ordered by quote volume, highest
// first. The sort is stable, so equal-volume pairs keep snapshot order.
func (s *RankingService) TopSymbols(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	tickers, err := s.market.GetTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch ticker snapshot: %w", err)
	}

	pairs := make([]domain.Ticker, 0, len(tickers))
	for _, t := range tickers {
		if !strings.HasSuffix(t.Symbol, quoteSuffix) {
			continue
		}
		if _, blocked := s.exclude[t.Symbol]; blocked {
			continue
		}
		pairs = append(pairs, t)
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].QuoteVolume > pairs[j].QuoteVolume
	})

	if len(pairs) > limit {
		pairs = pairs[:limit]
	}

	symbols := make([]string, len(pairs))
	for i, p := range pairs {
		symbols[i] = p.Symbol
	}
	return symbols, nil
}
