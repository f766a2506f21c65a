package widget

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

type CryptoPrice struct {
	Symbol           string          `json:"symbol"`
	Price            decimal.Decimal `json:"price"`
	ChangePercent24h decimal.Decimal `json:"change_percent_24h"`
}

type coinGeckoQuote struct {
	USD       *decimal.Decimal `json:"usd"`
	Change24h *decimal.Decimal `json:"usd_24h_change"`
}

// CryptoPrices returns USD quotes with a 24h change for the given symbols.
// Symbols the upstream does not recognize are silently absent, matching
// its own behavior.
func (s *Service) CryptoPrices(ctx context.Context, symbols []string) ([]CryptoPrice, error) {
	ids := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToLower(strings.TrimSpace(symbol))
		if symbol != "" {
			ids = append(ids, symbol)
		}
	}

	key := "crypto:" + strings.Join(ids, ",")

	return fetchThrough(ctx, s, key, cryptoTTL, func(ctx context.Context) ([]CryptoPrice, error) {
		query := url.Values{}
		query.Set("ids", strings.Join(ids, ","))
		query.Set("vs_currencies", "usd")
		query.Set("include_24hr_change", "true")
		endpoint := fmt.Sprintf("%s/api/v3/simple/price?%s", s.cfg.CoinGeckoBaseURL, query.Encode())

		var raw map[string]coinGeckoQuote
		if err := s.getJSON(ctx, "crypto", endpoint, nil, &raw); err != nil {
			return nil, err
		}

		prices := make([]CryptoPrice, 0, len(ids))
		for _, id := range ids {
			quote, ok := raw[id]
			if !ok {
				continue
			}
			price := CryptoPrice{Symbol: id}
			if quote.USD != nil {
				price.Price = *quote.USD
			}
			if quote.Change24h != nil {
				price.ChangePercent24h = *quote.Change24h
			}
			prices = append(prices, price)
		}
		return prices, nil
	})
}
