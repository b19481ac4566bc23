// Package quote maintains a best-effort exchange-rate quote (USD per SOL)
// used only for the approximate secondary price display. It is not part of
// the charge computation.
package quote

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"storefront/internal/metrics"
)

const solMint = "So11111111111111111111111111111111111111112"

// DefaultURL is the public quote endpoint polled for the SOL/USD price.
const DefaultURL = "https://lite-api.jup.ag/price/v3?ids=" + solMint

// DefaultUSDPerSOL seeds the quote until the first successful refresh.
const DefaultUSDPerSOL = 147

type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *zap.Logger
	cron     *cron.Cron

	mu        sync.RWMutex
	usdPerSOL float64
	updatedAt time.Time
}

func New(url string, interval time.Duration, logger *zap.Logger) *Poller {
	if url == "" {
		url = DefaultURL
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		url:       url,
		interval:  interval,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		usdPerSOL: DefaultUSDPerSOL,
	}
}

// Start fetches once immediately, then refreshes on the fixed interval
// until Stop is called.
func (p *Poller) Start() error {
	p.Refresh(context.Background())

	p.cron = cron.New()
	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := p.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.interval)
		defer cancel()
		p.Refresh(ctx)
	}); err != nil {
		return fmt.Errorf("schedule quote refresh: %w", err)
	}
	p.cron.Start()
	return nil
}

func (p *Poller) Stop() {
	if p.cron != nil {
		p.cron.Stop()
	}
}

// Refresh polls the quote source once. On any failure the previously held
// quote is retained; the failure is logged, never surfaced.
func (p *Poller) Refresh(ctx context.Context) {
	price, err := p.fetch(ctx)
	if err != nil {
		metrics.QuoteRefreshFailuresTotal.Inc()
		p.logger.Warn("quote refresh failed, keeping last value",
			zap.Float64("usd_per_sol", p.USDPerSOL()),
			zap.Error(err))
		return
	}

	p.mu.Lock()
	p.usdPerSOL = price
	p.updatedAt = time.Now()
	p.mu.Unlock()
	metrics.QuoteRefreshesTotal.Inc()
}

func (p *Poller) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote source returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, err
	}

	price := gjson.GetBytes(body, solMint+".usdPrice")
	if !price.Exists() || price.Float() <= 0 {
		return 0, fmt.Errorf("quote response missing usdPrice")
	}
	return math.Round(price.Float()*100) / 100, nil
}

// USDPerSOL returns the last-known quote.
func (p *Poller) USDPerSOL() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.usdPerSOL
}

// UpdatedAt is the time of the last successful refresh; zero until one
// succeeds.
func (p *Poller) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}
