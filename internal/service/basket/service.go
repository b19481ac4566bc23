// Package basket owns the session basket: mutation entry points, derived
// totals, and the best-effort persistence write after each mutation.
package basket

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/pricing"
)

type repo interface {
	Load(ctx context.Context, sessionID string) (domain.Basket, error)
	Save(ctx context.Context, sessionID string, b domain.Basket) error
	Delete(ctx context.Context, sessionID string) error
}

type Service struct {
	repo   repo
	policy pricing.Policy
	logger *zap.Logger
}

func New(repo repo, policy pricing.Policy, logger *zap.Logger) *Service {
	return &Service{repo: repo, policy: policy, logger: logger}
}

// Get returns the current basket and a fresh computation of its totals.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.Basket, domain.Totals, error) {
	b, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, domain.Totals{}, err
	}
	return b, s.policy.Totals(b), nil
}

// Add increases the quantity of sku's line, creating it if absent. The
// resulting quantity is floored at 1, so Add never produces a removable
// line. qty 0 means "add one".
func (s *Service) Add(ctx context.Context, sessionID string, sku domain.SKU, qty int) (domain.Basket, domain.Totals, error) {
	if qty == 0 {
		qty = 1
	}
	b, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, domain.Totals{}, err
	}

	existing := 0
	if line, ok := b[sku]; ok {
		existing = line.Qty
	}
	next := existing + qty
	if next < 1 {
		next = 1
	}
	line, err := catalog.Line(sku, next)
	if err != nil {
		return nil, domain.Totals{}, err
	}
	b[sku] = line

	s.persist(ctx, sessionID, b, "add")
	return b, s.policy.Totals(b), nil
}

// SetQuantity replaces the line's quantity. Zero or negative removes the
// line entirely; it is never stored.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, sku domain.SKU, qty int) (domain.Basket, domain.Totals, error) {
	if !sku.Valid() {
		return nil, domain.Totals{}, domain.ErrUnknownSKU
	}
	b, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, domain.Totals{}, err
	}

	if qty <= 0 {
		delete(b, sku)
	} else {
		line, err := catalog.Line(sku, qty)
		if err != nil {
			return nil, domain.Totals{}, err
		}
		b[sku] = line
	}

	s.persist(ctx, sessionID, b, "set_quantity")
	return b, s.policy.Totals(b), nil
}

// Remove deletes the line if present; removing an absent SKU is a no-op.
func (s *Service) Remove(ctx context.Context, sessionID string, sku domain.SKU) (domain.Basket, domain.Totals, error) {
	if !sku.Valid() {
		return nil, domain.Totals{}, domain.ErrUnknownSKU
	}
	b, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, domain.Totals{}, err
	}

	delete(b, sku)

	s.persist(ctx, sessionID, b, "remove")
	return b, s.policy.Totals(b), nil
}

// Clear empties the basket.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		metrics.BasketPersistFailuresTotal.Inc()
		s.logger.Warn("basket clear failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
	metrics.BasketMutationsTotal.WithLabelValues("clear").Inc()
	return nil
}

// Policy exposes the active pricing configuration.
func (s *Service) Policy() pricing.Policy {
	return s.policy
}

// load rehydrates the session basket and re-stamps every line from the
// catalog so a stale or tampered persisted copy cannot drift prices. Lines
// for unknown SKUs or non-positive quantities are dropped.
func (s *Service) load(ctx context.Context, sessionID string) (domain.Basket, error) {
	stored, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	b := make(domain.Basket, len(stored))
	for sku, line := range stored {
		if line.Qty < 1 {
			continue
		}
		fresh, err := catalog.Line(sku, line.Qty)
		if err != nil {
			continue
		}
		b[sku] = fresh
	}
	return b, nil
}

// persist writes the basket after a mutation. The write is fire-and-forget:
// a failure is logged and counted, never returned to the caller.
func (s *Service) persist(ctx context.Context, sessionID string, b domain.Basket, op string) {
	if err := s.repo.Save(ctx, sessionID, b); err != nil {
		metrics.BasketPersistFailuresTotal.Inc()
		s.logger.Warn("basket persist failed",
			zap.String("session_id", sessionID),
			zap.String("op", op),
			zap.Error(err))
	}
	metrics.BasketMutationsTotal.WithLabelValues(op).Inc()
}
