// Package checkout bridges the basket to the hosted payment processor and
// advances the buy -> ship -> summary flow on its outcome callbacks.
//
// The flow is optimistic: a client-side success callback advances the stage
// without local settlement verification. Financial authority stays with the
// processor and its server-side webhooks.
package checkout

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/helio"
	"storefront/internal/metrics"
	basketsvc "storefront/internal/service/basket"
	"storefront/internal/tracing"
)

// EventPublisher emits checkout lifecycle events for downstream
// reconciliation. Publishing is best effort; failures never block the flow.
type EventPublisher interface {
	PublishCheckoutSucceeded(ctx context.Context, sessionID string, method domain.PaymentMethod, amount string, totals domain.Totals, lines []domain.Line) error
	PublishCheckoutCancelled(ctx context.Context, sessionID string, method domain.PaymentMethod) error
}

type Service struct {
	baskets   *basketsvc.Service
	sessions  *sessionStore
	helioCfg  helio.Config
	publisher EventPublisher
	logger    *zap.Logger
}

// New builds the checkout service. publisher may be nil when no broker is
// configured.
func New(baskets *basketsvc.Service, helioCfg helio.Config, publisher EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		baskets:   baskets,
		sessions:  newSessionStore(),
		helioCfg:  helioCfg,
		publisher: publisher,
		logger:    logger,
	}
}

// State is the session flow as exposed to clients.
type State struct {
	Stage      domain.Stage              `json:"stage"`
	DialogOpen bool                      `json:"dialogOpen"`
	Purchased  *domain.PurchasedSnapshot `json:"purchased,omitempty"`
}

// Open prepares the processor widget config for the session's current
// basket. An empty basket is a guarded no-op (ErrEmptyBasket): the dialog
// must never open with nothing to charge. Checkout is only reachable from
// the buy stage.
func (s *Service) Open(ctx context.Context, sessionID string, method domain.PaymentMethod) (*helio.CheckoutRequest, error) {
	ctx, span := tracing.StartSpan(ctx, "checkout.Open")
	defer span.End()

	b, totals, err := s.baskets.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if totals.ItemCount == 0 {
		return nil, domain.ErrEmptyBasket
	}

	var req helio.CheckoutRequest
	err = s.sessions.update(sessionID, func(sess *session) error {
		if sess.stage != domain.StageBuy {
			return domain.ErrBadStage
		}
		sess.method = method
		sess.dialogOpen = true
		req = helio.NewCheckoutRequest(s.helioCfg, method, b.Lines(), totals)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CheckoutOpenedTotal.WithLabelValues(string(method)).Inc()
	s.logger.Info("checkout opened",
		zap.String("session_id", sessionID),
		zap.String("method", string(method)),
		zap.String("amount", req.Amount))
	return &req, nil
}

// HandleEvent maps a processor callback onto local state.
//
//	success: snapshot the basket, clear it, close the dialog, buy -> ship
//	cancel:  close the dialog, leave everything else untouched
//	error:   keep the dialog open so the user can retry
//	start/pending: informational pass-through
func (s *Service) HandleEvent(ctx context.Context, sessionID string, ev domain.CheckoutEvent) (State, error) {
	ctx, span := tracing.StartSpan(ctx, "checkout.HandleEvent")
	defer span.End()

	switch ev.Type {
	case domain.CheckoutEventSuccess:
		if err := s.handleSuccess(ctx, sessionID); err != nil {
			return s.StateOf(sessionID), err
		}
	case domain.CheckoutEventCancel:
		s.handleCancel(ctx, sessionID)
	case domain.CheckoutEventError:
		// Dialog stays open for retry; nothing is mutated.
		metrics.CheckoutOutcomesTotal.WithLabelValues("error").Inc()
		s.logger.Warn("processor reported error",
			zap.String("session_id", sessionID),
			zap.Any("payload", ev.Payload))
	case domain.CheckoutEventStart, domain.CheckoutEventPending:
		s.logger.Debug("processor lifecycle event",
			zap.String("session_id", sessionID),
			zap.String("type", string(ev.Type)))
	default:
		return s.StateOf(sessionID), domain.ErrNotFound
	}
	return s.StateOf(sessionID), nil
}

func (s *Service) handleSuccess(ctx context.Context, sessionID string) error {
	b, totals, err := s.baskets.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	var method domain.PaymentMethod
	amount := helio.FormatAmount(float64(totals.TotalUSD))
	err = s.sessions.update(sessionID, func(sess *session) error {
		if sess.stage != domain.StageBuy || !sess.dialogOpen {
			// A success with no open dialog has nothing to advance.
			return domain.ErrBadStage
		}
		if totals.ItemCount == 0 {
			return domain.ErrEmptyBasket
		}
		method = sess.method
		// Snapshot total carries the subtotal only; shipping was charged
		// through the processor amount but stays out of the summary figure.
		sess.snapshot = &domain.PurchasedSnapshot{
			Lines:    b.Lines(),
			TotalUSD: totals.SubtotalUSD,
		}
		sess.dialogOpen = false
		sess.stage = domain.StageShip
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.baskets.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("clearing basket after purchase failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	metrics.CheckoutOutcomesTotal.WithLabelValues("success").Inc()
	s.logger.Info("checkout succeeded",
		zap.String("session_id", sessionID),
		zap.String("amount", amount))

	if s.publisher != nil {
		if err := s.publisher.PublishCheckoutSucceeded(ctx, sessionID, method, amount, totals, b.Lines()); err != nil {
			s.logger.Error("publish checkout.succeeded failed", zap.Error(err))
		}
	}
	return nil
}

func (s *Service) handleCancel(ctx context.Context, sessionID string) {
	var method domain.PaymentMethod
	_ = s.sessions.update(sessionID, func(sess *session) error {
		method = sess.method
		sess.dialogOpen = false
		return nil
	})

	metrics.CheckoutOutcomesTotal.WithLabelValues("cancel").Inc()
	s.logger.Info("checkout cancelled", zap.String("session_id", sessionID))

	if s.publisher != nil {
		if err := s.publisher.PublishCheckoutCancelled(ctx, sessionID, method); err != nil {
			s.logger.Error("publish checkout.cancelled failed", zap.Error(err))
		}
	}
}

// Continue advances ship -> summary. Any other starting stage is rejected;
// the flow never skips or moves backward.
func (s *Service) Continue(_ context.Context, sessionID string) (State, error) {
	err := s.sessions.update(sessionID, func(sess *session) error {
		if sess.stage != domain.StageShip {
			return domain.ErrBadStage
		}
		sess.stage = domain.StageSummary
		return nil
	})
	if err != nil {
		return s.StateOf(sessionID), err
	}
	return s.StateOf(sessionID), nil
}

// StateOf returns the session's current flow state.
func (s *Service) StateOf(sessionID string) State {
	sess := s.sessions.view(sessionID)
	return State{
		Stage:      sess.stage,
		DialogOpen: sess.dialogOpen,
		Purchased:  sess.snapshot,
	}
}
