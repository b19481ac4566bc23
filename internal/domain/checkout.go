package domain

// Stage is the position of a session in the linear buy -> ship -> summary
// flow. There is no backward transition and no re-entry to buy.
type Stage string

const (
	StageBuy     Stage = "buy"
	StageShip    Stage = "ship"
	StageSummary Stage = "summary"
)

// PaymentMethod is the preferred method hint forwarded to the hosted
// payment processor.
type PaymentMethod string

const (
	MethodCrypto PaymentMethod = "crypto"
	MethodFiat   PaymentMethod = "fiat"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodCrypto, MethodFiat:
		return PaymentMethod(s), nil
	}
	return "", ErrUnknownMethod
}

// CheckoutEventType mirrors the hosted processor's lifecycle callbacks.
// Only success, cancel and error drive local state; start and pending are
// passed through untouched.
type CheckoutEventType string

const (
	CheckoutEventStart   CheckoutEventType = "start"
	CheckoutEventPending CheckoutEventType = "pending"
	CheckoutEventSuccess CheckoutEventType = "success"
	CheckoutEventCancel  CheckoutEventType = "cancel"
	CheckoutEventError   CheckoutEventType = "error"
)

// CheckoutEvent is an outcome callback from the processor. Payload contents
// are opaque to this core.
type CheckoutEvent struct {
	Type    CheckoutEventType      `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// PurchasedSnapshot is an immutable copy of the basket taken at the instant
// checkout succeeds, used only to render the post-purchase summary. Its
// total carries the subtotal only; shipping is charged through the processor
// amount but kept out of the summary figure.
type PurchasedSnapshot struct {
	Lines    []Line `json:"lines"`
	TotalUSD int64  `json:"totalUsd"`
}
