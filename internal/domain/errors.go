package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnknownSKU indicates a SKU outside the fixed catalog.
	ErrUnknownSKU = errors.New("unknown sku")

	// ErrUnknownMethod indicates an unsupported payment method hint.
	ErrUnknownMethod = errors.New("unknown payment method")

	// ErrEmptyBasket guards checkout: an empty basket never opens the
	// processor dialog.
	ErrEmptyBasket = errors.New("empty basket")

	// ErrBadStage indicates a transition the linear flow does not allow.
	ErrBadStage = errors.New("stage does not allow this action")
)
