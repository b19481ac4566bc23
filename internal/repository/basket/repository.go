// Package basket persists session baskets in a durable key-value store.
//
// Persistence is best effort by contract: a missing or malformed payload is
// treated as an empty basket and never surfaced as an error to the user flow.
package basket

import (
	"context"
	"encoding/json"

	"storefront/internal/domain"
)

// KeyPrefix namespaces persisted baskets; the session ID is appended.
const KeyPrefix = "storefront:cart:"

type Repository interface {
	// Load returns the persisted basket for the session, or an empty
	// basket when nothing usable is stored. It errors only on transport
	// failure, never on content.
	Load(ctx context.Context, sessionID string) (domain.Basket, error)
	// Save writes the full basket, replacing any previous value.
	Save(ctx context.Context, sessionID string, b domain.Basket) error
	// Delete removes the persisted basket; absent keys are a no-op.
	Delete(ctx context.Context, sessionID string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// encode serializes the basket as a JSON object keyed by SKU, the layout
// shared by every backend.
func encode(b domain.Basket) ([]byte, error) {
	if b == nil {
		b = domain.Basket{}
	}
	return json.Marshal(b)
}

// decode parses a stored payload. Malformed content degrades to an empty
// basket rather than an error.
func decode(raw []byte) domain.Basket {
	if len(raw) == 0 {
		return domain.Basket{}
	}
	var b domain.Basket
	if err := json.Unmarshal(raw, &b); err != nil {
		return domain.Basket{}
	}
	if b == nil {
		return domain.Basket{}
	}
	return b
}
