package basket

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// memoryRepo keeps baskets in process memory. It backs tests and the
// zero-dependency dev setup; the stored form is the same encoded JSON the
// durable backends use, so round-trip behavior matches.
type memoryRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() Repository {
	return &memoryRepo{data: make(map[string][]byte)}
}

func (r *memoryRepo) Load(_ context.Context, sessionID string) (domain.Basket, error) {
	r.mu.RLock()
	raw, ok := r.data[KeyPrefix+sessionID]
	r.mu.RUnlock()
	if !ok {
		return domain.Basket{}, nil
	}
	return decode(raw), nil
}

func (r *memoryRepo) Save(_ context.Context, sessionID string, b domain.Basket) error {
	raw, err := encode(b)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.data[KeyPrefix+sessionID] = raw
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.data, KeyPrefix+sessionID)
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Ping(context.Context) error {
	return nil
}
