package basket

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pgx pool as a basket repository. The payload column
// holds the same JSON object the Redis backend stores.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context, sessionID string) (domain.Basket, error) {
	const q = `
SELECT payload
FROM basket_sessions
WHERE session_id = $1
`
	var raw []byte
	if err := r.pool.QueryRow(ctx, q, sessionID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Basket{}, nil
		}
		return nil, fmt.Errorf("load basket: %w", err)
	}
	return decode(raw), nil
}

func (r *postgresRepo) Save(ctx context.Context, sessionID string, b domain.Basket) error {
	raw, err := encode(b)
	if err != nil {
		return fmt.Errorf("encode basket: %w", err)
	}
	const q = `
INSERT INTO basket_sessions (session_id, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (session_id) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, sessionID, raw); err != nil {
		return fmt.Errorf("save basket: %w", err)
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	const q = `DELETE FROM basket_sessions WHERE session_id = $1`
	if _, err := r.pool.Exec(ctx, q, sessionID); err != nil {
		return fmt.Errorf("delete basket: %w", err)
	}
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
