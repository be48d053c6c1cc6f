package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrphanRepository records remote media objects whose cleanup could not be
// completed, for manual reconciliation.
type OrphanRepository struct {
	pool *pgxpool.Pool
}

// NewOrphanRepository creates a new OrphanRepository.
func NewOrphanRepository(pool *pgxpool.Pool) *OrphanRepository {
	return &OrphanRepository{pool: pool}
}

// Record inserts an orphaned media entry.
func (r *OrphanRepository) Record(ctx context.Context, publicID, reason string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orphaned_media (public_id, reason) VALUES ($1, $2)`,
		publicID, reason,
	)
	return err
}
