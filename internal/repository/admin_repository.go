package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnhub/learnhub-backend/internal/model"
)

// AdminRepository handles administrator data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// Create inserts a new administrator. The caller assigns the ID; email
// uniqueness is enforced by the store's unique index.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admins (id, first_name, last_name, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		a.ID, a.FirstName, a.LastName, a.Email, a.PasswordHash,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// GetByEmail retrieves an administrator by their unique email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
		 FROM admins
		 WHERE email = $1`, email,
	).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an administrator by ID.
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
		 FROM admins
		 WHERE id = $1`, id,
	).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
