package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/learnhub/learnhub-backend/internal/model"
)

// Admin lookup/registration errors.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrAdminNotFound = errors.New("admin not found")
)

// AdminStore is the persistence seam for administrator records.
type AdminStore interface {
	Create(ctx context.Context, a *model.Admin) error
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// AdminService handles administrator registration and authentication.
type AdminService struct {
	admins AdminStore
	auth   *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(admins AdminStore, auth *AuthService) *AdminService {
	return &AdminService{admins: admins, auth: auth}
}

// SignupInput carries validated registration fields.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register hashes the password and creates the administrator record.
// A duplicate email surfaces as ErrEmailTaken.
func (s *AdminService) Register(ctx context.Context, in SignupInput) (*model.Admin, error) {
	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		ID:           model.NewID(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}

	if err := s.admins.Create(ctx, admin); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// Authenticate verifies credentials and issues a session token.
// An unknown email is ErrAdminNotFound; a wrong password is
// ErrInvalidCredentials. Both are distinguishable by the caller.
func (s *AdminService) Authenticate(ctx context.Context, email, password string) (string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrAdminNotFound
		}
		return "", fmt.Errorf("find admin: %w", err)
	}

	if err := s.auth.CheckPassword(admin.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.auth.GenerateAdminToken(admin.ID)
}

// isUniqueViolation reports whether err is a PostgreSQL unique-index
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
