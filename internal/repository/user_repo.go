package repository

import (
	"context"
	"errors"
	"fmt"

	"chatboard/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert hits a unique constraint
// (email or username already taken).
var ErrDuplicate = errors.New("duplicate value for unique column")

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const uniqueViolation = "23505"

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, first_name, last_name, username, password_hash, is_admin, is_company, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql,
		user.Email, user.FirstName, user.LastName, user.Username,
		user.PasswordHash, user.IsAdmin, user.IsCompany, user.CreatedAt,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	return r.findBy(ctx, "id = $1", id)
}

// FindByEmail retrieves a user by their email address
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email = $1", email)
}

// FindByUsername retrieves a user by their username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username = $1", username)
}

func (r *userRepository) findBy(ctx context.Context, where string, arg any) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, email, first_name, last_name, username, password_hash, is_admin, is_company, created_at
            FROM users WHERE ` + where
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Username,
		&user.PasswordHash, &user.IsAdmin, &user.IsCompany, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
