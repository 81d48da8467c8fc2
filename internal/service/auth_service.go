package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatboard/internal/model"
	"chatboard/internal/repository"
	"chatboard/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("email or username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService provides registration, login and permission checks
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	UserByID(ctx context.Context, id int) (*model.User, error)
	// CheckPermissions reports whether the given user exists and has
	// every one of the named capability flags. A reusable gate for any
	// handler that needs role-based access.
	CheckPermissions(ctx context.Context, userID int, perms ...model.Permission) (bool, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a new user account. Email and username must both be
// unused; the pre-insert checks give the friendly error for the common
// case, and the unique constraints catch the racing case at insert.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	existingByEmail, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	existingByUsername, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}
	if existingByEmail != nil || existingByUsername != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user, nil
}

// Login authenticates a user by username and password. Unknown
// username and wrong password collapse into the same error so the
// response never reveals which one it was.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials // Password mismatch
	}

	return user, nil
}

// UserByID loads a user's profile
func (s *authService) UserByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CheckPermissions loads the user and requires every named flag to be
// set. Unknown users have no permissions.
func (s *authService) CheckPermissions(ctx context.Context, userID int, perms ...model.Permission) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load user for permission check: %w", err)
	}
	if user == nil {
		return false, nil
	}
	for _, p := range perms {
		if !user.HasPermission(p) {
			return false, nil
		}
	}
	return true, nil
}
