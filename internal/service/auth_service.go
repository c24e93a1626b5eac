package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vividexpense-be/internal/entities"
	"vividexpense-be/internal/jwt"
	"vividexpense-be/internal/models"
	"vividexpense-be/internal/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context, userID string) (*models.UserResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	guard      *LoginGuard
	bcryptCost int
	now        func() time.Time

	// dummyHash is compared against when the email is unknown so both
	// failure paths pay for one bcrypt comparison.
	dummyHash []byte
	compare   func(hash, password []byte) error
}

// AuthOption configures optional behaviour of the auth service.
type AuthOption func(*authService)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *authService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithLoginGuard enables failed-login throttling.
func WithLoginGuard(g *LoginGuard) AuthOption {
	return func(s *authService) { s.guard = g }
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService, opts ...AuthOption) AuthService {
	s := &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		compare:    bcrypt.CompareHashAndPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("vividexpense-unknown-user"), s.bcryptCost)
	return s
}

// Register creates a new user account and logs it in
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.now().UTC(),
	}

	// The unique index settles concurrent registrations of the same email
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login authenticates a user and returns user info with JWT token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if s.guard.Locked(ctx, req.Email) {
		return nil, ErrTooManyAttempts
	}

	// Find user by email
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = s.compare(s.dummyHash, []byte(req.Password))
		s.guard.Fail(ctx, req.Email)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Verify password
	if err := s.compare([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.guard.Fail(ctx, req.Email)
		return nil, ErrInvalidCredentials
	}

	s.guard.Reset(ctx, req.Email)
	return s.issue(user)
}

// CurrentUser returns the account behind an already verified token
func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) issue(user *entities.User) (*models.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  models.NewUserResponse(user),
	}, nil
}
