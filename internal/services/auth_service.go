package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yelpcamp/backend/internal/auth/service"
	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 6
	maxDisplayNameLen = 100
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Create inserts a new user into the database.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by ID.
	//
	// If no user with such ID exists, repositories.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByUsername retrieves a user by username.
	//
	// Please reference GetByID method for the not-found behavior.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// ExistsByUsername checks if a user exists with the given username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// ExistsByEmail checks if a user exists with the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// authService implements registration, login and identity lookup
type authService struct {
	userRepo       UserRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// usernameRegex validates username format
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validateRegister trims the request in place and checks every rule,
// returning the first failure only
func validateRegister(req *models.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return &ValidationError{Message: "Username is required"}
	}
	if utf8.RuneCountInString(req.Username) < minUsernameLength || utf8.RuneCountInString(req.Username) > maxUsernameLength {
		return &ValidationError{Message: "Username must be between 3 and 30 characters"}
	}
	if !usernameRegex.MatchString(req.Username) {
		return &ValidationError{Message: "Username must contain only alphanumeric characters"}
	}

	req.Email = strings.TrimSpace(req.Email)
	if !emailRegex.MatchString(req.Email) {
		return &ValidationError{Message: "Email must be a valid email"}
	}

	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return &ValidationError{Message: "Password must be at least 6 characters"}
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			req.Name = nil
		} else {
			req.Name = &trimmed
			if utf8.RuneCountInString(trimmed) > maxDisplayNameLen {
				return &ValidationError{Message: "Name must be less than 100 characters"}
			}
		}
	}

	return nil
}

// Register validates the credentials, creates the user and issues a token
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	usernameTaken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error("failed to check username existence", zap.Error(err))
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if usernameTaken {
		return nil, &ValidationError{Message: "Username is already taken"}
	}

	emailTaken, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("failed to check email existence", zap.Error(err))
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if emailTaken {
		return nil, &ValidationError{Message: "Email is already registered"}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{User: user, Token: token}, nil
}

// Login verifies the credentials and issues a token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, &ValidationError{Message: "Username and password are required"}
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("failed to get user by username", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{User: user, Token: token}, nil
}

// Me returns the user behind the authenticated identity
func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "User"}
	}
	if err != nil {
		s.logger.Error("failed to get user", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
