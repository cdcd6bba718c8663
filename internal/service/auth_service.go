package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"controle-financeiro/internal/dto"
	"controle-financeiro/internal/models"
	"controle-financeiro/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

const minPasswordLength = 8

// CategorySeeder gives a freshly registered user the default categories.
type CategorySeeder interface {
	SeedDefaults(ctx context.Context, userID uuid.UUID) (int64, error)
}

type AuthService struct {
	users      UserStore
	seeder     CategorySeeder
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAuthService builds the service. seeder may be nil.
func NewAuthService(users UserStore, seeder CategorySeeder, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		seeder:     seeder,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, invalid("username is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email is invalid")
	}
	if len(req.Password) < minPasswordLength {
		return nil, invalid("password must have at least %d characters", minPasswordLength)
	}

	if existing, _ := s.users.GetByEmail(ctx, email); existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(storeError(err), ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	if s.seeder != nil {
		if _, err := s.seeder.SeedDefaults(ctx, user.ID); err != nil {
			s.logger.Warn("Failed to seed default categories", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(storeError(err), ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
