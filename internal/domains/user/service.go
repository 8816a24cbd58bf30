package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xpanvictor/quickpost/pkg/Logger"
	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrMobileAlreadyExists = errors.New("mobile number already registered")
	ErrInvalidToken        = errors.New("invalid token")
)

// AuthTokens represents JWT tokens for authentication
// @Description JWT authentication tokens
type AuthTokens struct {
	AccessToken  string    `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refreshToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expiresAt" example:"2023-01-02T12:00:00Z"`
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Mobile string `json:"mobile,omitempty"`
	jwt.RegisteredClaims
}

// UserService defines the interface for user business logic
type UserService interface {
	// QuickSignup creates an account from voice-extracted details.
	QuickSignup(ctx context.Context, req QuickSignupRequest) (*UserResponse, *AuthTokens, error)
	GetProfile(ctx context.Context, userID string) (*UserResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

type userService struct {
	repository UserRepository
	logger     *Logger.Logger
	jwtSecret  string
	tokenTTL   time.Duration
}

// QuickSignup implements UserService
func (s *userService) QuickSignup(ctx context.Context, req QuickSignupRequest) (*UserResponse, *AuthTokens, error) {
	if req.Mobile != "" {
		exists, err := s.repository.MobileExists(req.Mobile)
		if err != nil {
			s.logger.Errorf("error checking mobile existence: %v", err)
			return nil, nil, fmt.Errorf("failed to check mobile: %w", err)
		}
		if exists {
			return nil, nil, ErrMobileAlreadyExists
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorf("error hashing password: %v", err)
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := NewUser(req, string(hashedPassword))
	if err := s.repository.Create(user); err != nil {
		if errors.Is(err, ErrMobileAlreadyExists) {
			return nil, nil, err
		}
		s.logger.Errorf("error creating user: %v", err)
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.generateTokens(user.ID, user.Mobile)
	if err != nil {
		s.logger.Errorf("error generating tokens: %v", err)
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.logger.Infof("quick signup completed: %s", user.ID)
	response := user.ToResponse()
	return &response, tokens, nil
}

// GetProfile implements UserService
func (s *userService) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.repository.GetByID(userID)
	if err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

// ValidateToken implements UserService
func (s *userService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Helper function to generate JWT tokens
func (s *userService) generateTokens(userID, mobile string) (*AuthTokens, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	accessClaims := &Claims{
		UserID: userID,
		Mobile: mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	// Create refresh token (longer expiry)
	refreshClaims := &Claims{
		UserID: userID,
		Mobile: mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL * 24)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresAt:    expiresAt,
	}, nil
}

// NewUserService creates a new user service
func NewUserService(repository UserRepository, logger *Logger.Logger, jwtSecret string, tokenTTL time.Duration) UserService {
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour // default 24 hours
	}
	if logger == nil {
		logger = Logger.NewNop()
	}

	return &userService{
		repository: repository,
		logger:     logger,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}
