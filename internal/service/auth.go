package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/seojin/team-task-service/internal/domain"
	"github.com/seojin/team-task-service/internal/repository"
)

// Token types stored in the token_type claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents JWT claims
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Team      string `json:"team"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair holds an access/refresh token pair issued on login
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles signup, authentication and JWT operations
type AuthService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, accessExpiry, refreshExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Signup registers a new user, storing only a bcrypt hash of the password
func (s *AuthService) Signup(ctx context.Context, username, password, team string) (*domain.User, error) {
	if username == "" {
		return nil, domain.NewValidationError("username", "must not be empty")
	}
	if utf8.RuneCountInString(username) > domain.MaxUsernameLength {
		return nil, domain.NewValidationError("username", fmt.Sprintf("must be at most %d characters", domain.MaxUsernameLength))
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "must not be empty")
	}

	parsedTeam, err := domain.ParseTeam(team)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Team:         parsedTeam,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrWrongPassword
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh validates a refresh token and issues a new access token
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", domain.ErrInvalidToken
	}

	return s.signToken(claims.UserID, claims.Username, claims.Team, TokenTypeAccess, s.accessExpiry)
}

// ValidateAccessToken validates an access token and returns its claims
func (s *AuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) issueTokenPair(user *domain.User) (*TokenPair, error) {
	access, err := s.signToken(user.ID.String(), user.Username, string(user.Team), TokenTypeAccess, s.accessExpiry)
	if err != nil {
		return nil, err
	}

	refresh, err := s.signToken(user.ID.String(), user.Username, string(user.Team), TokenTypeRefresh, s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(userID, username, team, tokenType string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		Team:      team,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *AuthService) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
