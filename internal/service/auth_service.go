package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"maktab/internal/config"
	"maktab/internal/domain"
	"maktab/internal/port"
)

const bcryptCost = 12

// Claims represents the JWT claims carried by access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID       `json:"user_id"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
	Role     domain.UserRole `json:"role"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput is the DTO for change-password requests.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// LoginResult holds the issued token and the authenticated user.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput, ip string) (*LoginResult, error)
	ValidateToken(tokenString string) (*Claims, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
}

type authService struct {
	userRepo port.UserRepository
	limiter  *LoginLimiter
	cfg      config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(userRepo port.UserRepository, limiter *LoginLimiter, cfg config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, limiter: limiter, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, input LoginInput, ip string) (*LoginResult, error) {
	if s.limiter.Locked(ip) {
		return nil, domain.ErrLoginLockedOut
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.limiter.RecordFailure(ip)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.limiter.RecordFailure(ip)
		return nil, domain.ErrInvalidCredentials
	}

	s.limiter.Reset(ip)

	now := time.Now().UTC()
	if err := s.userRepo.SetLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("auth.Login: failed to record last login for %s: %v", user.Username, err)
	}
	user.LastLogin = &now

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return validateTokenString(tokenString, "access", s.cfg.Secret)
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword hashing: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func (s *authService) generateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"access"},
		},
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expiresAt, nil
}

// validateTokenString parses and verifies a token, checking the audience.
func validateTokenString(tokenString, audience, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	for _, a := range aud {
		if a == audience {
			return claims, nil
		}
	}
	return nil, domain.ErrUnauthorized
}
