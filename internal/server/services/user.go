// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile edits, and
// issuing/refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/common"
	"github.com/dmitrijs2005/agentsynergy/internal/server/auth"
	"github.com/dmitrijs2005/agentsynergy/internal/server/config"
	"github.com/dmitrijs2005/agentsynergy/internal/server/models"
	"github.com/dmitrijs2005/agentsynergy/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/agentsynergy/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Registration is the input of Register.
type Registration struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	CompanyName     string
	CompanySize     string
}

// ValidationError explains why input was rejected. It matches
// common.ErrorValidation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string        { return e.Reason }
func (e *ValidationError) Is(target error) bool { return target == common.ErrorValidation }

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
type UserService struct {
	users                        users.Repository
	refreshTokens                refreshtokens.Repository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	bcryptCost                   int
	now                          func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(u users.Repository, rt refreshtokens.Repository, cfg *config.Config) *UserService {
	return &UserService{
		users:                        u,
		refreshTokens:                rt,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		bcryptCost:                   bcrypt.DefaultCost,
		now:                          time.Now,
	}
}

// Register validates r and creates an active, unverified user.
func (s *UserService) Register(ctx context.Context, r Registration) (*models.User, error) {
	email := strings.TrimSpace(r.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ValidationError{Reason: "Invalid email address"}
	}
	if len(r.Password) < minPasswordLength {
		return nil, &ValidationError{Reason: fmt.Sprintf("Password must be at least %d characters long", minPasswordLength)}
	}
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		return nil, &ValidationError{Reason: "Passwords do not match"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		CompanyName:  r.CompanyName,
		CompanySize:  r.CompanySize,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	u, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password and, on success, records the login and
// returns a new TokenPair with the user.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil || !user.IsActive {
		return nil, nil, common.ErrorUnauthorized
	}

	now := s.now().UTC()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, common.ErrorInternal
	}

	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RefreshToken redeems refreshToken once and returns a fresh TokenPair.
// Unknown or already used tokens yield common.ErrorUnauthorized; expired
// ones yield common.ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.refreshTokens.Take(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.users.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return s.generateTokenPair(ctx, user)
}

// Logout revokes every refresh token of userID.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.refreshTokens.DeleteForUser(ctx, userID)
}

// DeleteAccount revokes the user's refresh tokens and removes the account.
// Access tokens already issued stop working because Authenticate no longer
// finds the user.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.refreshTokens.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("error revoking refresh tokens: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer access token to its user.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}
	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// UpdateProfile applies upd to the user and returns the stored result.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	upd.Apply(user)
	now := s.now().UTC()
	user.UpdatedAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

// --- helpers below ---

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.refreshTokens.Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
