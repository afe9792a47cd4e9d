// Package credentials persists the session's tokens and cached user on top
// of a storage.Repository.
package credentials

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
	"github.com/dmitrijs2005/agentsynergy/internal/client/storage"
)

// Persisted keys.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Pair is what a successful login yields. RefreshToken may be empty.
type Pair struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// Store reads credentials at call time; it holds no copies in memory.
type Store struct {
	repo storage.Repository
}

func NewStore(repo storage.Repository) *Store {
	return &Store{repo: repo}
}

// AccessToken returns "" when no token is stored.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyAccessToken)
}

// RefreshToken returns "" when no token is stored.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyRefreshToken)
}

// User returns the cached user, or nil when none is stored. A cached value
// that does not decode is reported as an error.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	b, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, nil
}

// Save replaces the stored credentials with p. A missing refresh token in p
// removes any older one so a stale token is never replayed.
func (s *Store) Save(ctx context.Context, p Pair) error {
	values := map[string][]byte{KeyAccessToken: []byte(p.AccessToken)}
	if p.User != nil {
		b, err := json.Marshal(p.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		values[KeyUser] = b
	}

	if p.RefreshToken == "" {
		if err := s.repo.Delete(ctx, KeyRefreshToken); err != nil {
			return err
		}
	} else {
		values[KeyRefreshToken] = []byte(p.RefreshToken)
	}
	return s.repo.SetMany(ctx, values)
}

// SetTokens stores a refreshed access token. refresh is written only when the
// server rotated it.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	values := map[string][]byte{KeyAccessToken: []byte(access)}
	if refresh != "" {
		values[KeyRefreshToken] = []byte(refresh)
	}
	return s.repo.SetMany(ctx, values)
}

func (s *Store) SetUser(ctx context.Context, u *models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo.Set(ctx, KeyUser, b)
}

// Clear removes all three keys in one storage operation.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser)
}

func (s *Store) getString(ctx context.Context, key string) (string, error) {
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
