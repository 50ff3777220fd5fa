// Package services – UserService
//
// This file implements the UserService, the thin application layer over the
// user store. Accounts are created on first successful login from the
// identity provider and refreshed on every subsequent login; there is no
// explicit user deletion in scope.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"
)

// ErrUserNotFound indicates that the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserService manages the lifecycle of provider-sourced user accounts.
type UserService struct {
	// DB is the database handle used for all user operations.
	DB *gorm.DB
}

// UpsertFromProvider creates or refreshes the account identified by
// (provider, providerID) with the profile the identity provider returned at
// login. A blank display name falls back to the email local part so the UI
// always has something to show next to ratings and comments.
func (s *UserService) UpsertFromProvider(ctx context.Context, provider, providerID, name, email, avatarURL string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		}
	}
	return repo.UpsertUser(ctx, s.DB, provider, providerID, name, email, avatarURL)
}

// Get returns the user by internal ID, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
