// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// UpsertUser creates the user on first login from (provider, providerID) or
// refreshes name/email/avatar on subsequent logins. It returns the persisted
// user in either case.
//
// The lookup and the insert/update run inside one transaction so two
// concurrent first logins from the same identity cannot create two rows; the
// unique (provider, provider_id) index is the backstop.
func UpsertUser(ctx context.Context, db *gorm.DB, provider, providerID, name, email, avatarURL string) (*domain.User, error) {
	var out *domain.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		err := tx.Where("provider = ? AND provider_id = ?", provider, providerID).First(&u).Error
		switch {
		case err == nil:
			u.Name = name
			u.Email = email
			u.AvatarURL = avatarURL
			if err := tx.Save(&u).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = domain.User{
				ID:         uuid.NewString(),
				Provider:   provider,
				ProviderID: providerID,
				Name:       name,
				Email:      email,
				AvatarURL:  avatarURL,
				CreatedAt:  time.Now().UTC(),
			}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		default:
			return err
		}
		out = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches a user by ID, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
