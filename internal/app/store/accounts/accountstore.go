// internal/app/store/accounts/accountstore.go

// Package accounts stores identities and handles revocation. Connected mode
// delegates identity to the Google sign-in flow and keeps a profile document
// per user; demo mode keeps the one synthetic demo gardener in the local
// store.
package accounts

import (
	"context"
	"errors"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// ErrReauthRequired is returned by Revoke when the user's last sign-in is
// too old for a destructive operation. It must reach the caller undisguised
// so the UI can prompt a fresh sign-in instead of showing a generic error.
var ErrReauthRequired = errors.New("recent authentication required")

// ErrNotFound is returned by Get when no identity exists for the uid.
var ErrNotFound = errors.New("identity not found")

// Store is the identity collection contract.
type Store interface {
	// Get loads the identity for uid; ErrNotFound when absent.
	Get(ctx context.Context, uid string) (*models.Identity, error)

	// Upsert creates or refreshes the identity profile.
	Upsert(ctx context.Context, ident models.Identity) error

	// RecordLogin stamps LastLoginAt for uid.
	RecordLogin(ctx context.Context, uid string) error

	// Revoke removes the identity itself. The owning collections must be
	// emptied first (the garden service runs the cascade). Returns
	// ErrReauthRequired when the last sign-in is outside the reauth window.
	Revoke(ctx context.Context, uid string) error
}
