package identity

import (
	"context"
	"errors"
	"time"
)

// =====================================================
// IDENTITY PROVIDER BOUNDARY
// =====================================================
// The identity provider is the sole source of truth for account data.
// This service reads point-in-time snapshots per request and never
// persists them.

// Errors
var (
	ErrUserNotFound = errors.New("identity user not found")
	ErrNoUsername   = errors.New("author has no username and no linked external account")
	ErrUnavailable  = errors.New("identity provider unavailable")
)

// ExternalAccount is an OAuth account linked to a provider user.
type ExternalAccount struct {
	Provider string `json:"provider"`
	Username string `json:"username"`
}

// Author is the snapshot of a provider account exposed to clients.
type Author struct {
	ID               string            `json:"id"`
	Username         string            `json:"username"`
	ProfileImageURL  string            `json:"profile_image_url"`
	CreatedAt        time.Time         `json:"created_at"`
	ExternalAccounts []ExternalAccount `json:"-"`
}

// fallbackProviders is the preference order for substituting a handle when
// the account has no first-class username.
var fallbackProviders = []string{"oauth_github", "oauth_discord", "oauth_google"}

// externalUsername returns the handle of the first linked account matching
// the provider preference list, or "" when none matches.
func (a *Author) externalUsername() string {
	for _, provider := range fallbackProviders {
		for _, acct := range a.ExternalAccounts {
			if acct.Provider == provider && acct.Username != "" {
				return acct.Username
			}
		}
	}
	return ""
}

// ListParams filters a GetUserList call. Exactly one of UserIDs or
// Usernames is expected to be set.
type ListParams struct {
	UserIDs   []string
	Usernames []string
	Limit     int
}

// Provider is the capability interface over the external identity store.
type Provider interface {
	GetUserList(ctx context.Context, params ListParams) ([]Author, error)
}
