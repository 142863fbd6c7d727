package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"twooter-backend/internal/config"
)

// =====================================================
// CLERK REST CLIENT
// =====================================================

// ClerkClient implements Provider against the Clerk backend API
// (GET /v1/users with repeated user_id / username filters).
type ClerkClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClerkClient(cfg *config.IdentityConfig) *ClerkClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ClerkClient{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// clerkUser is the wire shape of a provider account.
type clerkUser struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	ProfileImageURL  string `json:"profile_image_url"`
	CreatedAt        int64  `json:"created_at"` // unix milliseconds
	ExternalAccounts []struct {
		Provider string `json:"provider"`
		Username string `json:"username"`
	} `json:"external_accounts"`
}

func (u *clerkUser) toAuthor() Author {
	author := Author{
		ID:              u.ID,
		Username:        u.Username,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       time.UnixMilli(u.CreatedAt),
	}
	for _, acct := range u.ExternalAccounts {
		author.ExternalAccounts = append(author.ExternalAccounts, ExternalAccount{
			Provider: acct.Provider,
			Username: acct.Username,
		})
	}
	return author
}

// GetUserList fetches accounts matching params. Provider outages surface as
// ErrUnavailable; the caller decides whether that fails the request.
func (c *ClerkClient) GetUserList(ctx context.Context, params ListParams) ([]Author, error) {
	query := url.Values{}
	for _, id := range params.UserIDs {
		query.Add("user_id", id)
	}
	for _, username := range params.Usernames {
		query.Add("username", username)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	endpoint := c.baseURL + "/v1/users?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var users []clerkUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	authors := make([]Author, 0, len(users))
	for i := range users {
		authors = append(authors, users[i].toAuthor())
	}

	return authors, nil
}
