package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twooter-backend/internal/config"
)

func TestClerkClientGetUserList(t *testing.T) {
	var gotAuth string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": "user_1",
				"username": "alice",
				"profile_image_url": "https://img.example/alice.png",
				"created_at": 1700000000000,
				"external_accounts": [
					{"provider": "oauth_github", "username": "alice-gh"}
				]
			}
		]`))
	}))
	defer srv.Close()

	client := NewClerkClient(&config.IdentityConfig{
		BaseURL:   srv.URL,
		SecretKey: "sk_test_123",
		Timeout:   5 * time.Second,
	})

	authors, err := client.GetUserList(context.Background(), ListParams{
		UserIDs: []string{"user_1", "user_2"},
		Limit:   100,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, []string{"user_1", "user_2"}, gotQuery["user_id"])
	assert.Equal(t, []string{"100"}, gotQuery["limit"])

	require.Len(t, authors, 1)
	assert.Equal(t, "user_1", authors[0].ID)
	assert.Equal(t, "alice", authors[0].Username)
	assert.Equal(t, "https://img.example/alice.png", authors[0].ProfileImageURL)
	assert.Equal(t, time.UnixMilli(1700000000000), authors[0].CreatedAt)
	require.Len(t, authors[0].ExternalAccounts, 1)
	assert.Equal(t, "oauth_github", authors[0].ExternalAccounts[0].Provider)
}

func TestClerkClientUsernameFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"alice"}, r.URL.Query()["username"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClerkClient(&config.IdentityConfig{BaseURL: srv.URL, SecretKey: "sk"})

	authors, err := client.GetUserList(context.Background(), ListParams{
		Usernames: []string{"alice"},
		Limit:     1,
	})
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestClerkClientUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClerkClient(&config.IdentityConfig{BaseURL: srv.URL, SecretKey: "sk"})

	_, err := client.GetUserList(context.Background(), ListParams{UserIDs: []string{"user_1"}})
	assert.ErrorIs(t, err, ErrUnavailable)

	// Unreachable host: transport error maps the same way
	down := NewClerkClient(&config.IdentityConfig{
		BaseURL:   "http://127.0.0.1:1",
		SecretKey: "sk",
		Timeout:   time.Second,
	})
	_, err = down.GetUserList(context.Background(), ListParams{UserIDs: []string{"user_1"}})
	assert.ErrorIs(t, err, ErrUnavailable)
}
