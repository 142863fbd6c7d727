package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTweetRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"plain text", "hello world", ""},
		{"single rune", "x", ""},
		{"unicode at the limit", strings.Repeat("é", 280), ""},
		{"markup does not count", "<b>" + strings.Repeat("a", 280) + "</b>", ""},
		{"entity counts as one rune", strings.Repeat("a", 274) + " &amp; b", ""},
		{"empty", "", "twoot requires some text"},
		{"markup only", "<p></p>", "twoot must contain at least 1 character"},
		{"over the limit", strings.Repeat("a", 281), "twoot cannot be longer than 280 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateTweetRequest{Text: tt.text}.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFeedPageRequestValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := FeedPageRequest{}
		require.NoError(t, req.Validate())
		assert.Equal(t, DefaultFeedLimit, req.Limit)
	})

	t.Run("bounds", func(t *testing.T) {
		for _, limit := range []int{1, 50, 100} {
			req := FeedPageRequest{Limit: limit}
			assert.NoError(t, req.Validate())
		}
		for _, limit := range []int{-5, 101, 1000} {
			req := FeedPageRequest{Limit: limit}
			assert.Error(t, req.Validate())
		}
	})
}
