package service

import (
	"context"

	"github.com/google/uuid"

	"twooter-backend/internal/domains/tweet/model"
	"twooter-backend/internal/infrastructure/identity"
)

// =====================================================
// TWEET SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// GetFeedPage returns the next page of the reverse-chronological feed
	// with authors attached.
	GetFeedPage(ctx context.Context, req model.FeedPageRequest) (*model.FeedPage, error)

	// GetByAuthor returns up to 100 tweets by one author, newest first.
	GetByAuthor(ctx context.Context, authorID string) ([]model.TweetWithAuthor, error)

	// GetByID returns a single tweet with its author.
	GetByID(ctx context.Context, id uuid.UUID) (*model.TweetWithAuthor, error)

	// Create admits and persists a new tweet for the authenticated caller.
	Create(ctx context.Context, callerID string, req model.CreateTweetRequest) (*model.Tweet, error)
}

// AuthorResolver is the slice of the identity layer this service needs:
// batch id → Author snapshot resolution.
type AuthorResolver interface {
	ResolveAuthors(ctx context.Context, ids []string) (map[string]identity.Author, error)
}
