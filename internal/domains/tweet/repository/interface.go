package repository

import (
	"context"

	"github.com/google/uuid"

	"twooter-backend/internal/domains/tweet/model"
)

// =====================================================
// TWEET REPOSITORY INTERFACE
// =====================================================

type TweetRepository interface {
	// Create persists a new tweet. Storage assigns ID and CreatedAt and the
	// passed entity is updated with them.
	Create(ctx context.Context, tweet *model.Tweet) error

	// GetByID gets tweet by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)

	// ListPage lists up to limit tweets ordered by (created_at, id)
	// descending, starting strictly after the cursor tweet when cursor is
	// non-nil. An unknown cursor id returns ErrInvalidCursor.
	ListPage(ctx context.Context, limit int, cursor *uuid.UUID) ([]model.Tweet, error)

	// ListByAuthor lists up to limit tweets by one author, same ordering,
	// no cursor.
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]model.Tweet, error)
}
