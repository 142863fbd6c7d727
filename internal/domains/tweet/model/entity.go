package model

import (
	"time"

	"github.com/google/uuid"

	"twooter-backend/internal/infrastructure/identity"
)

// Tweet is the persisted post entity. Every field is immutable once the row
// exists: there is no edit or delete path.
type Tweet struct {
	ID        uuid.UUID `json:"id"`         // assigned by storage
	AuthorID  string    `json:"author_id"`  // identity-provider account id
	Text      string    `json:"text"`       // stored verbatim, markup included
	CreatedAt time.Time `json:"created_at"` // assigned by storage, feed order key
}

// TweetWithAuthor pairs a tweet with the point-in-time snapshot of its
// author fetched from the identity provider.
type TweetWithAuthor struct {
	Tweet  Tweet           `json:"tweet"`
	Author identity.Author `json:"author"`
}

// FeedPage is one page of the reverse-chronological feed. NextCursor is set
// iff more tweets exist beyond this page.
type FeedPage struct {
	Tweets     []TweetWithAuthor `json:"tweets"`
	NextCursor *uuid.UUID        `json:"next_cursor,omitempty"`
}
