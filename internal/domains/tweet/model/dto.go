package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"twooter-backend/internal/shared/utils"
)

// ========================================
// REQUEST DTOs
// ========================================

// MaxTextLength bounds the plain-text projection of a tweet.
const MaxTextLength = 280

// Feed limits
const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 100
)

// CreateTweetRequest is a tweet submission. Text may contain simple markup;
// the length bounds apply to its plain-text projection, and the raw text is
// stored verbatim.
type CreateTweetRequest struct {
	Text string `json:"text"`
}

func (r CreateTweetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("twoot requires some text"),
			validation.By(plainTextBounds),
		),
	)
}

func plainTextBounds(value interface{}) error {
	text, _ := value.(string)
	length := utils.PlainTextLength(text)

	if length < 1 {
		return errors.New("twoot must contain at least 1 character")
	}
	if length > MaxTextLength {
		return errors.New("twoot cannot be longer than 280 characters")
	}
	return nil
}

// FeedPageRequest asks for the next page of the feed. Cursor is the id of
// the last tweet of the previous page, or empty for the first page.
type FeedPageRequest struct {
	Limit  int    `form:"limit"`
	Cursor string `form:"cursor"`
}

func (r *FeedPageRequest) Validate() error {
	if r.Limit == 0 {
		r.Limit = DefaultFeedLimit
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Limit,
			validation.Min(1).Error("limit must be at least 1"),
			validation.Max(MaxFeedLimit).Error("limit cannot exceed 100"),
		),
	)
}
