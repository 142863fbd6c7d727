package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeTweetNotFound  = "TWT001"
	ErrCodeUnauthorized   = "TWT002"
	ErrCodeRateLimited    = "TWT003"
	ErrCodeValidation     = "TWT004"
	ErrCodeInvalidCursor  = "TWT005"
	ErrCodeAuthorNotFound = "TWT006"
)

// Errors
var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrUnauthorized  = errors.New("caller is not authenticated")
	ErrRateLimited   = errors.New("tweet rate limit exceeded")
	ErrInvalidCursor = errors.New("unknown pagination cursor")

	// ErrAuthorNotFound means a persisted tweet references an account the
	// identity provider cannot resolve. That breaks the write-path guarantee
	// that every author was resolvable at creation time, so the whole request
	// fails rather than the tweet being silently dropped.
	ErrAuthorNotFound = errors.New("author for tweet not found")
)

// TweetError custom error type
type TweetError struct {
	Code    string
	Message string
	Err     error
}

func (e *TweetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TweetError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewTweetNotFoundError() *TweetError {
	return &TweetError{
		Code:    ErrCodeTweetNotFound,
		Message: "Tweet not found",
		Err:     ErrTweetNotFound,
	}
}

func NewUnauthorizedError() *TweetError {
	return &TweetError{
		Code:    ErrCodeUnauthorized,
		Message: "You are not signed in, please authenticate so that you may tweet",
		Err:     ErrUnauthorized,
	}
}

func NewRateLimitedError() *TweetError {
	return &TweetError{
		Code:    ErrCodeRateLimited,
		Message: "You are only allowed to tweet once every 10 seconds",
		Err:     ErrRateLimited,
	}
}

func NewValidationError(reason string) *TweetError {
	return &TweetError{
		Code:    ErrCodeValidation,
		Message: reason,
	}
}

func NewInvalidCursorError() *TweetError {
	return &TweetError{
		Code:    ErrCodeInvalidCursor,
		Message: "Unknown pagination cursor",
		Err:     ErrInvalidCursor,
	}
}

func NewAuthorNotFoundError(tweetID, authorID string) *TweetError {
	return &TweetError{
		Code:    ErrCodeAuthorNotFound,
		Message: fmt.Sprintf("Author for tweet not found. TWEET ID: %s, USER ID: %s", tweetID, authorID),
		Err:     ErrAuthorNotFound,
	}
}
