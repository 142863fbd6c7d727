package ratelimit

import "context"

// Limiter is the admission-control capability used by the tweet write path.
// Allow performs an atomic check-and-consume for the caller's key: it returns
// true and records the request when the caller is within their window, false
// when the window is already full. The check and the consume must not be
// separable, otherwise two concurrent submissions from one caller could both
// pass.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
