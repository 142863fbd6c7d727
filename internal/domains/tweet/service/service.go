package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"twooter-backend/internal/domains/tweet/model"
	"twooter-backend/internal/domains/tweet/repository"
	"twooter-backend/internal/infrastructure/ratelimit"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type tweetService struct {
	tweetRepo repository.TweetRepository
	authors   AuthorResolver
	limiter   ratelimit.Limiter
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	authors AuthorResolver,
	limiter ratelimit.Limiter,
) ServiceInterface {
	return &tweetService{
		tweetRepo: tweetRepo,
		authors:   authors,
		limiter:   limiter,
	}
}

// =====================================================
// FEED PAGE
// =====================================================

func (s *tweetService) GetFeedPage(ctx context.Context, req model.FeedPageRequest) (*model.FeedPage, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	var cursor *uuid.UUID
	if req.Cursor != "" {
		id, err := uuid.Parse(req.Cursor)
		if err != nil {
			return nil, model.NewInvalidCursorError()
		}
		cursor = &id
	}

	// Step 2: Fetch one row beyond the limit to learn whether a next page
	// exists without a second query.
	tweets, err := s.tweetRepo.ListPage(ctx, req.Limit+1, cursor)
	if err != nil {
		if tweetErr := asDomainError(err); tweetErr != nil {
			return nil, tweetErr
		}
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}

	// Step 3: An extra row means more pages exist. Drop it and hand out the
	// last returned tweet's id as the cursor; the next page resumes strictly
	// after that tweet.
	var nextCursor *uuid.UUID
	if len(tweets) > req.Limit {
		tweets = tweets[:req.Limit]
		last := tweets[req.Limit-1].ID
		nextCursor = &last
	}

	// Step 4: Attach author snapshots
	withAuthors, err := s.attachAuthors(ctx, tweets)
	if err != nil {
		return nil, err
	}

	return &model.FeedPage{
		Tweets:     withAuthors,
		NextCursor: nextCursor,
	}, nil
}

// =====================================================
// BY AUTHOR
// =====================================================

func (s *tweetService) GetByAuthor(ctx context.Context, authorID string) ([]model.TweetWithAuthor, error) {
	tweets, err := s.tweetRepo.ListByAuthor(ctx, authorID, model.MaxFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}

	return s.attachAuthors(ctx, tweets)
}

// =====================================================
// BY ID
// =====================================================

func (s *tweetService) GetByID(ctx context.Context, id uuid.UUID) (*model.TweetWithAuthor, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrTweetNotFound {
			return nil, model.NewTweetNotFoundError()
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}

	withAuthors, err := s.attachAuthors(ctx, []model.Tweet{*tweet})
	if err != nil {
		return nil, err
	}

	return &withAuthors[0], nil
}

// =====================================================
// CREATE (ADMISSION CONTROL)
// =====================================================

// Create runs the admission pipeline: authentication check, rate limit,
// text validation, write. The first failing step is terminal; a rejected
// submission leaves no state behind except the limiter's consumed slot.
func (s *tweetService) Create(ctx context.Context, callerID string, req model.CreateTweetRequest) (*model.Tweet, error) {
	// Step 1: Caller must be authenticated. The auth middleware already
	// guarantees this for HTTP callers; re-checked here so the service is
	// safe on its own.
	if callerID == "" {
		return nil, model.NewUnauthorizedError()
	}

	// Step 2: Rate limit - atomic check-and-consume keyed by caller
	allowed, err := s.limiter.Allow(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		return nil, model.NewRateLimitedError()
	}

	// Step 3: Validate text bounds on the plain-text projection
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	// Step 4: Persist; storage assigns id and created_at
	tweet := &model.Tweet{
		AuthorID: callerID,
		Text:     req.Text,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}

	return tweet, nil
}

// =====================================================
// AUTHOR RESOLUTION
// =====================================================

// attachAuthors pairs each tweet with its author snapshot via one batch
// identity lookup. A tweet whose author the provider does not know fails the
// whole request: author data is never fabricated and broken rows are never
// silently skipped.
func (s *tweetService) attachAuthors(ctx context.Context, tweets []model.Tweet) ([]model.TweetWithAuthor, error) {
	if len(tweets) == 0 {
		return []model.TweetWithAuthor{}, nil
	}

	ids := make([]string, 0, len(tweets))
	for _, tweet := range tweets {
		ids = append(ids, tweet.AuthorID)
	}

	authors, err := s.authors.ResolveAuthors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authors: %w", err)
	}

	withAuthors := make([]model.TweetWithAuthor, 0, len(tweets))
	for _, tweet := range tweets {
		author, ok := authors[tweet.AuthorID]
		if !ok {
			return nil, model.NewAuthorNotFoundError(tweet.ID.String(), tweet.AuthorID)
		}
		withAuthors = append(withAuthors, model.TweetWithAuthor{
			Tweet:  tweet,
			Author: author,
		})
	}

	return withAuthors, nil
}

// asDomainError extracts a known domain error from a repository failure.
func asDomainError(err error) *model.TweetError {
	switch {
	case err == model.ErrInvalidCursor:
		return model.NewInvalidCursorError()
	case err == model.ErrTweetNotFound:
		return model.NewTweetNotFoundError()
	}
	return nil
}
