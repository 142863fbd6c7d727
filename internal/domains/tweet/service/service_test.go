package service

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twooter-backend/internal/domains/tweet/model"
	"twooter-backend/internal/infrastructure/identity"
)

// =====================================================
// FAKES
// =====================================================

// fakeClock hands out strictly increasing timestamps so created_at never
// collides unless a test forces it to.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// fakeRepo is an in-memory TweetRepository with the same ordering and
// cursor semantics as the postgres implementation.
type fakeRepo struct {
	clock  *fakeClock
	tweets []model.Tweet
}

func (r *fakeRepo) Create(ctx context.Context, tweet *model.Tweet) error {
	tweet.ID = uuid.New()
	tweet.CreatedAt = r.clock.Now()
	r.tweets = append(r.tweets, *tweet)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	for _, t := range r.tweets {
		if t.ID == id {
			tweet := t
			return &tweet, nil
		}
	}
	return nil, model.ErrTweetNotFound
}

// sorted returns tweets by (created_at, id) descending.
func (r *fakeRepo) sorted() []model.Tweet {
	out := make([]model.Tweet, len(r.tweets))
	copy(out, r.tweets)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) > 0
	})
	return out
}

func (r *fakeRepo) ListPage(ctx context.Context, limit int, cursor *uuid.UUID) ([]model.Tweet, error) {
	ordered := r.sorted()

	start := 0
	if cursor != nil {
		found := false
		for i, t := range ordered {
			if t.ID == *cursor {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, model.ErrInvalidCursor
		}
	}

	end := start + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[start:end], nil
}

func (r *fakeRepo) ListByAuthor(ctx context.Context, authorID string, limit int) ([]model.Tweet, error) {
	var out []model.Tweet
	for _, t := range r.sorted() {
		if t.AuthorID == authorID {
			out = append(out, t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// fakeResolver serves authors from a map; unknown ids are absent from the
// result, like the real resolver.
type fakeResolver struct {
	authors map[string]identity.Author
	err     error
}

func (f *fakeResolver) ResolveAuthors(ctx context.Context, ids []string) (map[string]identity.Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]identity.Author)
	for _, id := range ids {
		if a, ok := f.authors[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

// fakeLimiter reproduces the sliding-window semantics against the fake
// clock: only accepted requests occupy window slots.
type fakeLimiter struct {
	clock    *fakeClock
	window   time.Duration
	max      int
	accepted map[string][]time.Time
}

func newFakeLimiter(clock *fakeClock) *fakeLimiter {
	return &fakeLimiter{
		clock:    clock,
		window:   10 * time.Second,
		max:      1,
		accepted: make(map[string][]time.Time),
	}
}

func (l *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	cutoff := l.clock.Now().Add(-l.window)
	var kept []time.Time
	for _, ts := range l.accepted[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.accepted[key] = kept
		return false, nil
	}
	l.accepted[key] = append(kept, l.clock.Now())
	return true, nil
}

// =====================================================
// HARNESS
// =====================================================

type harness struct {
	clock    *fakeClock
	repo     *fakeRepo
	resolver *fakeResolver
	limiter  *fakeLimiter
	service  ServiceInterface
}

func newHarness() *harness {
	clock := newFakeClock()
	repo := &fakeRepo{clock: clock}
	resolver := &fakeResolver{authors: map[string]identity.Author{
		"alice": {ID: "alice", Username: "alice"},
		"bob":   {ID: "bob", Username: "bob"},
	}}
	limiter := newFakeLimiter(clock)

	return &harness{
		clock:    clock,
		repo:     repo,
		resolver: resolver,
		limiter:  limiter,
		service:  NewTweetService(repo, resolver, limiter),
	}
}

// seed persists count tweets for author, one second apart, oldest first.
// Returns them oldest first.
func (h *harness) seed(t *testing.T, author string, count int) []model.Tweet {
	t.Helper()

	tweets := make([]model.Tweet, 0, count)
	for i := 0; i < count; i++ {
		tweet := model.Tweet{AuthorID: author, Text: "post"}
		require.NoError(t, h.repo.Create(context.Background(), &tweet))
		tweets = append(tweets, tweet)
		h.clock.Advance(time.Second)
	}
	return tweets
}

// =====================================================
// CREATE
// =====================================================

func TestCreateStoresTextVerbatim(t *testing.T) {
	h := newHarness()

	// Markup is part of the stored text; only the length check projects it away.
	text := "<b>hello</b> world"
	tweet, err := h.service.Create(context.Background(), "alice", model.CreateTweetRequest{Text: text})
	require.NoError(t, err)

	assert.Equal(t, text, tweet.Text)
	assert.Equal(t, "alice", tweet.AuthorID)
	assert.NotEqual(t, uuid.Nil, tweet.ID)
	assert.False(t, tweet.CreatedAt.IsZero())

	stored, err := h.repo.GetByID(context.Background(), tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, text, stored.Text)
}

func TestCreateUnauthorized(t *testing.T) {
	h := newHarness()

	_, err := h.service.Create(context.Background(), "", model.CreateTweetRequest{Text: "hello"})

	var tweetErr *model.TweetError
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeUnauthorized, tweetErr.Code)
	assert.Empty(t, h.repo.tweets)
}

func TestCreateRejectsOutOfBoundsText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"markup only", "<b></b>"},
		{"too long", strings.Repeat("a", 281)},
		{"too long after stripping", "<i>" + strings.Repeat("b", 281) + "</i>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()

			_, err := h.service.Create(context.Background(), "alice", model.CreateTweetRequest{Text: tt.text})

			var tweetErr *model.TweetError
			require.ErrorAs(t, err, &tweetErr)
			assert.Equal(t, model.ErrCodeValidation, tweetErr.Code)
			assert.Empty(t, h.repo.tweets, "rejected tweet must not be persisted")
		})
	}
}

func TestCreateAcceptsBoundaryLengths(t *testing.T) {
	h := newHarness()

	_, err := h.service.Create(context.Background(), "alice", model.CreateTweetRequest{Text: "x"})
	require.NoError(t, err)

	h.clock.Advance(time.Minute)

	// 280 characters of text wrapped in markup is still within bounds
	_, err = h.service.Create(context.Background(), "alice", model.CreateTweetRequest{
		Text: "<em>" + strings.Repeat("y", 280) + "</em>",
	})
	require.NoError(t, err)
}

func TestCreateRateLimited(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.Create(ctx, "alice", model.CreateTweetRequest{Text: "hello"})
	require.NoError(t, err)

	// 2 seconds later: denied, nothing persisted
	h.clock.Advance(2 * time.Second)
	_, err = h.service.Create(ctx, "alice", model.CreateTweetRequest{Text: "world"})

	var tweetErr *model.TweetError
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeRateLimited, tweetErr.Code)
	assert.Len(t, h.repo.tweets, 1)

	// a different caller is unaffected
	_, err = h.service.Create(ctx, "bob", model.CreateTweetRequest{Text: "hi"})
	require.NoError(t, err)

	// once the window rolls past the accepted post, alice may tweet again
	h.clock.Advance(9 * time.Second)
	_, err = h.service.Create(ctx, "alice", model.CreateTweetRequest{Text: "world"})
	require.NoError(t, err)
}

func TestCreateRateLimitPrecedesValidation(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	// invalid text still consumes the caller's window slot
	_, err := h.service.Create(ctx, "alice", model.CreateTweetRequest{Text: ""})
	var tweetErr *model.TweetError
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeValidation, tweetErr.Code)

	h.clock.Advance(time.Second)
	_, err = h.service.Create(ctx, "alice", model.CreateTweetRequest{Text: "valid text"})
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeRateLimited, tweetErr.Code)
	assert.Empty(t, h.repo.tweets)
}

// =====================================================
// FEED PAGE
// =====================================================

func TestGetFeedPageWorkedExample(t *testing.T) {
	// P1..P12, P12 newest. limit=10 returns P12..P3 and cursor P3; the
	// follow-up returns P2, P1 and no cursor.
	h := newHarness()
	seeded := h.seed(t, "alice", 12)

	page, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 10})
	require.NoError(t, err)

	require.Len(t, page.Tweets, 10)
	assert.Equal(t, seeded[11].ID, page.Tweets[0].Tweet.ID) // P12 first
	assert.Equal(t, seeded[2].ID, page.Tweets[9].Tweet.ID)  // P3 last
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, seeded[2].ID, *page.NextCursor) // cursor is P3

	next, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{
		Limit:  10,
		Cursor: page.NextCursor.String(),
	})
	require.NoError(t, err)

	require.Len(t, next.Tweets, 2)
	assert.Equal(t, seeded[1].ID, next.Tweets[0].Tweet.ID) // P2
	assert.Equal(t, seeded[0].ID, next.Tweets[1].Tweet.ID) // P1
	assert.Nil(t, next.NextCursor)
}

func TestGetFeedPageNeverExceedsLimit(t *testing.T) {
	h := newHarness()
	h.seed(t, "alice", 7)

	page, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page.Tweets, 3)
	assert.NotNil(t, page.NextCursor)
}

func TestGetFeedPageCursorAbsentAtEnd(t *testing.T) {
	h := newHarness()
	h.seed(t, "alice", 5)

	// exactly limit tweets: no sixth row exists, so no cursor
	page, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page.Tweets, 5)
	assert.Nil(t, page.NextCursor)
}

func TestGetFeedPageTraversalIsExact(t *testing.T) {
	h := newHarness()
	h.seed(t, "alice", 23)

	seen := make(map[uuid.UUID]bool)
	var lastCreated time.Time
	first := true

	cursor := ""
	pages := 0
	for {
		page, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 5, Cursor: cursor})
		require.NoError(t, err)
		pages++

		for _, item := range page.Tweets {
			assert.False(t, seen[item.Tweet.ID], "tweet visited twice")
			seen[item.Tweet.ID] = true

			if !first {
				assert.True(t, item.Tweet.CreatedAt.Before(lastCreated) ||
					item.Tweet.CreatedAt.Equal(lastCreated),
					"feed must be in decreasing created_at order")
			}
			first = false
			lastCreated = item.Tweet.CreatedAt
		}

		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor.String()
	}

	assert.Len(t, seen, 23, "every tweet visited exactly once")
	assert.Equal(t, 5, pages)
}

func TestGetFeedPageTieBreakOnEqualTimestamps(t *testing.T) {
	h := newHarness()

	// three tweets sharing one timestamp: ordering falls back to id
	for i := 0; i < 3; i++ {
		tweet := model.Tweet{AuthorID: "alice", Text: "same instant"}
		require.NoError(t, h.repo.Create(context.Background(), &tweet))
	}

	var collected []uuid.UUID
	cursor := ""
	for {
		page, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 1, Cursor: cursor})
		require.NoError(t, err)
		for _, item := range page.Tweets {
			collected = append(collected, item.Tweet.ID)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor.String()
	}

	require.Len(t, collected, 3)
	for i := 1; i < len(collected); i++ {
		assert.True(t, bytes.Compare(collected[i-1][:], collected[i][:]) > 0,
			"equal timestamps order by id descending")
	}
}

func TestGetFeedPageDefaultAndBounds(t *testing.T) {
	h := newHarness()
	h.seed(t, "alice", 60)

	// omitted limit defaults to 50
	page, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Tweets, 50)

	_, err = h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 101})
	var tweetErr *model.TweetError
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeValidation, tweetErr.Code)

	_, err = h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: -1})
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeValidation, tweetErr.Code)
}

func TestGetFeedPageRejectsBogusCursors(t *testing.T) {
	h := newHarness()
	h.seed(t, "alice", 3)

	var tweetErr *model.TweetError

	// not a uuid at all
	_, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 10, Cursor: "not-a-cursor"})
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeInvalidCursor, tweetErr.Code)

	// well-formed but never issued
	_, err = h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 10, Cursor: uuid.NewString()})
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeInvalidCursor, tweetErr.Code)
}

func TestGetFeedPageUnresolvableAuthorFailsRequest(t *testing.T) {
	h := newHarness()
	h.seed(t, "alice", 2)

	// one tweet by an account the provider no longer knows
	tweet := model.Tweet{AuthorID: "ghost", Text: "who wrote this"}
	require.NoError(t, h.repo.Create(context.Background(), &tweet))

	_, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 10})

	var tweetErr *model.TweetError
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeAuthorNotFound, tweetErr.Code)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestGetFeedPageEmptyFeed(t *testing.T) {
	h := newHarness()

	page, err := h.service.GetFeedPage(context.Background(), model.FeedPageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Tweets)
	assert.Nil(t, page.NextCursor)
}

// =====================================================
// BY ID / BY AUTHOR
// =====================================================

func TestGetByID(t *testing.T) {
	h := newHarness()
	seeded := h.seed(t, "alice", 1)

	got, err := h.service.GetByID(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, seeded[0].ID, got.Tweet.ID)
	assert.Equal(t, "alice", got.Author.Username)
}

func TestGetByIDNotFound(t *testing.T) {
	h := newHarness()

	_, err := h.service.GetByID(context.Background(), uuid.New())

	var tweetErr *model.TweetError
	require.ErrorAs(t, err, &tweetErr)
	assert.Equal(t, model.ErrCodeTweetNotFound, tweetErr.Code)
}

func TestGetByAuthor(t *testing.T) {
	h := newHarness()
	h.seed(t, "alice", 3)
	h.seed(t, "bob", 2)

	tweets, err := h.service.GetByAuthor(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, tweets, 3)
	for _, item := range tweets {
		assert.Equal(t, "alice", item.Tweet.AuthorID)
		assert.Equal(t, "alice", item.Author.Username)
	}
	// newest first
	assert.True(t, tweets[0].Tweet.CreatedAt.After(tweets[2].Tweet.CreatedAt))
}

func TestGetByAuthorUnknownAuthorIsEmpty(t *testing.T) {
	h := newHarness()
	h.seed(t, "alice", 2)

	tweets, err := h.service.GetByAuthor(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, tweets)
}
