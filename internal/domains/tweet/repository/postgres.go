package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"twooter-backend/internal/domains/tweet/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresTweetRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTweetRepository(pool *pgxpool.Pool) TweetRepository {
	return &postgresTweetRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	query := `
		INSERT INTO tweets (author_id, text)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		tweet.AuthorID,
		tweet.Text,
	).Scan(&tweet.ID, &tweet.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresTweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	query := `
		SELECT id, author_id, text, created_at
		FROM tweets
		WHERE id = $1
	`

	tweet := &model.Tweet{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tweet.ID,
		&tweet.AuthorID,
		&tweet.Text,
		&tweet.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}

	return tweet, nil
}

// =====================================================
// LIST PAGE (FEED)
// =====================================================

// ListPage pages over the feed with an explicit (created_at, id) keyset
// rather than OFFSET, so each tweet is visited exactly once even while new
// rows are being written at the head.
func (r *postgresTweetRepository) ListPage(ctx context.Context, limit int, cursor *uuid.UUID) ([]model.Tweet, error) {
	if cursor == nil {
		query := `
			SELECT id, author_id, text, created_at
			FROM tweets
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`
		rows, err := r.pool.Query(ctx, query, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list tweets: %w", err)
		}
		defer rows.Close()

		return scanTweets(rows)
	}

	// Resolve the cursor row first: its ordering key anchors the page, and a
	// vanished id means the caller holds a cursor we never issued.
	anchor, err := r.GetByID(ctx, *cursor)
	if err != nil {
		if errors.Is(err, model.ErrTweetNotFound) {
			return nil, model.ErrInvalidCursor
		}
		return nil, err
	}

	query := `
		SELECT id, author_id, text, created_at
		FROM tweets
		WHERE (created_at, id) < ($1, $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, anchor.CreatedAt, anchor.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	return scanTweets(rows)
}

// =====================================================
// LIST BY AUTHOR
// =====================================================

func (r *postgresTweetRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]model.Tweet, error) {
	query := `
		SELECT id, author_id, text, created_at
		FROM tweets
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	return scanTweets(rows)
}

func scanTweets(rows pgx.Rows) ([]model.Tweet, error) {
	var tweets []model.Tweet
	for rows.Next() {
		var tweet model.Tweet
		err := rows.Scan(
			&tweet.ID,
			&tweet.AuthorID,
			&tweet.Text,
			&tweet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tweet: %w", err)
		}
		tweets = append(tweets, tweet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tweets: %w", err)
	}

	return tweets, nil
}
