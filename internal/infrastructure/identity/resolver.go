package identity

import (
	"context"
	"fmt"
)

// batchLimit is the maximum number of distinct ids per GetUserList call.
// Larger id sets are chunked.
const batchLimit = 100

// Resolver turns author ids into display-ready Author snapshots.
type Resolver struct {
	provider Provider
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

// ResolveAuthors batch-fetches the distinct ids and returns an id → Author
// map. Every returned Author has a usable Username: accounts without one get
// the first linked external handle in preference order, and an account with
// neither fails the whole call. Ids the provider does not know are simply
// absent from the map; the caller decides whether that is fatal.
func (r *Resolver) ResolveAuthors(ctx context.Context, ids []string) (map[string]Author, error) {
	distinct := dedupe(ids)
	authors := make(map[string]Author, len(distinct))

	for start := 0; start < len(distinct); start += batchLimit {
		end := start + batchLimit
		if end > len(distinct) {
			end = len(distinct)
		}
		chunk := distinct[start:end]

		users, err := r.provider.GetUserList(ctx, ListParams{
			UserIDs: chunk,
			Limit:   batchLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch authors: %w", err)
		}

		for _, author := range users {
			if author.Username == "" {
				external := author.externalUsername()
				if external == "" {
					return nil, fmt.Errorf("%w: %s", ErrNoUsername, author.ID)
				}
				author.Username = external
			}
			authors[author.ID] = author
		}
	}

	return authors, nil
}

// ResolveByUsername fetches a single account by its handle.
func (r *Resolver) ResolveByUsername(ctx context.Context, username string) (*Author, error) {
	users, err := r.provider.GetUserList(ctx, ListParams{
		Usernames: []string{username},
		Limit:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	author := users[0]
	if author.Username == "" {
		author.Username = author.externalUsername()
	}

	return &author, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}
