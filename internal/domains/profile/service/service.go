package service

import (
	"context"
	"errors"
	"fmt"

	"twooter-backend/internal/domains/profile/model"
	"twooter-backend/internal/infrastructure/identity"

	tweetservice "twooter-backend/internal/domains/tweet/service"
)

// =====================================================
// PROFILE SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// GetByUsername resolves a public profile by handle, including the
	// account's recent tweets.
	GetByUsername(ctx context.Context, username string) (*model.ProfileResponse, error)
}

// UsernameResolver is the identity-layer slice this service needs.
type UsernameResolver interface {
	ResolveByUsername(ctx context.Context, username string) (*identity.Author, error)
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type profileService struct {
	identities   UsernameResolver
	tweetService tweetservice.ServiceInterface
}

func NewProfileService(identities UsernameResolver, tweetService tweetservice.ServiceInterface) ServiceInterface {
	return &profileService{
		identities:   identities,
		tweetService: tweetService,
	}
}

func (s *profileService) GetByUsername(ctx context.Context, username string) (*model.ProfileResponse, error) {
	// Step 1: Resolve the handle to an account
	author, err := s.identities.ResolveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, model.NewProfileNotFoundError(username)
		}
		return nil, fmt.Errorf("failed to resolve username: %w", err)
	}

	// Step 2: Fetch the account's recent tweets
	tweets, err := s.tweetService.GetByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile tweets: %w", err)
	}

	return &model.ProfileResponse{
		Author: *author,
		Tweets: tweets,
	}, nil
}
