package model

import (
	"twooter-backend/internal/domains/tweet/model"
	"twooter-backend/internal/infrastructure/identity"
)

// ProfileResponse is a user's public page: the identity snapshot plus their
// recent tweets, newest first.
type ProfileResponse struct {
	Author identity.Author         `json:"author"`
	Tweets []model.TweetWithAuthor `json:"tweets"`
}
