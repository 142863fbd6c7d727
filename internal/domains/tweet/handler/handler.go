package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"twooter-backend/internal/domains/tweet/model"
	"twooter-backend/internal/domains/tweet/service"
	"twooter-backend/internal/infrastructure/identity"
	"twooter-backend/internal/shared/middleware"
	"twooter-backend/internal/shared/response"
)

// =====================================================
// TWEET HANDLER
// =====================================================

type TweetHandler struct {
	tweetService service.ServiceInterface
}

func NewTweetHandler(tweetService service.ServiceInterface) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
	}
}

// =====================================================
// FEED ENDPOINTS
// =====================================================

// GetFeed returns one page of the reverse-chronological feed
// GET /api/v1/tweets?limit=&cursor=
func (h *TweetHandler) GetFeed(c *gin.Context) {
	// Step 1: Parse pagination parameters
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "limit must be an integer")
			return
		}
		limit = parsed
	}

	req := model.FeedPageRequest{
		Limit:  limit,
		Cursor: c.Query("cursor"),
	}

	// Step 2: Call service
	page, err := h.tweetService.GetFeedPage(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapTweetError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusOK, page)
}

// GetTweet returns a single tweet with its author
// GET /api/v1/tweets/:id
func (h *TweetHandler) GetTweet(c *gin.Context) {
	// Step 1: Parse tweet ID
	tweetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tweet ID")
		return
	}

	// Step 2: Call service
	tweet, err := h.tweetService.GetByID(c.Request.Context(), tweetID)
	if err != nil {
		statusCode, errCode := mapTweetError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusOK, tweet)
}

// GetUserTweets lists one author's tweets, newest first
// GET /api/v1/users/:user_id/tweets
func (h *TweetHandler) GetUserTweets(c *gin.Context) {
	// Step 1: Read author ID
	authorID := c.Param("user_id")
	if authorID == "" {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	// Step 2: Call service
	tweets, err := h.tweetService.GetByAuthor(c.Request.Context(), authorID)
	if err != nil {
		statusCode, errCode := mapTweetError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusOK, gin.H{"tweets": tweets})
}

// =====================================================
// WRITE ENDPOINTS
// =====================================================

// CreateTweet admits and persists a new tweet
// POST /api/v1/tweets
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	// Step 1: Get caller from JWT (set by auth middleware)
	callerID := middleware.CallerID(c)

	// Step 2: Bind request body
	var req model.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Step 3: Call service; the admission pipeline does the rest
	tweet, err := h.tweetService.Create(c.Request.Context(), callerID, req)
	if err != nil {
		statusCode, errCode := mapTweetError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusCreated, tweet)
}

// =====================================================
// ERROR MAPPING
// =====================================================

// mapTweetError maps domain errors to HTTP status and response code.
func mapTweetError(err error) (int, string) {
	var tweetErr *model.TweetError
	if errors.As(err, &tweetErr) {
		switch tweetErr.Code {
		case model.ErrCodeTweetNotFound:
			return http.StatusNotFound, tweetErr.Code
		case model.ErrCodeUnauthorized:
			return http.StatusUnauthorized, tweetErr.Code
		case model.ErrCodeRateLimited:
			return http.StatusTooManyRequests, tweetErr.Code
		case model.ErrCodeValidation:
			return http.StatusBadRequest, tweetErr.Code
		case model.ErrCodeInvalidCursor:
			return http.StatusBadRequest, tweetErr.Code
		case model.ErrCodeAuthorNotFound:
			return http.StatusInternalServerError, tweetErr.Code
		}
	}

	// The identity provider being down is an upstream failure, not a bug here.
	if errors.Is(err, identity.ErrUnavailable) {
		return http.StatusBadGateway, "IDENTITY_UNAVAILABLE"
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
