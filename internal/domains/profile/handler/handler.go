package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"twooter-backend/internal/domains/profile/model"
	"twooter-backend/internal/domains/profile/service"
	"twooter-backend/internal/infrastructure/identity"
	"twooter-backend/internal/shared/response"
)

// =====================================================
// PROFILE HANDLER
// =====================================================

type ProfileHandler struct {
	profileService service.ServiceInterface
}

func NewProfileHandler(profileService service.ServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile returns a public profile by username
// GET /api/v1/profiles/:username
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	// Step 1: Read username
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "Invalid username")
		return
	}

	// Step 2: Call service
	profile, err := h.profileService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		statusCode, errCode := mapProfileError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusOK, profile)
}

// mapProfileError maps domain errors to HTTP status and response code.
func mapProfileError(err error) (int, string) {
	var profileErr *model.ProfileError
	if errors.As(err, &profileErr) {
		switch profileErr.Code {
		case model.ErrCodeProfileNotFound:
			return http.StatusNotFound, profileErr.Code
		}
	}

	if errors.Is(err, identity.ErrUnavailable) {
		return http.StatusBadGateway, "IDENTITY_UNAVAILABLE"
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
