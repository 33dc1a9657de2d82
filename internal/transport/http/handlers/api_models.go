package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petukhovtd/account-service/internal/core/domain"
)

// ErrorsResponse carries every structured error collected for one request.
type ErrorsResponse struct {
	Error []*domain.Error `json:"error"`
}

// respondErrors writes the collected errors and reports whether it did.
func respondErrors(c *gin.Context, status int, errs []*domain.Error) bool {
	if len(errs) == 0 {
		return false
	}

	c.JSON(status, ErrorsResponse{Error: errs})
	return true
}

func respondError(c *gin.Context, status int, err *domain.Error) {
	c.JSON(status, ErrorsResponse{Error: []*domain.Error{err}})
}

// UserSummary is the compact listing view of an account.
type UserSummary struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// UserRepresentation is the full single-account view including profile info.
type UserRepresentation struct {
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newUserSummary(user domain.User) UserSummary {
	return UserSummary{
		UserID:   uint64(user.ID()),
		Username: user.Username(),
	}
}

func newUserRepresentation(user domain.User) UserRepresentation {
	return UserRepresentation{
		UserID:    uint64(user.ID()),
		Username:  user.Username(),
		FirstName: user.Info().FirstName,
		LastName:  user.Info().LastName,
	}
}

// CreateUserResponse answers a successful registration.
type CreateUserResponse struct {
	UserID uint64 `json:"user_id"`
}

// ListUsersResponse is one ordered-by-id window over the accounts. Offset and
// limit are echoed only when the client supplied them.
type ListUsersResponse struct {
	Users  []UserSummary `json:"users"`
	Size   uint64        `json:"size"`
	Total  uint64        `json:"total"`
	Offset *uint64       `json:"offset,omitempty"`
	Limit  *uint64       `json:"limit,omitempty"`
}

// TokenResponse answers token issuance and refresh.
type TokenResponse struct {
	UserID uint64 `json:"user_id"`
	Token  string `json:"token"`
}

// ValidateTokenRequest asks whether a token is the live one for an account.
type ValidateTokenRequest struct {
	UserID *uint64 `json:"user_id"`
	Token  *string `json:"token"`
}

// ValidateTokenResponse reports token validity.
type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// bindBody decodes the request body into a generic JSON object, reporting the
// absence of a JSON body as a structured error.
func bindBody(c *gin.Context) (domain.Body, bool) {
	var body domain.Body
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, domain.NewError(domain.CodeExpectJSONBody))
		return nil, false
	}
	return body, true
}
