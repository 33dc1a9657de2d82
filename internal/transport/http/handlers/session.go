package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/infra/logger"
	"github.com/petukhovtd/account-service/internal/transport/http/middleware"
	"github.com/petukhovtd/account-service/internal/usecase"
)

// SessionHandler exposes session token issuance and validation endpoints.
type SessionHandler struct {
	sessions *usecase.SessionService
	log      *zap.Logger
}

// NewSessionHandler constructs a session handler.
func NewSessionHandler(sessions *usecase.SessionService, log *zap.Logger) *SessionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionHandler{sessions: sessions, log: log}
}

// RegisterRoutes binds session endpoints. Token management requires Basic
// credentials; validation is open since the token itself is the proof.
func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	token := r.Group("/token", auth)
	token.POST("", h.CreateToken)
	token.PUT("", h.RefreshToken)
	token.DELETE("", h.DeleteToken)

	r.POST("/validate", h.Validate)
}

// CreateToken issues the single live token for the authenticated user. Token
// creation is one-shot: a repeated call conflicts and the first token stays
// valid.
func (h *SessionHandler) CreateToken(c *gin.Context) {
	user, ok := middleware.AuthorizedUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized,
			domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "authorization required"}))
		return
	}

	token, err := h.sessions.Login(user)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyAuthorized) {
			respondError(c, http.StatusConflict,
				domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "already authorized"}))
			return
		}
		c.Error(err) //nolint:errcheck
		c.Status(http.StatusInternalServerError)
		return
	}

	h.log.Info("session created",
		zap.Uint64("user_id", uint64(user.ID())),
		zap.String("token", logger.MaskString(token)),
	)

	c.JSON(http.StatusCreated, TokenResponse{UserID: uint64(user.ID()), Token: token})
}

// RefreshToken regenerates the live token. Without an existing session there
// is nothing to refresh.
func (h *SessionHandler) RefreshToken(c *gin.Context) {
	user, ok := middleware.AuthorizedUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized,
			domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "authorization required"}))
		return
	}

	token, err := h.sessions.Refresh(user)
	if err != nil {
		if errors.Is(err, usecase.ErrNotAuthorized) {
			respondError(c, http.StatusNotFound,
				domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "not authorized"}))
			return
		}
		c.Error(err) //nolint:errcheck
		c.Status(http.StatusInternalServerError)
		return
	}

	h.log.Info("session refreshed",
		zap.Uint64("user_id", uint64(user.ID())),
		zap.String("token", logger.MaskString(token)),
	)

	c.JSON(http.StatusOK, TokenResponse{UserID: uint64(user.ID()), Token: token})
}

// DeleteToken drops the live token. Idempotent.
func (h *SessionHandler) DeleteToken(c *gin.Context) {
	user, ok := middleware.AuthorizedUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized,
			domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "authorization required"}))
		return
	}

	h.sessions.Logout(user.ID())

	h.log.Info("session deleted", zap.Uint64("user_id", uint64(user.ID())))

	c.Status(http.StatusNoContent)
}

// Validate reports whether the supplied token is the live one for the id.
func (h *SessionHandler) Validate(c *gin.Context) {
	var req ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.NewError(domain.CodeExpectJSONBody))
		return
	}

	var errs []*domain.Error
	if req.UserID == nil {
		errs = append(errs, domain.NewError(domain.CodeKeyNotFound, domain.Arg{Key: "key", Value: domain.KeyUserID}))
	}
	if req.Token == nil {
		errs = append(errs, domain.NewError(domain.CodeKeyNotFound, domain.Arg{Key: "key", Value: "token"}))
	}

	if respondErrors(c, http.StatusBadRequest, errs) {
		return
	}

	valid := h.sessions.Validate(domain.UserID(*req.UserID), *req.Token)

	c.JSON(http.StatusOK, ValidateTokenResponse{Valid: valid})
}
