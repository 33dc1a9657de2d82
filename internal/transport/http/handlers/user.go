package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/transport/http/middleware"
	"github.com/petukhovtd/account-service/internal/usecase"
)

// UserHandler exposes the account REST endpoints.
type UserHandler struct {
	users *usecase.UserService
	log   *zap.Logger
}

// NewUserHandler constructs a user handler.
func NewUserHandler(users *usecase.UserService, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{users: users, log: log}
}

// RegisterRoutes binds account endpoints. Routes addressing a concrete user
// id go through Basic authentication.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	r.POST("", h.Create)
	r.GET("", h.List)

	authed := r.Group("", auth)
	authed.GET("/:user_id", h.Get)
	authed.PUT("/:user_id", h.ReplaceInfo)
	authed.PATCH("/:user_id", h.AmendInfo)
	authed.DELETE("/:user_id", h.Delete)
	authed.PUT("/:user_id/change_username", h.ChangeUsername)
	authed.PUT("/:user_id/change_password", h.ChangePassword)
}

// Create registers a new account. Username and password are validated
// independently so the client sees every field problem at once.
func (h *UserHandler) Create(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	var errs []*domain.Error

	username, err := domain.ExtractUsername(body)
	if err != nil {
		errs = append(errs, err)
	}

	password, err := domain.ExtractPassword(body)
	if err != nil {
		errs = append(errs, err)
	}

	if respondErrors(c, http.StatusBadRequest, errs) {
		return
	}

	user, regErr := h.users.Register(username, password)
	if regErr != nil {
		if errors.Is(regErr, usecase.ErrUserAlreadyExists) {
			respondError(c, http.StatusConflict,
				domain.NewError(domain.CodeUserAlreadyExist, domain.Arg{Key: domain.KeyUsername, Value: username}))
			return
		}
		c.Error(regErr) //nolint:errcheck
		c.Status(http.StatusInternalServerError)
		return
	}

	h.log.Info("user created",
		zap.Uint64("user_id", uint64(user.ID())),
		zap.String("username", user.Username()),
	)

	c.JSON(http.StatusCreated, CreateUserResponse{UserID: uint64(user.ID())})
}

// List returns an ordered-by-id window over the accounts.
func (h *UserHandler) List(c *gin.Context) {
	var errs []*domain.Error
	var params usecase.ListParams

	if raw, present := c.GetQuery("offset"); present {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs = append(errs, domain.NewError(domain.CodeConvertParameterFailed, domain.Arg{Key: "key", Value: "offset"}))
		} else {
			params.Offset = &offset
		}
	}

	if raw, present := c.GetQuery("limit"); present {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs = append(errs, domain.NewError(domain.CodeConvertParameterFailed, domain.Arg{Key: "key", Value: "limit"}))
		} else {
			params.Limit = &limit
		}
	}

	if respondErrors(c, http.StatusBadRequest, errs) {
		return
	}

	page := h.users.List(params)

	resp := ListUsersResponse{
		Users:  make([]UserSummary, 0, len(page.Users)),
		Size:   page.Size,
		Total:  page.Total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}
	for _, user := range page.Users {
		resp.Users = append(resp.Users, newUserSummary(user))
	}

	h.log.Debug("user list", zap.Uint64("size", resp.Size), zap.Uint64("total", resp.Total))

	c.JSON(http.StatusOK, resp)
}

// Get returns the full representation of the authenticated account.
func (h *UserHandler) Get(c *gin.Context) {
	user, ok := h.pathUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, newUserRepresentation(user))
}

// ReplaceInfo handles PUT: both profile fields are required and the info is
// replaced wholesale.
func (h *UserHandler) ReplaceInfo(c *gin.Context) {
	user, ok := h.pathUser(c)
	if !ok {
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	var info domain.Info
	var errs []*domain.Error

	firstName, err := domain.GetString(domain.KeyFirstName, body)
	if err != nil {
		errs = append(errs, err)
	} else {
		info.FirstName = firstName
	}

	lastName, err := domain.GetString(domain.KeyLastName, body)
	if err != nil {
		errs = append(errs, err)
	} else {
		info.LastName = lastName
	}

	if respondErrors(c, http.StatusBadRequest, errs) {
		return
	}

	if _, setErr := h.users.SetInfo(user, info); setErr != nil {
		c.Error(setErr) //nolint:errcheck
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// AmendInfo handles PATCH: present fields are merged into the current info;
// a body carrying neither field is rejected.
func (h *UserHandler) AmendInfo(c *gin.Context) {
	user, ok := h.pathUser(c)
	if !ok {
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	info := user.Info()
	var errs []*domain.Error
	haveChange := false

	if firstName, err := domain.GetString(domain.KeyFirstName, body); err == nil {
		info.FirstName = firstName
		haveChange = true
	} else if err.Code != domain.CodeKeyNotFound {
		errs = append(errs, err)
	}

	if lastName, err := domain.GetString(domain.KeyLastName, body); err == nil {
		info.LastName = lastName
		haveChange = true
	} else if err.Code != domain.CodeKeyNotFound {
		errs = append(errs, err)
	}

	if !haveChange && len(errs) == 0 {
		errs = append(errs, domain.NewError(domain.CodeKeyNotFound))
	}

	if respondErrors(c, http.StatusBadRequest, errs) {
		return
	}

	updated, setErr := h.users.SetInfo(user, info)
	if setErr != nil {
		c.Error(setErr) //nolint:errcheck
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, newUserRepresentation(updated))
}

// Delete removes the authenticated account and its session.
func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := h.pathUser(c)
	if !ok {
		return
	}

	h.users.Delete(user)

	h.log.Info("user deleted", zap.Uint64("user_id", uint64(user.ID())))

	c.Status(http.StatusNoContent)
}

// ChangeUsername renames the authenticated account.
func (h *UserHandler) ChangeUsername(c *gin.Context) {
	user, ok := h.pathUser(c)
	if !ok {
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	username, err := domain.ExtractUsername(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	renamed, renameErr := h.users.Rename(user, username)
	if renameErr != nil {
		if errors.Is(renameErr, usecase.ErrUserAlreadyExists) {
			respondError(c, http.StatusConflict,
				domain.NewError(domain.CodeUserAlreadyExist, domain.Arg{Key: domain.KeyUsername, Value: username}))
			return
		}
		c.Error(renameErr) //nolint:errcheck
		c.Status(http.StatusInternalServerError)
		return
	}

	h.log.Info("username changed",
		zap.Uint64("user_id", uint64(renamed.ID())),
		zap.String("username", renamed.Username()),
	)

	c.JSON(http.StatusOK, newUserSummary(renamed))
}

// ChangePassword replaces the credential of the authenticated account.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, ok := h.pathUser(c)
	if !ok {
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	password, err := domain.ExtractPassword(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if _, changeErr := h.users.ChangePassword(user, password); changeErr != nil {
		c.Error(changeErr) //nolint:errcheck
		c.Status(http.StatusInternalServerError)
		return
	}

	h.log.Info("password changed", zap.Uint64("user_id", uint64(user.ID())))

	c.Status(http.StatusNoContent)
}

// pathUser parses the :user_id parameter and asserts it matches the
// authenticated user. A mismatch is its own error, not folded into 404.
func (h *UserHandler) pathUser(c *gin.Context) (domain.User, bool) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest,
			domain.NewError(domain.CodeConvertParameterFailed, domain.Arg{Key: "key", Value: domain.KeyUserID}))
		return domain.User{}, false
	}

	user, ok := middleware.AuthorizedUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized,
			domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "authorization required"}))
		return domain.User{}, false
	}

	if user.ID() != domain.UserID(id) {
		respondError(c, http.StatusBadRequest,
			domain.NewError(domain.CodeInvalidUserID, domain.Arg{Key: "why", Value: "authorization user and parameter not equal"}))
		return domain.User{}, false
	}

	return user, true
}
