package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/tanujaya/user-directory/internal/domain"
	"github.com/tanujaya/user-directory/internal/http/response"
	"github.com/tanujaya/user-directory/internal/platform/apierr"
	"github.com/tanujaya/user-directory/internal/platform/apperrors"
	"github.com/tanujaya/user-directory/internal/services"
)

type UserHandler struct {
	directory services.DirectoryService
}

func NewUserHandler(directory services.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// GET /users?page=1&search=
func (uh *UserHandler) List(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}
	search := c.Query("search")

	users, pagination, err := uh.directory.List(c.Request.Context(), page, search)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", errors.New("failed to fetch users"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

// GET /users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := uh.directory.Get(c.Request.Context(), id)
	if errors.Is(err, apperrors.ErrNotFound) {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("user not found"))
		return
	}
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "get_failed", errors.New("failed to fetch user"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /users
// body: the seven user+address fields.
func (uh *UserHandler) Create(c *gin.Context) {
	var in types.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := uh.directory.Create(c.Request.Context(), in)
	if respondServiceError(c, err, "create_failed") {
		return
	}
	c.JSON(http.StatusCreated, user)
}

// PUT /users/:id
func (uh *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in types.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	err := uh.directory.Update(c.Request.Context(), id, in)
	if errors.Is(err, apperrors.ErrNotFound) {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("user not found"))
		return
	}
	if respondServiceError(c, err, "update_failed") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DELETE /users/:id — idempotent; deleting a missing id still succeeds.
func (uh *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := uh.directory.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "delete_failed", errors.New("failed to delete user"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("id must be an integer"))
		return 0, false
	}
	return id, true
}

// respondServiceError maps a mutation error; reports whether it responded.
func respondServiceError(c *gin.Context, err error, genericCode string) bool {
	if err == nil {
		return false
	}
	var ae *apierr.Error
	if errors.As(err, &ae) {
		if len(ae.Fields) > 0 {
			response.RespondFieldErrors(c, ae.Status, ae.Code, ae.Fields)
		} else {
			response.RespondError(c, ae.Status, ae.Code, ae)
		}
		return true
	}
	response.RespondError(c, http.StatusInternalServerError, genericCode, errors.New("request failed"))
	return true
}
