package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kidsense/sensory-assessment-api/internal/models"
	"github.com/kidsense/sensory-assessment-api/internal/service"
	appErrors "github.com/kidsense/sensory-assessment-api/pkg/errors"
	"github.com/kidsense/sensory-assessment-api/pkg/response"
)

type userService interface {
	Create(ctx context.Context, req service.CreateUserRequest) (*models.User, error)
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
}

// UserHandler exposes teacher-account endpoints.
type UserHandler struct {
	users userService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users userService) *UserHandler {
	return &UserHandler{users: users}
}

// Create godoc
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 200 {object} models.User
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// GetByFirebaseUID godoc
// @Summary Get user by firebase UID
// @Tags Users
// @Produce json
// @Param firebaseUid path string true "Firebase UID"
// @Success 200 {object} models.User
// @Router /users/firebase/{firebaseUid} [get]
func (h *UserHandler) GetByFirebaseUID(c *gin.Context) {
	user, err := h.users.GetByFirebaseUID(c.Request.Context(), c.Param("firebaseUid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}
