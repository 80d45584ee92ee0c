package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/dto"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/service"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/response"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
)

// UserHandler handles authentication and user administration
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles POST /user/register
func (h *UserHandler) Register(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.Register")
	defer span.End()

	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	token, err := h.userService.Register(ctx, &req)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(token))
}

// Auth handles POST /user/auth
func (h *UserHandler) Auth(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.Auth")
	defer span.End()

	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	token, err := h.userService.Login(ctx, &req)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(token))
}

// Create handles POST /user
func (h *UserHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.Create")
	defer span.End()

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	user, err := h.userService.CreateUser(ctx, &req)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.ToUserResponse(user)))
}

// Update handles PATCH /user/:id
func (h *UserHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.Update")
	defer span.End()

	id, ok := userID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	user, err := h.userService.UpdateUser(ctx, id, &req)
	if err != nil {
		handleError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToUserResponse(user)))
}

// Delete handles DELETE /user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.Delete")
	defer span.End()

	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(ctx, id); err != nil {
		handleError(c, span, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func userID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("user id must be a valid UUID"))
		return "", false
	}
	return id, true
}
