package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/models"
	"operationaltracker/internal/pagination"
	"operationaltracker/internal/services"
)

// UserHandler handles user management requests.
type UserHandler struct {
	userService services.UserServicer
	audit       services.AuditServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer, audit services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, audit: audit}
}

// CreateUserRequest represents the admin user-creation payload.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"max=100"`
	Role     string `json:"role" binding:"omitempty,user_role"`
}

// UpdateUserRequest represents a partial user update payload.
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Role     *string `json:"role" binding:"omitempty,user_role"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
}

// ListUsers returns all users (admin only).
// @Summary     List users
// @Description Get a paginated list of all users
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.User] "Paginated users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUser returns one user by ID.
// @Summary     Get user by ID
// @Description Get a single user's public profile
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]interface{} "User profile"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// CreateUser creates a user (admin only).
// @Summary     Create user
// @Description Create a user with an explicit role
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateUserRequest true "User details"
// @Success     201 {object} map[string]interface{} "Created user"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate username/email"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Password, req.Email, req.FullName, models.Role(req.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionCreate, models.AuditEntityUser, user.ID, map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	})

	c.JSON(http.StatusCreated, gin.H{"user": userResponse(user)})
}

// UpdateUser partially updates a user. Non-admins may only update
// themselves; role changes require admin.
// @Summary     Update user
// @Description Partially update a user; non-admins may only update themselves
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "User ID"
// @Param       request body UpdateUserRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the user being updated"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	params := services.UpdateUserParams{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		params.Role = &role
	}

	user, err := h.userService.UpdateUser(identity.ID, identity.Role, id, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]interface{}{}
	if req.Email != nil {
		changes["email"] = *req.Email
	}
	if req.FullName != nil {
		changes["full_name"] = *req.FullName
	}
	if req.Role != nil {
		changes["role"] = *req.Role
	}
	if req.Password != nil {
		changes["password"] = "changed"
	}
	h.audit.Log(identity.ID, models.AuditActionUpdate, models.AuditEntityUser, id, changes)

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// DeactivateUser soft-deletes a user (admin only).
// @Summary     Deactivate user
// @Description Block a user's future logins without deleting their records
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]interface{} "Deactivated user"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/deactivate [patch]
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.SetUserActive(id, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionDeactivate, models.AuditEntityUser, id, nil)

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// ActivateUser reactivates a deactivated user (admin only).
// @Summary     Activate user
// @Description Restore a deactivated user's ability to log in
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]interface{} "Activated user"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Insufficient permissions"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/activate [patch]
func (h *UserHandler) ActivateUser(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.SetUserActive(id, true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(identity.ID, models.AuditActionActivate, models.AuditEntityUser, id, nil)

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}
