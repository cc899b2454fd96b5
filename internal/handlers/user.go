package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"presentation-service/internal/auth"
	"presentation-service/internal/mailer"
	"presentation-service/internal/models"
	"presentation-service/internal/repositories"
	"presentation-service/internal/telemetry"
)

// UserHandler manages profile and admin user endpoints.
type UserHandler struct {
	userRepo     repositories.UserRepository
	mailer       mailer.Mailer
	audit        *telemetry.AuditEmitter
	clientDomain string
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(userRepo repositories.UserRepository, mail mailer.Mailer, audit *telemetry.AuditEmitter, clientDomain string) *UserHandler {
	return &UserHandler{userRepo: userRepo, mailer: mail, audit: audit, clientDomain: clientDomain}
}

// Current handles GET /api/user/current.
func (h *UserHandler) Current(c *gin.Context) {
	user, err := h.userRepo.GetUserByID(c.Request.Context(), c.GetInt("userID"))
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, models.Err("User not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load user"))
		return
	}
	c.JSON(http.StatusOK, models.OK("Get user successfully", user))
}

// Update handles PUT /api/user/update. Changing the password requires the
// current one.
func (h *UserHandler) Update(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Password    string `json:"password" binding:"required"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	userID := c.GetInt("userID")
	user, err := h.userRepo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.Err("User not found"))
		return
	}

	if !auth.ComparePassword(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, models.Err("Invalid password"))
		return
	}

	var newHash string
	if req.NewPassword != "" {
		if newHash, err = auth.HashPassword(req.NewPassword); err != nil {
			c.JSON(http.StatusInternalServerError, models.Err("could not update user"))
			return
		}
	}

	updated, err := h.userRepo.UpdateProfile(c.Request.Context(), userID, req.Name, newHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not update user"))
		return
	}

	h.emitAudit(c, "INFO", "Profile updated")
	c.JSON(http.StatusOK, models.OK("Update user successfully", updated))
}

// ListByIDs handles POST /api/user/list.
func (h *UserHandler) ListByIDs(c *gin.Context) {
	var req struct {
		IDs []int `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	users, err := h.userRepo.ListUsersByIDs(c.Request.Context(), lo.Uniq(req.IDs))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load users"))
		return
	}

	public := lo.Map(users, func(u models.User, _ int) models.PublicUser {
		return models.PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
	})
	c.JSON(http.StatusOK, models.OK("Get user list successfully", public))
}

// SendVerification handles POST /api/user/send-verification.
func (h *UserHandler) SendVerification(c *gin.Context) {
	user, err := h.userRepo.GetUserByID(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.Err("Can not send verification email"))
		return
	}

	link := fmt.Sprintf("%s/active?userId=%d&activeCode=%s", h.clientDomain, user.ID, user.ActiveCode)
	body := fmt.Sprintf(`<p>Please click this link to verify your account: <a href="%s">%s</a></p>`, link, link)
	if err := h.mailer.Send(c.Request.Context(), user.Email, "Verify your account", body); err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("Can not send verification email"))
		return
	}

	c.JSON(http.StatusOK, models.OK("The verification email has been sent", nil))
}

// AdminList handles GET /api/admin/users.
func (h *UserHandler) AdminList(c *gin.Context) {
	users, err := h.userRepo.SearchUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not load users"))
		return
	}
	c.JSON(http.StatusOK, models.OK("Get user list successfully", users))
}

// AdminUpdate handles PUT /api/admin/users/:user_id.
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var upd models.AdminUserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	err := h.userRepo.AdminUpdateUser(c.Request.Context(), userID, upd)
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, models.Err("User not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not update user"))
		return
	}

	h.emitAudit(c, "INFO", "User updated by admin")
	c.JSON(http.StatusOK, models.OK("User updated successfully", nil))
}

// AdminDelete handles DELETE /api/admin/users/:user_id.
func (h *UserHandler) AdminDelete(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	err := h.userRepo.DeleteUser(c.Request.Context(), userID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, models.Err("User not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not delete user"))
		return
	}

	h.emitAudit(c, "INFO", "User deleted by admin")
	c.JSON(http.StatusOK, models.OK("User deleted successfully", nil))
}

// AdminResetPassword handles POST /api/admin/users/:user_id/reset-password.
// The generated password is returned once in the response.
func (h *UserHandler) AdminResetPassword(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	newPassword := uuid.NewString()[:8]
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not reset password"))
		return
	}

	err = h.userRepo.SetPassword(c.Request.Context(), userID, hash)
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, models.Err("User not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not reset password"))
		return
	}

	h.emitAudit(c, "INFO", "User password reset by admin")
	c.JSON(http.StatusOK, models.OK("User reset password successfully", gin.H{"new_password": newPassword}))
}

func (h *UserHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}

func parseUserID(c *gin.Context) (int, bool) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Err("invalid user id"))
		return 0, false
	}
	return userID, true
}
