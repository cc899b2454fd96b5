package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"presentation-service/internal/auth"
	"presentation-service/internal/models"
	"presentation-service/internal/repositories"
	"presentation-service/internal/telemetry"
)

// AuthHandler manages registration, login and account activation.
type AuthHandler struct {
	userRepo repositories.UserRepository
	issuer   *auth.TokenIssuer
	audit    *telemetry.AuditEmitter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(userRepo repositories.UserRepository, issuer *auth.TokenIssuer, audit *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, issuer: issuer, audit: audit}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not create account"))
		return
	}

	user, err := h.userRepo.CreateUser(c.Request.Context(), req.Name, req.Email, hash, uuid.NewString())
	if errors.Is(err, repositories.ErrEmailTaken) {
		c.JSON(http.StatusBadRequest, models.Err("Email is used!"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("could not create account"))
		return
	}

	h.emitAudit(c, "INFO", "Account registered")
	c.JSON(http.StatusOK, models.OK("Register successfully", user))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	user, err := h.userRepo.GetUserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, models.Err("Invalid email or password"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("login failed"))
		return
	}

	if !auth.ComparePassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, models.Err("Invalid email or password"))
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("login failed"))
		return
	}

	h.emitAudit(c, "INFO", "User logged in")
	c.JSON(http.StatusOK, models.OK("Login successfully", gin.H{
		"user":         user,
		"access_token": token,
	}))
}

// Activate handles POST /api/auth/activate.
func (h *AuthHandler) Activate(c *gin.Context) {
	var req struct {
		UserID     int    `json:"user_id" binding:"required"`
		ActiveCode string `json:"active_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Err(err.Error()))
		return
	}

	err := h.userRepo.ActivateUser(c.Request.Context(), req.UserID, req.ActiveCode)
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusBadRequest, models.Err("invalid activation code"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Err("activation failed"))
		return
	}

	h.emitAudit(c, "INFO", "Account activated")
	c.JSON(http.StatusOK, models.OK("Account activated successfully", nil))
}

func (h *AuthHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
