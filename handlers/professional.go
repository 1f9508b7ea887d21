package handlers

import (
	"errors"
	"net/http"

	"consultorio/services/professional"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfessionalHandler serves account registration, login and session endpoints.
type ProfessionalHandler struct {
	Service professional.ProfessionalService
}

func NewProfessionalHandler(svc professional.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{Service: svc}
}

// RegisterHandler handles POST /api/professionals/register.
func (h *ProfessionalHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input professional.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	prof, err := h.Service.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, professional.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with that email already exists"})
			return
		}
		logger.Error("Failed to register professional", zap.String("email", input.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, prof.PublicProfile())
}

// LoginHandler handles POST /api/professionals/login.
func (h *ProfessionalHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, professional.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error("Failed to authenticate professional", zap.String("email", input.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// LogoutHandler handles POST /api/professionals/logout.
func (h *ProfessionalHandler) LogoutHandler(c *gin.Context) {
	id, ok := professionalID(c)
	if !ok {
		return
	}

	if err := h.Service.RevokeToken(c.Request.Context(), id); err != nil {
		utils.GetLogger().Error("Failed to revoke session", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session revoked"})
}

// UpdateFCMTokenHandler handles PUT /api/professionals/fcm-token.
func (h *ProfessionalHandler) UpdateFCMTokenHandler(c *gin.Context) {
	id, ok := professionalID(c)
	if !ok {
		return
	}

	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.UpdateFCMToken(c.Request.Context(), id, input.Token); err != nil {
		utils.GetLogger().Error("Failed to update FCM token", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}
