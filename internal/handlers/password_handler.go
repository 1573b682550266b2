package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"givestream/internal/services"
)

type PasswordHandler struct {
	resets services.PasswordResetService
}

func NewPasswordHandler(resets services.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{resets: resets}
}

// @Summary      Request a password reset link
// @Description  Responds identically whether or not the email has an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      object  true  "email"
// @Success      200     {object}  map[string]interface{}
// @Router       /password/forgot [post]
func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// uniform response shape regardless of the internal branch taken
	_ = h.resets.RequestReset(req.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If an account exists for that address, a reset link has been sent.",
	})
}

// @Summary      Set a new password with a reset token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      object  true  "token + new password"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Router       /password/reset [post]
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.resets.ResetPassword(req.Token, req.NewPassword)
	if err != nil {
		switch err {
		case services.ErrTokenInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token, request a new reset link"})
		case services.ErrWeakPassword:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password reset failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "email": email})
}
