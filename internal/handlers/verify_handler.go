package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"givestream/internal/services"
)

type VerifyHandler struct {
	OTP services.OTPService
}

func NewVerifyHandler(otp services.OTPService) *VerifyHandler {
	return &VerifyHandler{OTP: otp}
}

// @Summary      Confirm email with a verification code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        confirm  body      object  true  "email + code"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /register/confirm [post]
func (h *VerifyHandler) ConfirmUser(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.OTP.Verify(req.Email, req.Code); err != nil {
		switch err {
		case services.ErrCodeInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired code, request a new one"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// @Summary      Resend the verification code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        resend  body      object  true  "email"
// @Success      200     {object}  map[string]string
// @Failure      429     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /register/resend [post]
func (h *VerifyHandler) ResendUser(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.OTP.Issue(req.Email); err != nil {
		switch err {
		case services.ErrRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "please wait 60 seconds before requesting another code"})
		case services.ErrDeliveryFailed:
			// the undelivered code was discarded; a retry is not throttled
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not deliver the code, please try again"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Code sent"})
}
