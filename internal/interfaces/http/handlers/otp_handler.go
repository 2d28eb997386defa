package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
	"payease.backend/internal/interfaces/http/response"
	"payease.backend/internal/usecases"
)

// OTPHandler handles OTP endpoints
type OTPHandler struct {
	otpUsecase *usecases.OTPUsecase
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otpUsecase *usecases.OTPUsecase) *OTPHandler {
	return &OTPHandler{otpUsecase: otpUsecase}
}

// Send issues a fresh one-time code
// POST /api/v1/otp/send
func (h *OTPHandler) Send(c *gin.Context) {
	var input entities.OTPSendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	if err := h.otpUsecase.Send(c.Request.Context(), input.Type, input.Value); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "OTP sent to your " + string(input.Type),
	})
}

// Verify checks a submitted one-time code
// POST /api/v1/otp/verify
func (h *OTPHandler) Verify(c *gin.Context) {
	var input entities.OTPVerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	if err := h.otpUsecase.Verify(c.Request.Context(), input.Type, input.Value, input.Code); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verified": true})
}

// Status reports whether a destination holds a verified challenge
// GET /api/v1/otp/status?type=&value=
func (h *OTPHandler) Status(c *gin.Context) {
	channel := entities.OTPChannel(c.Query("type"))
	value := c.Query("value")
	if !channel.Valid() || value == "" {
		response.Error(c, domainerrors.Validation("type and value are required"))
		return
	}

	verified, err := h.otpUsecase.IsVerified(c.Request.Context(), channel, value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verified": verified})
}
