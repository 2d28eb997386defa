package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
	"payease.backend/internal/interfaces/http/response"
	"payease.backend/internal/usecases"
)

// VerificationHandler handles merchant verification endpoints
type VerificationHandler struct {
	verificationUsecase *usecases.VerificationUsecase
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationUsecase *usecases.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{verificationUsecase: verificationUsecase}
}

// Signup handles merchant signup submission
// POST /api/v1/merchants/signup
func (h *VerificationHandler) Signup(c *gin.Context) {
	var data entities.MerchantSignupData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	resp, err := h.verificationUsecase.Submit(c.Request.Context(), &data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetStatus returns the full verification record
// GET /api/v1/merchants/:id/status
func (h *VerificationHandler) GetStatus(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	record, err := h.verificationUsecase.GetStatus(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, record)
}

// GetTrustScore returns the merchant's trust score
// GET /api/v1/merchants/:id/trust-score
func (h *VerificationHandler) GetTrustScore(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	score, err := h.verificationUsecase.GetTrustScore(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchantId": merchantID,
		"trustScore": score,
	})
}

// CanListProducts reports whether the merchant may list products
// GET /api/v1/merchants/:id/can-list-products
func (h *VerificationHandler) CanListProducts(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	allowed, err := h.verificationUsecase.CanListProducts(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchantId":      merchantID,
		"canListProducts": allowed,
	})
}

// VerifyPhone marks the merchant's phone OTP check as passed
// POST /api/v1/merchants/:id/verify-phone
func (h *VerificationHandler) VerifyPhone(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	record, err := h.verificationUsecase.MarkPhoneVerified(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchantId": record.MerchantID,
		"trustScore": record.TrustScore,
		"checks":     record.Checks,
	})
}

func parseMerchantID(c *gin.Context) (uuid.UUID, bool) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("invalid merchant id"))
		return uuid.Nil, false
	}
	return merchantID, true
}
