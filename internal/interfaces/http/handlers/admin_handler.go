package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
	"payease.backend/internal/interfaces/http/response"
	"payease.backend/internal/usecases"
)

// AdminHandler handles admin review endpoints
type AdminHandler struct {
	adminUsecase        *usecases.AdminUsecase
	verificationUsecase *usecases.VerificationUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase, verificationUsecase *usecases.VerificationUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase:        adminUsecase,
		verificationUsecase: verificationUsecase,
	}
}

// ListPending returns applications awaiting review, newest first
// GET /api/v1/admin/merchants/pending
func (h *AdminHandler) ListPending(c *gin.Context) {
	records, err := h.verificationUsecase.ListPendingReview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchants": records,
		"total":     len(records),
	})
}

// Approve approves a pending application
// POST /api/v1/admin/merchants/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	var input entities.DecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	if err := h.adminUsecase.Approve(c.Request.Context(), merchantID, input.ReviewerID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchantId": merchantID,
		"status":     entities.VerificationStatusApproved,
	})
}

// Reject rejects a pending application with a reason
// POST /api/v1/admin/merchants/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	var input entities.DecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	if err := h.adminUsecase.Reject(c.Request.Context(), merchantID, input.Reason, input.ReviewerID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"merchantId": merchantID,
		"status":     entities.VerificationStatusRejected,
	})
}

// ListBlacklist returns all deny-list entries
// GET /api/v1/admin/blacklist
func (h *AdminHandler) ListBlacklist(c *gin.Context) {
	entries, err := h.adminUsecase.ListBlacklist(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// AddToBlacklist appends a deny-list entry
// POST /api/v1/admin/blacklist
func (h *AdminHandler) AddToBlacklist(c *gin.Context) {
	var input entities.BlacklistAddInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	entry, err := h.adminUsecase.AddToBlacklist(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entry)
}
