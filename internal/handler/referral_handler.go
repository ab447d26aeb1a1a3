package handler

import (
	"net/http"
	"strconv"
	"strings"

	"collegemigration/internal/middleware"
	"collegemigration/internal/repository"
	"collegemigration/internal/service"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	referralSvc  *service.ReferralService
	referralRepo *repository.ReferralRepository
}

func NewReferralHandler(referralSvc *service.ReferralService, referralRepo *repository.ReferralRepository) *ReferralHandler {
	return &ReferralHandler{referralSvc: referralSvc, referralRepo: referralRepo}
}

// Settle handles POST /referrals/:id/settle — the referrer marks their
// referral paid, which credits their commission.
func (h *ReferralHandler) Settle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, err := h.referralSvc.SettleReferral(uint(id), strings.ToUpper(req.Status),
		middleware.GetUserID(c), middleware.GetUserType(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

// ListMine handles GET /me/referrals.
func (h *ReferralHandler) ListMine(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.referralRepo.ListByReferrer(middleware.GetUserID(c), middleware.GetUserType(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}
