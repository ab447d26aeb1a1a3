package handler

import (
	"net/http"

	"collegemigration/internal/middleware"
	"collegemigration/internal/repository"
	"collegemigration/internal/service"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	withdrawalSvc  *service.WithdrawalService
	withdrawalRepo *repository.WithdrawalRepository
}

func NewWithdrawalHandler(withdrawalSvc *service.WithdrawalService, withdrawalRepo *repository.WithdrawalRepository) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalSvc: withdrawalSvc, withdrawalRepo: withdrawalRepo}
}

// Create handles POST /me/withdrawals.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req struct {
		AccountName   string `json:"account_name" binding:"required"`
		AccountNumber string `json:"account_number" binding:"required"`
		BankName      string `json:"bank_name" binding:"required"`
		AmountCents   int64  `json:"amount_cents" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.withdrawalSvc.Request(service.WithdrawalRequest{
		UserID:        middleware.GetUserID(c),
		UserType:      middleware.GetUserType(c),
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		AmountCents:   req.AmountCents,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// ListMine handles GET /me/withdrawals.
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.withdrawalRepo.ListByUser(middleware.GetUserID(c), middleware.GetUserType(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}
