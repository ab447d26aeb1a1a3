package handler

import (
	"net/http"

	"collegemigration/internal/middleware"
	"collegemigration/internal/repository"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletRepo *repository.WalletRepository
}

func NewWalletHandler(walletRepo *repository.WalletRepository) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo}
}

// GetBalance returns the caller's wallet, creating it on first read.
// Always read straight from the store; balances are never cached.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	userType := middleware.GetUserType(c)
	w, err := h.walletRepo.GetOrCreate(userID, userType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance_cents":         w.BalanceCents,
		"total_withdrawn_cents": w.TotalWithdrawnCents,
		"currency":              w.Currency,
	})
}

// GetTransactions returns the caller's wallet history, paginated.
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	userType := middleware.GetUserType(c)
	w, err := h.walletRepo.GetOrCreate(userID, userType)
	if err != nil {
		respondError(c, err)
		return
	}
	page, limit := parsePagination(c)
	list, total, err := h.walletRepo.ListTransactions(w.ID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}
