package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"collegemigration/internal/middleware"
	"collegemigration/internal/repository"
	"collegemigration/internal/service"
	"collegemigration/pkg/cache"

	"github.com/gin-gonic/gin"
)

const dashboardCacheKey = "admin:ledger_stats"

type AdminHandler struct {
	adminRepo      *repository.AdminRepository
	walletRepo     *repository.WalletRepository
	withdrawalRepo *repository.WithdrawalRepository
	withdrawalSvc  *service.WithdrawalService
	cache          *cache.Client
}

func NewAdminHandler(
	adminRepo *repository.AdminRepository,
	walletRepo *repository.WalletRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	withdrawalSvc *service.WithdrawalService,
	cacheClient *cache.Client,
) *AdminHandler {
	return &AdminHandler{
		adminRepo:      adminRepo,
		walletRepo:     walletRepo,
		withdrawalRepo: withdrawalRepo,
		withdrawalSvc:  withdrawalSvc,
		cache:          cacheClient,
	}
}

// Dashboard handles GET /admin/dashboard. Stats are cached briefly when
// Redis is up; wallet balances themselves are never cached.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	if h.cache.Available() {
		if cached, ok := h.cache.Get(c.Request.Context(), dashboardCacheKey); ok {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}
	stats, err := h.adminRepo.GetLedgerStats()
	if err != nil {
		respondError(c, err)
		return
	}
	if h.cache.Available() {
		if b, err := json.Marshal(stats); err == nil {
			h.cache.Set(c.Request.Context(), dashboardCacheKey, string(b), 30*time.Second)
		}
	}
	c.JSON(http.StatusOK, stats)
}

// ListWithdrawals handles GET /admin/withdrawals with status, user type,
// date range and free-text filters.
func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.WithdrawalFilter{
		Status:   c.Query("status"),
		UserType: c.Query("user_type"),
		Search:   c.Query("search"),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			f.To = &end
		}
	}
	list, total, err := h.withdrawalRepo.List(f, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ApproveWithdrawal handles POST /admin/withdrawals/:id/approve.
func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		TransactionReference string `json:"transaction_reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.withdrawalSvc.Resolve(uint(id), service.WithdrawalDecision{
		AdminID:              middleware.GetUserID(c),
		Approve:              true,
		TransactionReference: req.TransactionReference,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), dashboardCacheKey)
	c.JSON(http.StatusOK, w)
}

// RejectWithdrawal handles POST /admin/withdrawals/:id/reject.
func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		RejectionReason string `json:"rejection_reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.withdrawalSvc.Resolve(uint(id), service.WithdrawalDecision{
		AdminID:         middleware.GetUserID(c),
		Approve:         false,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(c.Request.Context(), dashboardCacheKey)
	c.JSON(http.StatusOK, w)
}

// ListWallets handles GET /admin/wallets.
func (h *AdminHandler) ListWallets(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.walletRepo.ListWallets(c.Query("user_type"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}
