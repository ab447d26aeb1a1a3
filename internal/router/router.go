package router

import (
	"time"

	"collegemigration/config"
	"collegemigration/internal/handler"
	"collegemigration/internal/middleware"
	"collegemigration/internal/repository"
	"collegemigration/internal/service"
	"collegemigration/pkg/cache"
	"collegemigration/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, verifier payment.Verifier, cacheClient *cache.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, userRepo)
	referralSvc := service.NewReferralService(db, referralRepo, walletRepo, cfg.Commission, notifSvc)
	withdrawalSvc := service.NewWithdrawalService(db, walletRepo, withdrawalRepo, notifSvc)
	paymentSvc := service.NewPaymentService(db, txRepo, appRepo, referralSvc, verifier, notifSvc, cfg.Payment.VerifyTimeout)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	walletHandler := handler.NewWalletHandler(walletRepo)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalSvc, withdrawalRepo)
	referralHandler := handler.NewReferralHandler(referralSvc, referralRepo)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	webhookHandler := handler.NewPaymentWebhookHandler(paymentSvc, cfg)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	adminHandler := handler.NewAdminHandler(adminRepo, walletRepo, withdrawalRepo, withdrawalSvc, cacheClient)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/wallet", walletHandler.GetBalance)
			me.GET("/wallet/transactions", walletHandler.GetTransactions)
			me.POST("/withdrawals", withdrawalHandler.Create)
			me.GET("/withdrawals", withdrawalHandler.ListMine)
			me.GET("/referrals", referralHandler.ListMine)
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}

		api.POST("/referrals/:id/settle", authMw, referralHandler.Settle)
		api.POST("/payments/initiate", authMw, paymentHandler.Initiate)
		api.GET("/payments/verify/:reference", authMw, paymentHandler.Verify)
		api.POST("/webhooks/payment", webhookHandler.Handle)

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/wallets", adminHandler.ListWallets)
			admin.GET("/withdrawals", adminHandler.ListWithdrawals)
			admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
		}
	}

	return r
}
