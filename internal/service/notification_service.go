package service

import (
	"fmt"
	"log"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/repository"
)

// Notifier is the notification collaborator the ledger talks to. Calls are
// best-effort: implementations log and swallow their own failures, and no
// ledger transaction ever waits on or rolls back because of one.
type Notifier interface {
	NotifyWithdrawalRequested(w *models.Withdrawal)
	NotifyWithdrawalResolved(w *models.Withdrawal)
	NotifyCommissionEarned(referrerID uint, referrerType string, amountCents int64)
	NotifyPaymentConfirmed(memberID uint, amountCents int64, reference string)
}

type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo}
}

func (s *NotificationService) Notify(userID uint, userType, title, message, priority, link string) {
	if priority == "" {
		priority = "NORMAL"
	}
	err := s.repo.Create(&models.Notification{
		UserID:   userID,
		UserType: userType,
		Title:    title,
		Message:  message,
		Priority: priority,
		Link:     link,
	})
	if err != nil {
		log.Printf("[Notify] failed for user %d (%s): %v", userID, userType, err)
	}
}

// NotifyAdmins fans a message out to every admin account.
func (s *NotificationService) NotifyAdmins(title, message, link string) {
	admins, err := s.userRepo.ListAdmins()
	if err != nil {
		log.Printf("[Notify] list admins: %v", err)
		return
	}
	for _, a := range admins {
		s.Notify(a.ID, domain.RoleAdmin, title, message, "HIGH", link)
	}
}

func (s *NotificationService) NotifyWithdrawalRequested(w *models.Withdrawal) {
	s.NotifyAdmins(
		"New withdrawal request",
		fmt.Sprintf("Withdrawal %s for %s (%s %s) awaits review.", w.OrderID, formatNaira(w.AmountCents), w.BankName, w.AccountNumber),
		fmt.Sprintf("/admin/withdrawals/%d", w.ID),
	)
}

func (s *NotificationService) NotifyWithdrawalResolved(w *models.Withdrawal) {
	title := "Withdrawal approved"
	msg := fmt.Sprintf("Your withdrawal of %s has been approved. Reference: %s", formatNaira(w.AmountCents), w.TransactionReference)
	if w.Status == domain.WithdrawalStatusRejected {
		title = "Withdrawal rejected"
		msg = fmt.Sprintf("Your withdrawal of %s was rejected: %s. The amount has been returned to your wallet.", formatNaira(w.AmountCents), w.RejectionReason)
	}
	s.Notify(w.UserID, w.UserType, title, msg, "HIGH", fmt.Sprintf("/withdrawals/%d", w.ID))
}

func (s *NotificationService) NotifyCommissionEarned(referrerID uint, referrerType string, amountCents int64) {
	s.Notify(referrerID, referrerType,
		"Referral commission earned",
		fmt.Sprintf("A referral commission of %s has been credited to your wallet.", formatNaira(amountCents)),
		"NORMAL", "/wallet")
}

func (s *NotificationService) NotifyPaymentConfirmed(memberID uint, amountCents int64, reference string) {
	s.Notify(memberID, domain.UserTypeMember,
		"Payment confirmed",
		fmt.Sprintf("Your application payment of %s was successful. Reference: %s", formatNaira(amountCents), reference),
		"NORMAL", "/applications")
}

func formatNaira(cents int64) string {
	return fmt.Sprintf("NGN %d.%02d", cents/100, cents%100)
}
