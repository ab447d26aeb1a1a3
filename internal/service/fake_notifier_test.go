package service

import (
	"sync"

	"collegemigration/internal/models"
)

// fakeNotifier records emitted events for assertions. Safe for use from
// multiple goroutines.
type fakeNotifier struct {
	mu                 sync.Mutex
	withdrawalRequests []*models.Withdrawal
	resolved           []*models.Withdrawal
	commissions        []int64
	payments           []string
}

func (f *fakeNotifier) NotifyWithdrawalRequested(w *models.Withdrawal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.withdrawalRequests = append(f.withdrawalRequests, w)
}

func (f *fakeNotifier) NotifyWithdrawalResolved(w *models.Withdrawal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolved = append(f.resolved, w)
}

func (f *fakeNotifier) NotifyCommissionEarned(referrerID uint, referrerType string, amountCents int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commissions = append(f.commissions, amountCents)
}

func (f *fakeNotifier) NotifyPaymentConfirmed(memberID uint, amountCents int64, reference string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, reference)
}
