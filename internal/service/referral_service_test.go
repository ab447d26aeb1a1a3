package service

import (
	"testing"

	"collegemigration/config"
	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/repository"
	"collegemigration/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testCommission = config.CommissionConfig{
	MemberRateCents: 500000,
	AgentRateCents:  1000000,
}

type referralFixture struct {
	db        *gorm.DB
	referrals *repository.ReferralRepository
	wallets   *repository.WalletRepository
	svc       *ReferralService
	notifier  *fakeNotifier
}

func newReferralFixture(t *testing.T) *referralFixture {
	db := testutil.NewDB(t)
	referrals := repository.NewReferralRepository(db)
	wallets := repository.NewWalletRepository(db)
	notifier := &fakeNotifier{}
	return &referralFixture{
		db:        db,
		referrals: referrals,
		wallets:   wallets,
		svc:       NewReferralService(db, referrals, wallets, testCommission, notifier),
		notifier:  notifier,
	}
}

func (f *referralFixture) seedReferral(t *testing.T, referrerID uint, referrerType string, memberID uint) *models.Referral {
	t.Helper()
	ref := &models.Referral{
		ReferrerID:   referrerID,
		ReferrerType: referrerType,
		MemberID:     memberID,
		Status:       domain.ReferralStatusUnpaid,
	}
	require.NoError(t, f.referrals.Create(ref))
	return ref
}

func TestSettleReferralCreditsCommission(t *testing.T) {
	f := newReferralFixture(t)
	ref := f.seedReferral(t, 10, domain.UserTypeAgent, 20)

	got, err := f.svc.SettleReferral(ref.ID, domain.ReferralStatusPaid, 10, domain.UserTypeAgent)
	require.NoError(t, err)
	assert.Equal(t, domain.ReferralStatusPaid, got.Status)
	require.NotNil(t, got.StatusDate)

	w, err := f.wallets.GetByUser(10, domain.UserTypeAgent)
	require.NoError(t, err)
	assert.Equal(t, testCommission.AgentRateCents, w.BalanceCents, "agent rate applied")

	var tx models.WalletTransaction
	require.NoError(t, f.db.Where("wallet_id = ?", w.ID).First(&tx).Error)
	assert.Equal(t, domain.WalletTxTypeCommission, tx.Type)
	assert.Equal(t, domain.WalletTxStatusCompleted, tx.Status)
	assert.Equal(t, testCommission.AgentRateCents, tx.AmountCents)

	require.Len(t, f.notifier.commissions, 1)
}

func TestSettleReferralMemberRate(t *testing.T) {
	f := newReferralFixture(t)
	ref := f.seedReferral(t, 11, domain.UserTypeMember, 21)

	_, err := f.svc.SettleReferral(ref.ID, domain.ReferralStatusPaid, 11, domain.UserTypeMember)
	require.NoError(t, err)

	w, err := f.wallets.GetByUser(11, domain.UserTypeMember)
	require.NoError(t, err)
	assert.Equal(t, testCommission.MemberRateCents, w.BalanceCents)
}

func TestSettleReferralDoublePayGuard(t *testing.T) {
	f := newReferralFixture(t)
	ref := f.seedReferral(t, 10, domain.UserTypeAgent, 20)

	_, err := f.svc.SettleReferral(ref.ID, domain.ReferralStatusPaid, 10, domain.UserTypeAgent)
	require.NoError(t, err)

	_, err = f.svc.SettleReferral(ref.ID, domain.ReferralStatusPaid, 10, domain.UserTypeAgent)
	require.ErrorIs(t, err, domain.ErrAlreadyInStatus)

	w, err := f.wallets.GetByUser(10, domain.UserTypeAgent)
	require.NoError(t, err)
	assert.Equal(t, testCommission.AgentRateCents, w.BalanceCents, "balance unchanged after the guard fires")
}

func TestSettleReferralAuthorization(t *testing.T) {
	f := newReferralFixture(t)
	ref := f.seedReferral(t, 10, domain.UserTypeAgent, 20)

	_, err := f.svc.SettleReferral(ref.ID, domain.ReferralStatusPaid, 99, domain.UserTypeAgent)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Right user, wrong type.
	_, err = f.svc.SettleReferral(ref.ID, domain.ReferralStatusPaid, 10, domain.UserTypeMember)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaidReferralCannotBeReverted(t *testing.T) {
	f := newReferralFixture(t)
	ref := f.seedReferral(t, 10, domain.UserTypeAgent, 20)

	_, err := f.svc.SettleReferral(ref.ID, domain.ReferralStatusPaid, 10, domain.UserTypeAgent)
	require.NoError(t, err)

	_, err = f.svc.SettleReferral(ref.ID, domain.ReferralStatusUnpaid, 10, domain.UserTypeAgent)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSettleReferralInvalidStatus(t *testing.T) {
	f := newReferralFixture(t)
	ref := f.seedReferral(t, 10, domain.UserTypeAgent, 20)

	_, err := f.svc.SettleReferral(ref.ID, "SETTLED", 10, domain.UserTypeAgent)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSettleForMember(t *testing.T) {
	f := newReferralFixture(t)
	f.seedReferral(t, 10, domain.UserTypeAgent, 20)

	require.NoError(t, f.svc.SettleForMember(20))

	w, err := f.wallets.GetByUser(10, domain.UserTypeAgent)
	require.NoError(t, err)
	assert.Equal(t, testCommission.AgentRateCents, w.BalanceCents)

	// Second settlement for the same member is a no-op.
	require.NoError(t, f.svc.SettleForMember(20))
	w, err = f.wallets.GetByUser(10, domain.UserTypeAgent)
	require.NoError(t, err)
	assert.Equal(t, testCommission.AgentRateCents, w.BalanceCents)
}

func TestSettleForMemberWithoutReferral(t *testing.T) {
	f := newReferralFixture(t)
	require.NoError(t, f.svc.SettleForMember(404))
}
