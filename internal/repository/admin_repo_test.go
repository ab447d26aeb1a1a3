package repository

import (
	"testing"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLedgerStats(t *testing.T) {
	db := testutil.NewDB(t)
	wallets := NewWalletRepository(db)
	repo := NewAdminRepository(db)

	member, err := wallets.GetOrCreate(1, domain.UserTypeMember)
	require.NoError(t, err)
	agent, err := wallets.GetOrCreate(2, domain.UserTypeAgent)
	require.NoError(t, err)
	_, err = wallets.Credit(member.ID, 500000, domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted, nil, "referral_1_member_3")
	require.NoError(t, err)
	_, err = wallets.Credit(agent.ID, 1000000, domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted, nil, "referral_2_member_4")
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Withdrawal{
		UserID: 1, UserType: domain.UserTypeMember, WalletID: member.ID,
		OrderID: "wd-1", AccountName: "Ada Obi", AccountNumber: "0123456789",
		BankName: "GTBank", AmountCents: 200000, Status: domain.WithdrawalStatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.Transaction{
		ApplicationID: 1, MemberID: 1, Reference: "cm-1", AmountCents: 750000,
		Provider: "paystack", Status: domain.PaymentStatusCompleted,
	}).Error)
	require.NoError(t, db.Create(&models.Referral{
		ReferrerID: 2, ReferrerType: domain.UserTypeAgent, MemberID: 4,
		Status: domain.ReferralStatusPaid,
	}).Error)

	stats, err := repo.GetLedgerStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalWallets)
	assert.Equal(t, int64(1500000), stats.TotalBalanceCents)
	assert.Equal(t, int64(1), stats.PendingWithdrawals)
	assert.Equal(t, int64(200000), stats.PendingWithdrawalCents)
	assert.Equal(t, int64(1), stats.CompletedPayments)
	assert.Equal(t, int64(750000), stats.CompletedPaymentCents)
	assert.Equal(t, int64(1), stats.PaidReferrals)
	assert.Equal(t, int64(1500000), stats.CommissionCreditedCents)
}

func TestGetLedgerStatsSurfacesQueryErrors(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAdminRepository(db)

	require.NoError(t, db.Migrator().DropTable(&models.Wallet{}))

	stats, err := repo.GetLedgerStats()
	require.Error(t, err)
	assert.Nil(t, stats)
}
