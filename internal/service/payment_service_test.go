package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/repository"
	"collegemigration/internal/testutil"
	"collegemigration/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeVerifier returns a scripted result (or error) and counts calls.
type fakeVerifier struct {
	result *payment.VerifyResult
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(ctx context.Context, reference string) (*payment.VerifyResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type paymentFixture struct {
	db       *gorm.DB
	txs      *repository.TransactionRepository
	apps     *repository.ApplicationRepository
	wallets  *repository.WalletRepository
	verifier *fakeVerifier
	notifier *fakeNotifier
	svc      *PaymentService
}

func newPaymentFixture(t *testing.T, verifier *fakeVerifier) *paymentFixture {
	db := testutil.NewDB(t)
	txs := repository.NewTransactionRepository(db)
	apps := repository.NewApplicationRepository(db)
	wallets := repository.NewWalletRepository(db)
	referrals := repository.NewReferralRepository(db)
	notifier := &fakeNotifier{}
	referralSvc := NewReferralService(db, referrals, wallets, testCommission, notifier)
	return &paymentFixture{
		db:       db,
		txs:      txs,
		apps:     apps,
		wallets:  wallets,
		verifier: verifier,
		notifier: notifier,
		svc:      NewPaymentService(db, txs, apps, referralSvc, verifier, notifier, 5*time.Second),
	}
}

func (f *paymentFixture) seedApplication(t *testing.T, memberID uint) *models.Application {
	t.Helper()
	app := &models.Application{MemberID: memberID, ProgramName: "MSc Data Science", SchoolName: "University of Lagos"}
	require.NoError(t, f.db.Create(app).Error)
	return app
}

func successResult(appID, memberID uint) *payment.VerifyResult {
	return &payment.VerifyResult{
		Success:        true,
		ProviderStatus: "success",
		AmountCents:    250000,
		Currency:       "NGN",
		CustomerEmail:  "member@example.com",
		ApplicationID:  appID,
		MemberID:       memberID,
	}
}

func TestVerifyAndSettleMarksPaid(t *testing.T) {
	verifier := &fakeVerifier{}
	f := newPaymentFixture(t, verifier)
	app := f.seedApplication(t, 20)
	verifier.result = successResult(app.ID, 20)

	tx, err := f.svc.Initiate(20, app.ID, 250000)
	require.NoError(t, err)

	result, err := f.svc.VerifyAndSettle(context.Background(), tx.Reference)
	require.NoError(t, err)
	assert.True(t, result.Settled)
	assert.False(t, result.AlreadySettled)
	assert.Equal(t, app.ID, result.ApplicationID)

	gotTx, err := f.txs.GetByReference(tx.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, gotTx.Status)
	require.NotNil(t, gotTx.CompletedAt)

	gotApp, err := f.apps.GetByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPaymentPaid, gotApp.PaymentStatus)

	require.Len(t, f.notifier.payments, 1)
}

func TestVerifyAndSettleIsIdempotent(t *testing.T) {
	verifier := &fakeVerifier{}
	f := newPaymentFixture(t, verifier)
	app := f.seedApplication(t, 20)
	verifier.result = successResult(app.ID, 20)

	// The member was referred; settlement pays the commission once.
	require.NoError(t, f.db.Create(&models.Referral{
		ReferrerID:   10,
		ReferrerType: domain.UserTypeAgent,
		MemberID:     20,
		Status:       domain.ReferralStatusUnpaid,
	}).Error)

	tx, err := f.svc.Initiate(20, app.ID, 250000)
	require.NoError(t, err)

	first, err := f.svc.VerifyAndSettle(context.Background(), tx.Reference)
	require.NoError(t, err)
	assert.True(t, first.Settled)

	second, err := f.svc.VerifyAndSettle(context.Background(), tx.Reference)
	require.NoError(t, err)
	assert.True(t, second.Settled)
	assert.True(t, second.AlreadySettled)

	// Exactly one commission credit despite the duplicate delivery.
	w, err := f.wallets.GetByUser(10, domain.UserTypeAgent)
	require.NoError(t, err)
	assert.Equal(t, testCommission.AgentRateCents, w.BalanceCents)

	var count int64
	f.db.Model(&models.WalletTransaction{}).Where("wallet_id = ?", w.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	require.Len(t, f.notifier.payments, 1, "no repeat notification on the no-op path")
}

func TestVerifyAndSettleProviderFailure(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("connection refused")}
	f := newPaymentFixture(t, verifier)

	_, err := f.svc.VerifyAndSettle(context.Background(), "cm-unknown")
	require.ErrorIs(t, err, domain.ErrProvider)
}

func TestVerifyAndSettleUnsuccessfulPayment(t *testing.T) {
	verifier := &fakeVerifier{result: &payment.VerifyResult{Success: false, ProviderStatus: "abandoned"}}
	f := newPaymentFixture(t, verifier)
	app := f.seedApplication(t, 20)

	tx, err := f.svc.Initiate(20, app.ID, 250000)
	require.NoError(t, err)

	result, err := f.svc.VerifyAndSettle(context.Background(), tx.Reference)
	require.NoError(t, err)
	assert.False(t, result.Settled)
	assert.Equal(t, "abandoned", result.ProviderStatus)

	gotTx, err := f.txs.GetByReference(tx.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, gotTx.Status, "no mutation on provider failure")
}

func TestVerifyAndSettleReconstructsMissingTransaction(t *testing.T) {
	verifier := &fakeVerifier{}
	f := newPaymentFixture(t, verifier)
	app := f.seedApplication(t, 20)
	verifier.result = successResult(app.ID, 20)

	// Webhook arrives before any local initiation record.
	result, err := f.svc.VerifyAndSettle(context.Background(), "PSK-race-001")
	require.NoError(t, err)
	assert.True(t, result.Settled)

	gotTx, err := f.txs.GetByReference("PSK-race-001")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, gotTx.Status)
	assert.Equal(t, int64(250000), gotTx.AmountCents)

	gotApp, err := f.apps.GetByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPaymentPaid, gotApp.PaymentStatus)
}

func TestVerifyAndSettleRejectsForgedMetadata(t *testing.T) {
	verifier := &fakeVerifier{}
	f := newPaymentFixture(t, verifier)
	app := f.seedApplication(t, 20)

	// Metadata names a member who does not own the application.
	verifier.result = successResult(app.ID, 77)
	_, err := f.svc.VerifyAndSettle(context.Background(), "PSK-forged-001")
	require.ErrorIs(t, err, domain.ErrValidation)

	gotApp, err := f.apps.GetByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPaymentUnpaid, gotApp.PaymentStatus)

	// Missing correlation ids are rejected too.
	verifier.result = &payment.VerifyResult{Success: true, ProviderStatus: "success", AmountCents: 1000}
	_, err = f.svc.VerifyAndSettle(context.Background(), "PSK-forged-002")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestInitiateValidatesOwnership(t *testing.T) {
	verifier := &fakeVerifier{}
	f := newPaymentFixture(t, verifier)
	app := f.seedApplication(t, 20)

	_, err := f.svc.Initiate(99, app.ID, 1000)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Initiate(20, app.ID, 0)
	require.ErrorIs(t, err, domain.ErrValidation)
}
