package repository

import (
	"sync"
	"testing"

	"collegemigration/internal/domain"
	"collegemigration/internal/models"
	"collegemigration/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateWalletIsLazy(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)

	_, err := repo.GetByUser(7, domain.UserTypeMember)
	require.ErrorIs(t, err, domain.ErrWalletNotFound)

	w, err := repo.GetOrCreate(7, domain.UserTypeMember)
	require.NoError(t, err)
	assert.Equal(t, int64(0), w.BalanceCents)

	again, err := repo.GetOrCreate(7, domain.UserTypeMember)
	require.NoError(t, err)
	assert.Equal(t, w.ID, again.ID, "second call must return the same wallet")
}

func TestWalletsAreScopedByUserType(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)

	asMember, err := repo.GetOrCreate(7, domain.UserTypeMember)
	require.NoError(t, err)
	asAgent, err := repo.GetOrCreate(7, domain.UserTypeAgent)
	require.NoError(t, err)
	assert.NotEqual(t, asMember.ID, asAgent.ID)
}

func TestCreditDebitConservation(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)
	w, err := repo.GetOrCreate(1, domain.UserTypeMember)
	require.NoError(t, err)

	var credits, debits int64
	for _, amount := range []int64{10000, 2500, 1500} {
		_, err := repo.Credit(w.ID, amount, domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted, nil, "c")
		require.NoError(t, err)
		credits += amount
	}
	for _, amount := range []int64{3000, 4000} {
		_, err := repo.Debit(w.ID, amount, domain.WalletTxTypeWithdrawal, domain.WalletTxStatusCompleted, nil, "d")
		require.NoError(t, err)
		debits += amount
	}

	got, err := repo.GetByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, credits-debits, got.BalanceCents)
}

func TestConcurrentCreditsAndDebitsConserveBalance(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)
	w, err := repo.GetOrCreate(1, domain.UserTypeMember)
	require.NoError(t, err)
	_, err = repo.Credit(w.ID, 100000, domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted, nil, "seed")
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, err := repo.Credit(w.ID, 1000, domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted, nil, "c")
				assert.NoError(t, err)
			} else {
				_, err := repo.Debit(w.ID, 500, domain.WalletTxTypeWithdrawal, domain.WalletTxStatusCompleted, nil, "d")
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := repo.GetByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000+5*1000-5*500), got.BalanceCents)

	var count int64
	db.Model(&models.WalletTransaction{}).Where("wallet_id = ?", w.ID).Count(&count)
	assert.Equal(t, int64(workers+1), count, "every mutation must leave exactly one transaction row")
}

func TestGetOrCreateConcurrentFirstTouch(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)

	const workers = 4
	ids := make([]uint, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, err := repo.GetOrCreate(7, domain.UserTypeMember)
			errs[i] = err
			if err == nil {
				ids[i] = w.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i], "every caller must see the same wallet")
	}

	var count int64
	db.Model(&models.Wallet{}).Where("user_id = ? AND user_type = ?", 7, domain.UserTypeMember).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDebitInsufficientLeavesBalanceUnchanged(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)
	w, err := repo.GetOrCreate(1, domain.UserTypeMember)
	require.NoError(t, err)
	_, err = repo.Credit(w.ID, 5000, domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted, nil, "c")
	require.NoError(t, err)

	_, err = repo.Debit(w.ID, 7500, domain.WalletTxTypeWithdrawal, domain.WalletTxStatusCompleted, nil, "d")
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	got, err := repo.GetByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.BalanceCents)

	var count int64
	db.Model(&models.WalletTransaction{}).Where("wallet_id = ? AND type = ?", w.ID, domain.WalletTxTypeWithdrawal).Count(&count)
	assert.Equal(t, int64(0), count, "failed debit must not leave a transaction row")
}

func TestDebitMissingWallet(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)
	_, err := repo.Debit(999, 100, domain.WalletTxTypeWithdrawal, domain.WalletTxStatusCompleted, nil, "d")
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestAuditCompleteness(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)
	w, err := repo.GetOrCreate(1, domain.UserTypeMember)
	require.NoError(t, err)

	_, err = repo.Credit(w.ID, 10000, domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted, nil, "commission")
	require.NoError(t, err)
	_, err = repo.Debit(w.ID, 4000, domain.WalletTxTypeWithdrawal, domain.WalletTxStatusCompleted, nil, "withdrawal")
	require.NoError(t, err)

	got, err := repo.GetByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), got.BalanceCents)

	var txs []models.WalletTransaction
	require.NoError(t, db.Where("wallet_id = ?", w.ID).Order("id").Find(&txs).Error)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.WalletTxTypeCommission, txs[0].Type)
	assert.Equal(t, int64(10000), txs[0].AmountCents)
	assert.Equal(t, domain.WalletTxTypeWithdrawal, txs[1].Type)
	assert.Equal(t, int64(4000), txs[1].AmountCents)

	var signed int64
	for _, tx := range txs {
		if tx.Status != domain.WalletTxStatusCompleted {
			continue
		}
		if tx.Type == domain.WalletTxTypeWithdrawal {
			signed -= tx.AmountCents
		} else {
			signed += tx.AmountCents
		}
	}
	assert.Equal(t, got.BalanceCents, signed, "balance must equal the signed sum of completed transactions")
}

func TestListTransactionsPagination(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWalletRepository(db)
	w, err := repo.GetOrCreate(1, domain.UserTypeMember)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := repo.Credit(w.ID, 100, domain.WalletTxTypeCommission, domain.WalletTxStatusCompleted, nil, "c")
		require.NoError(t, err)
	}

	list, total, err := repo.ListTransactions(w.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, list, 2)

	list, _, err = repo.ListTransactions(w.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
