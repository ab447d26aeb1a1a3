package domain

const (
	RoleMember = "MEMBER"
	RoleAgent  = "AGENT"
	RoleAdmin  = "ADMIN"
)

// UserType identifies which account population owns a wallet or withdrawal.
// Wallets and withdrawals share the same enum (one casing, one source of truth).
const (
	UserTypeMember = "MEMBER"
	UserTypeAgent  = "AGENT"
)

const (
	WalletTxTypeCommission = "COMMISSION"
	WalletTxTypeRefund     = "REFUND"
	WalletTxTypeWithdrawal = "WITHDRAWAL"
)

const (
	WalletTxStatusPending   = "PENDING"
	WalletTxStatusCompleted = "COMPLETED"
)

const (
	WithdrawalStatusPending  = "PENDING"
	WithdrawalStatusApproved = "APPROVED"
	WithdrawalStatusRejected = "REJECTED"
)

const (
	ReferralStatusUnpaid = "UNPAID"
	ReferralStatusPaid   = "PAID"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
)

const (
	ApplicationPaymentUnpaid = "UNPAID"
	ApplicationPaymentPaid   = "PAID"
)
