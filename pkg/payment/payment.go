package payment

import "context"

// VerifyResult is the provider's word on a transaction reference.
// Correlation ids come from the initiation metadata stored provider-side
// and must be validated against local records before they are trusted.
type VerifyResult struct {
	Success        bool
	ProviderStatus string
	AmountCents    int64
	Currency       string
	CustomerEmail  string
	ApplicationID  uint
	MemberID       uint
}

// Verifier checks a payment reference with the external provider.
type Verifier interface {
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}
