package domain

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrWalletNotFound          = errors.New("wallet not found")
	ErrInsufficientBalance     = errors.New("insufficient wallet balance")
	ErrDuplicatePendingRequest = errors.New("a pending withdrawal already exists")
	ErrAlreadyProcessed        = errors.New("withdrawal already processed")
	ErrAlreadyInStatus         = errors.New("referral already in requested status")
	ErrValidation              = errors.New("validation failed")
	ErrProvider                = errors.New("payment provider error")
)
