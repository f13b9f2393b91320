package domain

import (
	"errors"
	"time"
)

// Account kinds.
const (
	KindCurrent = "current"
	KindSavings = "savings"
)

// Account approval statuses. Accounts are created pending; an admin decision
// moves them to approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrAccountNumberTaken indicates a collision on the generated account number.
	ErrAccountNumberTaken = errors.New("account number already taken")
	// ErrAccountNotApproved indicates that the account has not been approved by an admin.
	ErrAccountNotApproved = errors.New("account must be approved for this operation")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidDecision indicates an unknown approval decision.
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

// SupportedKinds holds all the supported account kinds.
var SupportedKinds = []string{KindCurrent, KindSavings}

// IsSupportedKind returns true if the account kind is supported.
func IsSupportedKind(kind string) bool {
	for _, k := range SupportedKinds {
		if k == kind {
			return true
		}
	}

	return false
}

// Account holds a user's bank account with its balance and approval status.
type Account struct {
	ID           int32     `json:"id"`
	Owner        string    `json:"owner"`
	Number       string    `json:"number"`
	Kind         string    `json:"kind"`
	Balance      string    `json:"balance"`
	Status       string    `json:"status"`
	AdminComment string    `json:"admin_comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// OwnerUpdateAccountParams is the update shape available to the account owner.
// Status and balance are deliberately absent.
type OwnerUpdateAccountParams struct {
	Kind string `json:"kind"`
}

// AdminUpdateAccountParams is the update shape available to admins only.
type AdminUpdateAccountParams struct {
	Kind         string `json:"kind"`
	Status       string `json:"status"`
	AdminComment string `json:"admin_comment"`
}

// AccountVerification is the public view of an approved account returned by
// the verify-by-number operation. It never carries the balance.
type AccountVerification struct {
	Number        string `json:"number"`
	Kind          string `json:"kind"`
	OwnerFullName string `json:"owner_full_name"`
}
