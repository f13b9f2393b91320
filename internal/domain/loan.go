package domain

import (
	"errors"
	"time"
)

// Loan statuses. A pending loan is decided by an admin: approval disburses
// the principal and moves it to in_progress; repayments drive it to repaid.
const (
	LoanStatusPending    = "pending"
	LoanStatusInProgress = "in_progress"
	LoanStatusRepaid     = "repaid"
	LoanStatusRejected   = "rejected"
)

// MaxLoanBalanceMultiple caps a loan request at this multiple of the
// account's current balance. Exactly the multiple is still accepted.
const MaxLoanBalanceMultiple = 10

var (
	// ErrLoanNotFound indicates that the loan is not found.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrLoanAmountTooLarge indicates a request above the balance multiple cap.
	ErrLoanAmountTooLarge = errors.New("loan amount exceeds 10x the account balance")
	// ErrLoanAlreadyDecided indicates a decision on a loan that is no longer pending.
	// Deciding twice would move money twice, so loan decisions are one-shot.
	ErrLoanAlreadyDecided = errors.New("loan has already been decided")
	// ErrLoanNotInProgress indicates a repayment on a loan that is not in progress.
	ErrLoanNotInProgress = errors.New("loan is not in progress")
	// ErrRepaymentTooLarge indicates a repayment above the remaining principal.
	ErrRepaymentTooLarge = errors.New("repayment exceeds the remaining principal")
)

// Loan holds a credit extended against an approved account. Principal is the
// remaining amount to repay; it decreases with every repayment.
type Loan struct {
	ID        int64      `json:"id"`
	AccountID int32      `json:"account_id"`
	Purpose   string     `json:"purpose"`
	Principal string     `json:"principal"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	RepaidAt  *time.Time `json:"repaid_at,omitempty"`
}

// CreateLoanParams is the input data to create a loan request.
type CreateLoanParams struct {
	AccountID int32  `json:"account_id"`
	Purpose   string `json:"purpose"`
	Amount    string `json:"amount"`
}

// DisburseLoanResult is the outcome of a loan approval transaction.
type DisburseLoanResult struct {
	Loan        Loan        `json:"loan"`
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// RepayLoanResult is the outcome of a repayment transaction.
type RepayLoanResult struct {
	Loan        Loan        `json:"loan"`
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}
