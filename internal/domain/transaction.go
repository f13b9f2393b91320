package domain

import (
	"errors"
	"time"
)

// Transaction types.
const (
	TransactionDeposit          = "deposit"
	TransactionWithdrawal       = "withdrawal"
	TransactionTransfer         = "transfer"
	TransactionLoanDisbursement = "loan_disbursement"
	TransactionRepayment        = "repayment"
)

// Transaction statuses. Only transfers pass through pending; every other
// type is recorded as success at creation. Failed is terminal.
const (
	TransactionPending = "pending"
	TransactionSuccess = "success"
	TransactionFailed  = "failed"
)

// Mobile money providers with a known fee schedule.
const (
	ProviderMvola       = "mvola"
	ProviderOrangeMoney = "orange_money"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a zero or negative amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInvalidOwner indicates that the user is unauthorized to move money from the account.
	ErrInvalidOwner = errors.New("unauthorized owner")
	// ErrSameAccount indicates that source and destination accounts are the same.
	ErrSameAccount = errors.New("source and destination accounts must differ")
	// ErrDestinationRequired indicates a transfer without a destination account.
	ErrDestinationRequired = errors.New("destination account is required")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTransferNotPending indicates a settlement decision on a transfer that
	// is no longer awaiting approval.
	ErrTransferNotPending = errors.New("transfer is not awaiting approval")
	// ErrNotATransfer indicates a settlement decision on a non-transfer transaction.
	ErrNotATransfer = errors.New("transaction is not a transfer")
	// ErrInvalidOperation indicates an unknown mobile money operation type.
	ErrInvalidOperation = errors.New("operation must be deposit or withdrawal")
)

// Transaction is an immutable record of a balance-affecting operation.
// DestinationAccountID is zero for single-account operations.
type Transaction struct {
	ID                   int64     `json:"id"`
	SourceAccountID      int32     `json:"source_account_id"`
	DestinationAccountID int32     `json:"destination_account_id,omitempty"`
	Type                 string    `json:"type"`
	Amount               string    `json:"amount"`
	Status               string    `json:"status"`
	Comment              string    `json:"comment,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// CreateTransactionParams is the input data to append a transaction record.
type CreateTransactionParams struct {
	SourceAccountID      int32  `json:"source_account_id"`
	DestinationAccountID int32  `json:"destination_account_id"`
	Type                 string `json:"type"`
	Amount               string `json:"amount"`
	Status               string `json:"status"`
	Comment              string `json:"comment"`
}

// CreateTransferParams is the input data to request a transfer between two
// accounts. The transfer is recorded pending; no funds move until an admin
// settles it.
type CreateTransferParams struct {
	FromAccountID int32  `json:"from_account_id"`
	ToAccountID   int32  `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// ApplyParams is the input data for a single-account balance mutation that
// must commit together with its transaction record.
type ApplyParams struct {
	AccountID int32  `json:"account_id"`
	Delta     string `json:"delta"` // signed amount applied to the balance
	Type      string `json:"type"`
	Amount    string `json:"amount"` // recorded amount, always positive
	Comment   string `json:"comment"`
}

// ApplyResult is the outcome of a single-account mutation.
type ApplyResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// MoveParams is the input data for an atomic two-account movement.
type MoveParams struct {
	FromAccountID int32  `json:"from_account_id"`
	ToAccountID   int32  `json:"to_account_id"`
	Amount        string `json:"amount"`
	Type          string `json:"type"`
	Comment       string `json:"comment"`
}

// MoveResult is the outcome of an atomic two-account movement.
type MoveResult struct {
	Transaction Transaction `json:"transaction"`
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
}

// MobileMoneyParams is the input data for a mobile money operation.
// Operation is TransactionDeposit or TransactionWithdrawal.
type MobileMoneyParams struct {
	AccountID   int32  `json:"account_id"`
	Operation   string `json:"operation"`
	Provider    string `json:"provider"`
	PhoneNumber string `json:"phone_number"`
	Amount      string `json:"amount"`
}
