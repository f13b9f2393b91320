// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"
	"fmt"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/pkg/moneypkg"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
	FinalizeTransfer(ctx context.Context, id int64, status string) (domain.Transaction, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Transaction, error)
	ListForOwner(ctx context.Context, owner string, limit, offset int32) ([]domain.Transaction, error)
	ApplyTx(ctx context.Context, arg domain.ApplyParams) (domain.ApplyResult, error)
	MoveTx(ctx context.Context, arg domain.MoveParams) (domain.MoveResult, error)
	SettleTx(ctx context.Context, id int64) (domain.MoveResult, error)
}

// AccountGetter provides the account lookups needed to vet transactions.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type AccountGetter interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo     Repo
	accounts AccountGetter
}

// New returns transaction service struct to manage transaction bussines logic.
func New(tr Repo, ag AccountGetter) *Service {
	return &Service{
		repo:     tr,
		accounts: ag,
	}
}

// canOperate reports whether the caller may move money on the account.
// Cashiers and admins operate on any account, clients only on their own.
func canOperate(caller domain.Caller, account domain.Account) bool {
	if caller.Role == domain.RoleAdmin || caller.Role == domain.RoleCashier {
		return true
	}

	return account.Owner == caller.Username
}

// vetAccount loads the account and checks the caller and the approval status.
func (s *Service) vetAccount(ctx context.Context, caller domain.Caller, accountID int32) (domain.Account, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	if !canOperate(caller, account) {
		return domain.Account{}, domain.ErrInvalidOwner
	}

	if account.Status != domain.StatusApproved {
		return domain.Account{}, domain.ErrAccountNotApproved
	}

	return account, nil
}

// Deposit credits the amount to an approved account and records the
// transaction immediately.
func (s *Service) Deposit(ctx context.Context, caller domain.Caller, accountID int32, amount string) (domain.ApplyResult, error) {
	if _, ok := moneypkg.ParsePositive(amount); !ok {
		return domain.ApplyResult{}, domain.ErrInvalidAmount
	}

	if _, err := s.vetAccount(ctx, caller, accountID); err != nil {
		return domain.ApplyResult{}, err
	}

	return s.repo.ApplyTx(ctx, domain.ApplyParams{
		AccountID: accountID,
		Delta:     amount,
		Type:      domain.TransactionDeposit,
		Amount:    amount,
		Comment:   "deposit",
	})
}

// Withdraw debits the amount from an approved account with sufficient balance
// and records the transaction immediately.
func (s *Service) Withdraw(ctx context.Context, caller domain.Caller, accountID int32, amount string) (domain.ApplyResult, error) {
	amountDecimal, ok := moneypkg.ParsePositive(amount)
	if !ok {
		return domain.ApplyResult{}, domain.ErrInvalidAmount
	}

	account, err := s.vetAccount(ctx, caller, accountID)
	if err != nil {
		return domain.ApplyResult{}, err
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		return domain.ApplyResult{}, err
	}

	if balance.LessThan(amountDecimal) {
		return domain.ApplyResult{}, domain.ErrInsufficientBalance
	}

	return s.repo.ApplyTx(ctx, domain.ApplyParams{
		AccountID: accountID,
		Delta:     "-" + amount,
		Type:      domain.TransactionWithdrawal,
		Amount:    amount,
		Comment:   "withdrawal",
	})
}

// RequestTransfer records a pending transfer between two approved accounts.
// Both ends are validated at creation; no funds move until an admin settles
// the transfer.
func (s *Service) RequestTransfer(ctx context.Context, caller domain.Caller, arg domain.CreateTransferParams) (domain.Transaction, error) {
	amountDecimal, ok := moneypkg.ParsePositive(arg.Amount)
	if !ok {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	if arg.ToAccountID == 0 {
		return domain.Transaction{}, domain.ErrDestinationRequired
	}

	if arg.FromAccountID == arg.ToAccountID {
		return domain.Transaction{}, domain.ErrSameAccount
	}

	fromAccount, err := s.accounts.Get(ctx, arg.FromAccountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if !caller.IsAdmin() && fromAccount.Owner != caller.Username {
		return domain.Transaction{}, domain.ErrInvalidOwner
	}

	if fromAccount.Status != domain.StatusApproved {
		return domain.Transaction{}, domain.ErrAccountNotApproved
	}

	toAccount, err := s.accounts.Get(ctx, arg.ToAccountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if toAccount.Status != domain.StatusApproved {
		return domain.Transaction{}, domain.ErrAccountNotApproved
	}

	balance, err := decimal.NewFromString(fromAccount.Balance)
	if err != nil {
		return domain.Transaction{}, err
	}

	if balance.LessThan(amountDecimal) {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	return s.repo.Create(ctx, domain.CreateTransactionParams{
		SourceAccountID:      arg.FromAccountID,
		DestinationAccountID: arg.ToAccountID,
		Type:                 domain.TransactionTransfer,
		Amount:               arg.Amount,
		Status:               domain.TransactionPending,
	})
}

// SettleTransfer applies an admin decision to a pending transfer. Approval
// moves the funds and marks the transfer success, re-validating the source
// balance at settlement time; a shortfall rolls the movement back and marks
// the transfer failed. Rejection marks it failed with no balance effect.
func (s *Service) SettleTransfer(ctx context.Context, caller domain.Caller, id int64, decision string) (domain.MoveResult, error) {
	if !caller.IsAdmin() {
		return domain.MoveResult{}, domain.ErrPermissionDenied
	}

	switch decision {
	case domain.StatusApproved:
		result, err := s.repo.SettleTx(ctx, id)
		if err == domain.ErrInsufficientBalance {
			if _, failErr := s.repo.FinalizeTransfer(ctx, id, domain.TransactionFailed); failErr != nil {
				return domain.MoveResult{}, failErr
			}

			return domain.MoveResult{}, err
		}

		return result, err
	case domain.StatusRejected:
		transfer, err := s.repo.FinalizeTransfer(ctx, id, domain.TransactionFailed)
		if err != nil {
			return domain.MoveResult{}, err
		}

		return domain.MoveResult{Transaction: transfer}, nil
	default:
		return domain.MoveResult{}, domain.ErrInvalidDecision
	}
}

// MobileMoney applies a provider deposit or withdrawal to the caller's
// approved account. The provider fee is folded into the balance delta and
// described in the transaction comment; the recorded amount stays the face
// amount.
func (s *Service) MobileMoney(ctx context.Context, caller domain.Caller, arg domain.MobileMoneyParams) (domain.ApplyResult, error) {
	amountDecimal, ok := moneypkg.ParsePositive(arg.Amount)
	if !ok {
		return domain.ApplyResult{}, domain.ErrInvalidAmount
	}

	if arg.Operation != domain.TransactionDeposit && arg.Operation != domain.TransactionWithdrawal {
		return domain.ApplyResult{}, domain.ErrInvalidOperation
	}

	account, err := s.accounts.Get(ctx, arg.AccountID)
	if err != nil {
		return domain.ApplyResult{}, err
	}

	if account.Owner != caller.Username {
		return domain.ApplyResult{}, domain.ErrInvalidOwner
	}

	if account.Status != domain.StatusApproved {
		return domain.ApplyResult{}, domain.ErrAccountNotApproved
	}

	fee := moneypkg.Fee(amountDecimal, arg.Provider, arg.Operation)

	var delta decimal.Decimal

	if arg.Operation == domain.TransactionWithdrawal {
		debit := amountDecimal.Add(fee)

		balance, err := decimal.NewFromString(account.Balance)
		if err != nil {
			return domain.ApplyResult{}, err
		}

		if balance.LessThan(debit) {
			return domain.ApplyResult{}, domain.ErrInsufficientBalance
		}

		delta = debit.Neg()
	} else {
		delta = amountDecimal.Sub(fee)
	}

	comment := fmt.Sprintf("%s %s, phone: %s, amount: %s, fee: %s",
		arg.Provider, arg.Operation, arg.PhoneNumber, arg.Amount, fee.String())

	return s.repo.ApplyTx(ctx, domain.ApplyParams{
		AccountID: arg.AccountID,
		Delta:     delta.String(),
		Type:      arg.Operation,
		Amount:    arg.Amount,
		Comment:   comment,
	})
}

// SavingsSweep moves the amount from the caller's account to a savings
// account synchronously. Unlike ordinary transfers there is no admin step;
// the movement completes once the solvency check passes.
func (s *Service) SavingsSweep(ctx context.Context, caller domain.Caller, fromAccountID, toAccountID int32, amount string) (domain.MoveResult, error) {
	amountDecimal, ok := moneypkg.ParsePositive(amount)
	if !ok {
		return domain.MoveResult{}, domain.ErrInvalidAmount
	}

	if fromAccountID == toAccountID {
		return domain.MoveResult{}, domain.ErrSameAccount
	}

	fromAccount, err := s.accounts.Get(ctx, fromAccountID)
	if err != nil {
		return domain.MoveResult{}, err
	}

	if fromAccount.Owner != caller.Username {
		return domain.MoveResult{}, domain.ErrInvalidOwner
	}

	if fromAccount.Status != domain.StatusApproved {
		return domain.MoveResult{}, domain.ErrAccountNotApproved
	}

	toAccount, err := s.accounts.Get(ctx, toAccountID)
	if err != nil {
		return domain.MoveResult{}, err
	}

	if toAccount.Status != domain.StatusApproved {
		return domain.MoveResult{}, domain.ErrAccountNotApproved
	}

	balance, err := decimal.NewFromString(fromAccount.Balance)
	if err != nil {
		return domain.MoveResult{}, err
	}

	if balance.LessThan(amountDecimal) {
		return domain.MoveResult{}, domain.ErrInsufficientBalance
	}

	return s.repo.MoveTx(ctx, domain.MoveParams{
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Type:          domain.TransactionTransfer,
		Comment:       "savings sweep",
	})
}

// List returns transactions visible to the caller: all of them for admins,
// transactions touching the caller's accounts otherwise. Newest first.
func (s *Service) List(ctx context.Context, caller domain.Caller, pageSize, pageID int32) ([]domain.Transaction, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	if caller.IsAdmin() {
		return s.repo.List(ctx, limit, offset)
	}

	return s.repo.ListForOwner(ctx, caller.Username, limit, offset)
}
