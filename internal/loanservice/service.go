// Package loanservice manages business logic layer of loans.
package loanservice

import (
	"context"
	"fmt"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/pkg/moneypkg"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by loan service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package loanservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateLoanParams) (domain.Loan, error)
	Get(ctx context.Context, id int64) (domain.Loan, error)
	Decide(ctx context.Context, id int64, status string) (domain.Loan, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Loan, error)
	ListByOwner(ctx context.Context, owner string, limit, offset int32) ([]domain.Loan, error)
	DisburseTx(ctx context.Context, id int64) (domain.DisburseLoanResult, error)
	RepayTx(ctx context.Context, id int64, amount, comment string) (domain.RepayLoanResult, error)
}

// AccountGetter provides the account lookups needed to vet loan operations.
//
//go:generate mockgen -source service.go -destination service_mock.go -package loanservice
type AccountGetter interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Service facilitates loan service layer logic.
type Service struct {
	repo     Repo
	accounts AccountGetter
}

// New returns loan service struct to manage loan bussines logic.
func New(lr Repo, ag AccountGetter) *Service {
	return &Service{
		repo:     lr,
		accounts: ag,
	}
}

// Request creates a pending loan request against the caller's approved
// account. The amount is capped at MaxLoanBalanceMultiple times the current
// balance; exactly the cap is accepted.
func (s *Service) Request(ctx context.Context, caller domain.Caller, accountID int32, purpose, amount string) (domain.Loan, error) {
	amountDecimal, ok := moneypkg.ParsePositive(amount)
	if !ok {
		return domain.Loan{}, domain.ErrInvalidAmount
	}

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Loan{}, err
	}

	if account.Owner != caller.Username {
		return domain.Loan{}, domain.ErrPermissionDenied
	}

	if account.Status != domain.StatusApproved {
		return domain.Loan{}, domain.ErrAccountNotApproved
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		return domain.Loan{}, err
	}

	maxAmount := balance.Mul(decimal.NewFromInt(domain.MaxLoanBalanceMultiple))
	if amountDecimal.GreaterThan(maxAmount) {
		return domain.Loan{}, domain.ErrLoanAmountTooLarge
	}

	return s.repo.Create(ctx, domain.CreateLoanParams{
		AccountID: accountID,
		Purpose:   purpose,
		Amount:    amount,
	})
}

// Get returns the loan for the given id. Non-admin callers can only see
// loans on accounts they own; anything else reads as not found.
func (s *Service) Get(ctx context.Context, caller domain.Caller, id int64) (domain.Loan, error) {
	loan, err := s.repo.Get(ctx, id)
	if err != nil {
		return loan, err
	}

	if caller.IsAdmin() {
		return loan, nil
	}

	account, err := s.accounts.Get(ctx, loan.AccountID)
	if err != nil {
		return domain.Loan{}, err
	}

	if account.Owner != caller.Username {
		return domain.Loan{}, domain.ErrLoanNotFound
	}

	return loan, nil
}

// Decide applies an admin decision to a pending loan. Approval credits the
// principal to the account and records the disbursement atomically; a loan is
// never decided twice.
func (s *Service) Decide(ctx context.Context, caller domain.Caller, id int64, decision string) (domain.DisburseLoanResult, error) {
	if !caller.IsAdmin() {
		return domain.DisburseLoanResult{}, domain.ErrPermissionDenied
	}

	switch decision {
	case domain.StatusApproved:
		return s.repo.DisburseTx(ctx, id)
	case domain.StatusRejected:
		loan, err := s.repo.Decide(ctx, id, domain.LoanStatusRejected)
		if err != nil {
			return domain.DisburseLoanResult{}, err
		}

		return domain.DisburseLoanResult{Loan: loan}, nil
	default:
		return domain.DisburseLoanResult{}, domain.ErrInvalidDecision
	}
}

// Repay applies a repayment to an in-progress loan on the caller's account.
// The debit, the principal decrement and the transaction record commit
// together; a repayment that clears the principal exactly marks the loan
// repaid.
func (s *Service) Repay(ctx context.Context, caller domain.Caller, id int64, amount string) (domain.RepayLoanResult, error) {
	amountDecimal, ok := moneypkg.ParsePositive(amount)
	if !ok {
		return domain.RepayLoanResult{}, domain.ErrInvalidAmount
	}

	loan, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.RepayLoanResult{}, err
	}

	account, err := s.accounts.Get(ctx, loan.AccountID)
	if err != nil {
		return domain.RepayLoanResult{}, err
	}

	if account.Owner != caller.Username {
		return domain.RepayLoanResult{}, domain.ErrPermissionDenied
	}

	if loan.Status != domain.LoanStatusInProgress {
		return domain.RepayLoanResult{}, fmt.Errorf("%w: loan is %s", domain.ErrLoanNotInProgress, loan.Status)
	}

	principal, err := decimal.NewFromString(loan.Principal)
	if err != nil {
		return domain.RepayLoanResult{}, err
	}

	if amountDecimal.GreaterThan(principal) {
		return domain.RepayLoanResult{}, domain.ErrRepaymentTooLarge
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		return domain.RepayLoanResult{}, err
	}

	if balance.LessThan(amountDecimal) {
		return domain.RepayLoanResult{}, domain.ErrInsufficientBalance
	}

	comment := fmt.Sprintf("loan #%d repayment, amount: %s", loan.ID, amount)

	return s.repo.RepayTx(ctx, id, amount, comment)
}

// List returns loans visible to the caller: all of them for admins, loans on
// the caller's own accounts for clients, nothing for other roles.
func (s *Service) List(ctx context.Context, caller domain.Caller, pageSize, pageID int32) ([]domain.Loan, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	switch caller.Role {
	case domain.RoleAdmin:
		return s.repo.List(ctx, limit, offset)
	case domain.RoleClient:
		return s.repo.ListByOwner(ctx, caller.Username, limit, offset)
	default:
		return []domain.Loan{}, nil
	}
}
