// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/pkg/randompkg"
	"github.com/rs/zerolog"
)

// numberRetries bounds retries on an account number collision.
const numberRetries = 3

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, owner, number, kind string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Account, error)
	ListByOwner(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error)
	SetDecision(ctx context.Context, id int32, status, comment string) (domain.Account, error)
	SetKind(ctx context.Context, id int32, kind string) (domain.Account, error)
	Delete(ctx context.Context, id int32) error
}

// UserGetter provides the user lookup needed to verify accounts.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type UserGetter interface {
	Get(ctx context.Context, username string) (domain.User, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo  Repo
	users UserGetter
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, ug UserGetter) *Service {
	return &Service{
		repo:  ar,
		users: ug,
	}
}

// Open creates a pending account with a zero balance and a generated unique
// account number for the calling client.
func (s *Service) Open(ctx context.Context, caller domain.Caller, kind string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if caller.Role != domain.RoleClient {
		return domain.Account{}, domain.ErrPermissionDenied
	}

	var (
		account domain.Account
		err     error
	)

	for i := 0; i < numberRetries; i++ {
		account, err = s.repo.Create(ctx, caller.Username, randompkg.AccountNumber(), kind)
		if err != domain.ErrAccountNumberTaken {
			break
		}

		l.Warn().Msg("account number collision, retrying")
	}

	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Get returns the account for the given id. Non-admin callers can only see
// accounts they own; anything else reads as not found.
func (s *Service) Get(ctx context.Context, caller domain.Caller, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	if !caller.IsAdmin() && account.Owner != caller.Username {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return account, nil
}

// List returns accounts visible to the caller: all of them for admins, the
// caller's own otherwise.
func (s *Service) List(ctx context.Context, caller domain.Caller, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	if caller.IsAdmin() {
		return s.repo.List(ctx, limit, offset)
	}

	return s.repo.ListByOwner(ctx, caller.Username, limit, offset)
}

// Decide applies an admin approval decision to the account.
//
// The decision overwrites the previous status and comment without requiring
// the account to be pending; an admin may re-decide an account. A decision
// never touches the balance.
func (s *Service) Decide(ctx context.Context, caller domain.Caller, id int32, decision, comment string) (domain.Account, error) {
	if !caller.IsAdmin() {
		return domain.Account{}, domain.ErrPermissionDenied
	}

	if decision != domain.StatusApproved && decision != domain.StatusRejected {
		return domain.Account{}, domain.ErrInvalidDecision
	}

	return s.repo.SetDecision(ctx, id, decision, comment)
}

// UpdateAsOwner applies the owner update shape. Status and balance are not
// part of the shape and cannot be reached through it.
func (s *Service) UpdateAsOwner(ctx context.Context, caller domain.Caller, id int32, arg domain.OwnerUpdateAccountParams) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	if account.Owner != caller.Username {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return s.repo.SetKind(ctx, id, arg.Kind)
}

// UpdateAsAdmin applies the admin update shape, which also exposes the
// approval status and comment.
func (s *Service) UpdateAsAdmin(ctx context.Context, caller domain.Caller, id int32, arg domain.AdminUpdateAccountParams) (domain.Account, error) {
	if !caller.IsAdmin() {
		return domain.Account{}, domain.ErrPermissionDenied
	}

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	if arg.Kind != "" && arg.Kind != account.Kind {
		account, err = s.repo.SetKind(ctx, id, arg.Kind)
		if err != nil {
			return account, err
		}
	}

	if arg.Status != "" {
		if arg.Status != domain.StatusApproved && arg.Status != domain.StatusRejected && arg.Status != domain.StatusPending {
			return domain.Account{}, domain.ErrInvalidDecision
		}

		account, err = s.repo.SetDecision(ctx, id, arg.Status, arg.AdminComment)
		if err != nil {
			return account, err
		}
	}

	return account, nil
}

// Close removes the account. Admin only.
func (s *Service) Close(ctx context.Context, caller domain.Caller, id int32) error {
	if !caller.IsAdmin() {
		return domain.ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

// VerifyByNumber returns the public view of an approved account with the
// given number. The balance is never exposed.
func (s *Service) VerifyByNumber(ctx context.Context, number string) (domain.AccountVerification, error) {
	account, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return domain.AccountVerification{}, err
	}

	if account.Status != domain.StatusApproved {
		return domain.AccountVerification{}, domain.ErrAccountNotFound
	}

	owner, err := s.users.Get(ctx, account.Owner)
	if err != nil {
		return domain.AccountVerification{}, err
	}

	return domain.AccountVerification{
		Number:        account.Number,
		Kind:          account.Kind,
		OwnerFullName: owner.FullName,
	}, nil
}
