package transactionservice

import (
	"context"
	"testing"
	"time"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/pkg/errorspkg"
	"github.com/anjara/banky/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func randomAccount(id int32, owner, balance, status string) domain.Account {
	return domain.Account{
		ID:        id,
		Owner:     owner,
		Number:    randompkg.AccountNumber(),
		Kind:      domain.KindCurrent,
		Balance:   balance,
		Status:    status,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestDeposit(t *testing.T) {
	owner := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}
	cashier := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleCashier}
	stranger := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}

	approved := randomAccount(1, owner.Username, "1000", domain.StatusApproved)
	pending := randomAccount(2, owner.Username, "0", domain.StatusPending)

	testResult := domain.ApplyResult{
		Account: domain.Account{ID: approved.ID, Owner: approved.Owner, Balance: "1100", Status: domain.StatusApproved},
		Transaction: domain.Transaction{
			ID:              1,
			SourceAccountID: approved.ID,
			Type:            domain.TransactionDeposit,
			Amount:          "100",
			Status:          domain.TransactionSuccess,
		},
	}

	type input struct {
		caller    domain.Caller
		accountID int32
		amount    string
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(repo *MockRepo, accounts *MockAccountGetter)
		checkResponse func(res domain.ApplyResult, err error)
	}{
		{
			name:  "InvalidAmount",
			input: input{owner, approved.ID, "abc"},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().ApplyTx(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:  "StrangerRejected",
			input: input{stranger, approved.ID, "100"},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().ApplyTx(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(approved.ID)).
					Times(1).
					Return(approved, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidOwner.Error())
			},
		},
		{
			name:  "AccountNotApproved",
			input: input{owner, pending.ID, "100"},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().ApplyTx(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(pending.ID)).
					Times(1).
					Return(pending, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotApproved.Error())
			},
		},
		{
			name:  "CashierOK",
			input: input{cashier, approved.ID, "100"},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(approved.ID)).
					Times(1).
					Return(approved, nil)
				repo.EXPECT().
					ApplyTx(gomock.Any(), gomock.Eq(domain.ApplyParams{
						AccountID: approved.ID,
						Delta:     "100",
						Type:      domain.TransactionDeposit,
						Amount:    "100",
						Comment:   "deposit",
					})).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
		{
			name:  "OwnerOK",
			input: input{owner, approved.ID, "100"},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(approved.ID)).
					Times(1).
					Return(approved, nil)
				repo.EXPECT().
					ApplyTx(gomock.Any(), gomock.Eq(domain.ApplyParams{
						AccountID: approved.ID,
						Delta:     "100",
						Type:      domain.TransactionDeposit,
						Amount:    "100",
						Comment:   "deposit",
					})).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)
			transactionService := New(transactionRepo, accountGetter)

			tc.buildStubs(transactionRepo, accountGetter)

			tc.checkResponse(transactionService.Deposit(
				context.Background(),
				tc.input.caller,
				tc.input.accountID,
				tc.input.amount))
		})
	}
}

func TestWithdraw(t *testing.T) {
	owner := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}

	approved := randomAccount(1, owner.Username, "1000", domain.StatusApproved)

	testResult := domain.ApplyResult{
		Account: domain.Account{ID: approved.ID, Owner: approved.Owner, Balance: "900", Status: domain.StatusApproved},
		Transaction: domain.Transaction{
			ID:              1,
			SourceAccountID: approved.ID,
			Type:            domain.TransactionWithdrawal,
			Amount:          "100",
			Status:          domain.TransactionSuccess,
		},
	}

	testCases := []struct {
		name          string
		amount        string
		buildStubs    func(repo *MockRepo, accounts *MockAccountGetter)
		checkResponse func(res domain.ApplyResult, err error)
	}{
		{
			name:   "InsufficientBalance",
			amount: "10000",
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().ApplyTx(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(approved.ID)).
					Times(1).
					Return(approved, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name:   "RolledBack",
			amount: "100",
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(approved.ID)).
					Times(1).
					Return(approved, nil)
				repo.EXPECT().ApplyTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.ApplyResult{}, errorspkg.ErrOperationFailed)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrOperationFailed.Error())
			},
		},
		{
			name:   "OK",
			amount: "100",
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(approved.ID)).
					Times(1).
					Return(approved, nil)
				repo.EXPECT().
					ApplyTx(gomock.Any(), gomock.Eq(domain.ApplyParams{
						AccountID: approved.ID,
						Delta:     "-100",
						Type:      domain.TransactionWithdrawal,
						Amount:    "100",
						Comment:   "withdrawal",
					})).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)
			transactionService := New(transactionRepo, accountGetter)

			tc.buildStubs(transactionRepo, accountGetter)

			tc.checkResponse(transactionService.Withdraw(context.Background(), owner, approved.ID, tc.amount))
		})
	}
}

func TestRequestTransfer(t *testing.T) {
	owner := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}
	stranger := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}

	fromAccount := randomAccount(1, owner.Username, "1000", domain.StatusApproved)
	toAccount := randomAccount(2, randompkg.Owner(), "1000", domain.StatusApproved)
	pendingDest := randomAccount(3, randompkg.Owner(), "1000", domain.StatusPending)

	testTransfer := domain.Transaction{
		ID:                   1,
		SourceAccountID:      fromAccount.ID,
		DestinationAccountID: toAccount.ID,
		Type:                 domain.TransactionTransfer,
		Amount:               "100",
		Status:               domain.TransactionPending,
	}

	type input struct {
		caller domain.Caller
		arg    domain.CreateTransferParams
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(repo *MockRepo, accounts *MockAccountGetter)
		checkResponse func(res domain.Transaction, err error)
	}{
		{
			name:  "SameAccount",
			input: input{owner, domain.CreateTransferParams{FromAccountID: fromAccount.ID, ToAccountID: fromAccount.ID, Amount: "100"}},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Transaction, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrSameAccount.Error())
			},
		},
		{
			name:  "DestinationRequired",
			input: input{owner, domain.CreateTransferParams{FromAccountID: fromAccount.ID, Amount: "100"}},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Transaction, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrDestinationRequired.Error())
			},
		},
		{
			name:  "InvalidOwner",
			input: input{stranger, domain.CreateTransferParams{FromAccountID: fromAccount.ID, ToAccountID: toAccount.ID, Amount: "100"}},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(fromAccount.ID)).
					Times(1).
					Return(fromAccount, nil)
			},
			checkResponse: func(res domain.Transaction, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidOwner.Error())
			},
		},
		{
			name:  "DestinationNotApproved",
			input: input{owner, domain.CreateTransferParams{FromAccountID: fromAccount.ID, ToAccountID: pendingDest.ID, Amount: "100"}},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(fromAccount.ID)).
					Times(1).
					Return(fromAccount, nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(pendingDest.ID)).
					Times(1).
					Return(pendingDest, nil)
			},
			checkResponse: func(res domain.Transaction, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotApproved.Error())
			},
		},
		{
			name:  "InsufficientBalance",
			input: input{owner, domain.CreateTransferParams{FromAccountID: fromAccount.ID, ToAccountID: toAccount.ID, Amount: "10000"}},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(fromAccount.ID)).
					Times(1).
					Return(fromAccount, nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(toAccount.ID)).
					Times(1).
					Return(toAccount, nil)
			},
			checkResponse: func(res domain.Transaction, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name:  "OK",
			input: input{owner, domain.CreateTransferParams{FromAccountID: fromAccount.ID, ToAccountID: toAccount.ID, Amount: "100"}},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(fromAccount.ID)).
					Times(1).
					Return(fromAccount, nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(toAccount.ID)).
					Times(1).
					Return(toAccount, nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateTransactionParams{
						SourceAccountID:      fromAccount.ID,
						DestinationAccountID: toAccount.ID,
						Type:                 domain.TransactionTransfer,
						Amount:               "100",
						Status:               domain.TransactionPending,
					})).
					Times(1).
					Return(testTransfer, nil)
			},
			checkResponse: func(res domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, testTransfer, res)
				require.Equal(t, domain.TransactionPending, res.Status)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)
			transactionService := New(transactionRepo, accountGetter)

			tc.buildStubs(transactionRepo, accountGetter)

			tc.checkResponse(transactionService.RequestTransfer(context.Background(), tc.input.caller, tc.input.arg))
		})
	}
}

func TestSettleTransfer(t *testing.T) {
	client := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}
	admin := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleAdmin}

	pendingTransfer := domain.Transaction{
		ID:                   1,
		SourceAccountID:      1,
		DestinationAccountID: 2,
		Type:                 domain.TransactionTransfer,
		Amount:               "100",
		Status:               domain.TransactionPending,
	}

	settledTransfer := pendingTransfer
	settledTransfer.Status = domain.TransactionSuccess

	failedTransfer := pendingTransfer
	failedTransfer.Status = domain.TransactionFailed

	testResult := domain.MoveResult{
		Transaction: settledTransfer,
		FromAccount: domain.Account{ID: 1, Balance: "900", Status: domain.StatusApproved},
		ToAccount:   domain.Account{ID: 2, Balance: "1100", Status: domain.StatusApproved},
	}

	testCases := []struct {
		name          string
		caller        domain.Caller
		decision      string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.MoveResult, err error)
	}{
		{
			name:     "NotAdmin",
			caller:   client,
			decision: domain.StatusApproved,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().SettleTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrPermissionDenied.Error())
			},
		},
		{
			name:     "UnknownDecision",
			caller:   admin,
			decision: "maybe",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().SettleTx(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().FinalizeTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidDecision.Error())
			},
		},
		{
			name:     "ShortfallMarksFailed",
			caller:   admin,
			decision: domain.StatusApproved,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().SettleTx(gomock.Any(), gomock.Eq(pendingTransfer.ID)).
					Times(1).
					Return(domain.MoveResult{}, domain.ErrInsufficientBalance)
				repo.EXPECT().
					FinalizeTransfer(gomock.Any(), gomock.Eq(pendingTransfer.ID), gomock.Eq(domain.TransactionFailed)).
					Times(1).
					Return(failedTransfer, nil)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name:     "AlreadySettled",
			caller:   admin,
			decision: domain.StatusApproved,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().SettleTx(gomock.Any(), gomock.Eq(pendingTransfer.ID)).
					Times(1).
					Return(domain.MoveResult{}, domain.ErrTransferNotPending)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrTransferNotPending.Error())
			},
		},
		{
			name:     "RejectOK",
			caller:   admin,
			decision: domain.StatusRejected,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FinalizeTransfer(gomock.Any(), gomock.Eq(pendingTransfer.ID), gomock.Eq(domain.TransactionFailed)).
					Times(1).
					Return(failedTransfer, nil)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.NoError(t, err)
				require.Equal(t, failedTransfer, res.Transaction)
				require.Empty(t, res.FromAccount)
				require.Empty(t, res.ToAccount)
			},
		},
		{
			name:     "RejectNotPending",
			caller:   admin,
			decision: domain.StatusRejected,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FinalizeTransfer(gomock.Any(), gomock.Eq(pendingTransfer.ID), gomock.Eq(domain.TransactionFailed)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrTransferNotPending)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrTransferNotPending.Error())
			},
		},
		{
			name:     "ApproveOK",
			caller:   admin,
			decision: domain.StatusApproved,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().SettleTx(gomock.Any(), gomock.Eq(pendingTransfer.ID)).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
				require.Equal(t, domain.TransactionSuccess, res.Transaction.Status)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)
			transactionService := New(transactionRepo, accountGetter)

			tc.buildStubs(transactionRepo)

			tc.checkResponse(transactionService.SettleTransfer(context.Background(), tc.caller, pendingTransfer.ID, tc.decision))
		})
	}
}

func TestMobileMoney(t *testing.T) {
	owner := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}
	stranger := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}

	phone := randompkg.PhoneNumber()
	account := randomAccount(1, owner.Username, "2000", domain.StatusApproved)
	poorAccount := randomAccount(2, owner.Username, "500", domain.StatusApproved)

	testCases := []struct {
		name          string
		caller        domain.Caller
		arg           domain.MobileMoneyParams
		buildStubs    func(repo *MockRepo, accounts *MockAccountGetter)
		checkResponse func(res domain.ApplyResult, err error)
	}{
		{
			name:   "UnknownOperation",
			caller: owner,
			arg: domain.MobileMoneyParams{
				AccountID: account.ID,
				Operation: "topup",
				Provider:  domain.ProviderMvola,
				Amount:    "1000",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().ApplyTx(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidOperation.Error())
			},
		},
		{
			name:   "NotTheOwner",
			caller: stranger,
			arg: domain.MobileMoneyParams{
				AccountID: account.ID,
				Operation: domain.TransactionWithdrawal,
				Provider:  domain.ProviderMvola,
				Amount:    "1000",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().ApplyTx(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidOwner.Error())
			},
		},
		{
			name:   "WithdrawalWithFeeOverdraws",
			caller: owner,
			arg: domain.MobileMoneyParams{
				AccountID:   poorAccount.ID,
				Operation:   domain.TransactionWithdrawal,
				Provider:    domain.ProviderMvola,
				PhoneNumber: phone,
				Amount:      "1000",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().ApplyTx(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(poorAccount.ID)).
					Times(1).
					Return(poorAccount, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name:   "MvolaWithdrawalDebitsAmountPlusFee",
			caller: owner,
			arg: domain.MobileMoneyParams{
				AccountID:   account.ID,
				Operation:   domain.TransactionWithdrawal,
				Provider:    domain.ProviderMvola,
				PhoneNumber: phone,
				Amount:      "1000",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					ApplyTx(gomock.Any(), gomock.Eq(domain.ApplyParams{
						AccountID: account.ID,
						Delta:     "-1008",
						Type:      domain.TransactionWithdrawal,
						Amount:    "1000",
						Comment:   "mvola withdrawal, phone: " + phone + ", amount: 1000, fee: 8",
					})).
					Times(1).
					Return(domain.ApplyResult{}, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:   "OrangeMoneyDepositCreditsAmountMinusFee",
			caller: owner,
			arg: domain.MobileMoneyParams{
				AccountID:   account.ID,
				Operation:   domain.TransactionDeposit,
				Provider:    domain.ProviderOrangeMoney,
				PhoneNumber: phone,
				Amount:      "1000",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					ApplyTx(gomock.Any(), gomock.Eq(domain.ApplyParams{
						AccountID: account.ID,
						Delta:     "995",
						Type:      domain.TransactionDeposit,
						Amount:    "1000",
						Comment:   "orange_money deposit, phone: " + phone + ", amount: 1000, fee: 5",
					})).
					Times(1).
					Return(domain.ApplyResult{}, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:   "UnknownProviderDefaultRate",
			caller: owner,
			arg: domain.MobileMoneyParams{
				AccountID:   account.ID,
				Operation:   domain.TransactionDeposit,
				Provider:    "telma",
				PhoneNumber: phone,
				Amount:      "1000",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					ApplyTx(gomock.Any(), gomock.Eq(domain.ApplyParams{
						AccountID: account.ID,
						Delta:     "995",
						Type:      domain.TransactionDeposit,
						Amount:    "1000",
						Comment:   "telma deposit, phone: " + phone + ", amount: 1000, fee: 5",
					})).
					Times(1).
					Return(domain.ApplyResult{}, nil)
			},
			checkResponse: func(res domain.ApplyResult, err error) {
				require.NoError(t, err)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)
			transactionService := New(transactionRepo, accountGetter)

			tc.buildStubs(transactionRepo, accountGetter)

			tc.checkResponse(transactionService.MobileMoney(context.Background(), tc.caller, tc.arg))
		})
	}
}

func TestSavingsSweep(t *testing.T) {
	owner := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}

	current := randomAccount(1, owner.Username, "1000", domain.StatusApproved)
	savings := randomAccount(2, owner.Username, "0", domain.StatusApproved)
	savings.Kind = domain.KindSavings

	testResult := domain.MoveResult{
		Transaction: domain.Transaction{
			ID:                   1,
			SourceAccountID:      current.ID,
			DestinationAccountID: savings.ID,
			Type:                 domain.TransactionTransfer,
			Amount:               "300",
			Status:               domain.TransactionSuccess,
			Comment:              "savings sweep",
		},
		FromAccount: domain.Account{ID: current.ID, Owner: owner.Username, Balance: "700", Status: domain.StatusApproved},
		ToAccount:   domain.Account{ID: savings.ID, Owner: owner.Username, Balance: "300", Status: domain.StatusApproved},
	}

	testCases := []struct {
		name          string
		amount        string
		buildStubs    func(repo *MockRepo, accounts *MockAccountGetter)
		checkResponse func(res domain.MoveResult, err error)
	}{
		{
			name:   "InsufficientBalance",
			amount: "10000",
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				repo.EXPECT().MoveTx(gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(current.ID)).
					Times(1).
					Return(current, nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(savings.ID)).
					Times(1).
					Return(savings, nil)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name:   "CompletesWithoutAdminStep",
			amount: "300",
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(current.ID)).
					Times(1).
					Return(current, nil)
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(savings.ID)).
					Times(1).
					Return(savings, nil)
				repo.EXPECT().
					MoveTx(gomock.Any(), gomock.Eq(domain.MoveParams{
						FromAccountID: current.ID,
						ToAccountID:   savings.ID,
						Amount:        "300",
						Type:          domain.TransactionTransfer,
						Comment:       "savings sweep",
					})).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.MoveResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
				require.Equal(t, domain.TransactionSuccess, res.Transaction.Status)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)
			transactionService := New(transactionRepo, accountGetter)

			tc.buildStubs(transactionRepo, accountGetter)

			tc.checkResponse(transactionService.SavingsSweep(context.Background(), owner, current.ID, savings.ID, tc.amount))
		})
	}
}

func TestListTransactions(t *testing.T) {
	client := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleClient}
	admin := domain.Caller{Username: randompkg.Owner(), Role: domain.RoleAdmin}

	ownTransactions := []domain.Transaction{{ID: 2, SourceAccountID: 1, Type: domain.TransactionDeposit, Amount: "100"}}
	allTransactions := append([]domain.Transaction{}, ownTransactions...)
	allTransactions = append(allTransactions, domain.Transaction{ID: 1, SourceAccountID: 2, Type: domain.TransactionWithdrawal, Amount: "50"})

	testCases := []struct {
		name          string
		caller        domain.Caller
		buildStubs    func(repo *MockRepo)
		checkResponse func(res []domain.Transaction, err error)
	}{
		{
			name:   "AdminListsAll",
			caller: admin,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Eq(int32(10)), gomock.Eq(int32(0))).
					Times(1).
					Return(allTransactions, nil)
			},
			checkResponse: func(res []domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, allTransactions, res)
			},
		},
		{
			name:   "ClientListsOwn",
			caller: client,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().ListForOwner(gomock.Any(), gomock.Eq(client.Username), gomock.Eq(int32(10)), gomock.Eq(int32(0))).
					Times(1).
					Return(ownTransactions, nil)
			},
			checkResponse: func(res []domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, ownTransactions, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)
			transactionService := New(transactionRepo, accountGetter)

			tc.buildStubs(transactionRepo)

			tc.checkResponse(transactionService.List(context.Background(), tc.caller, 10, 1))
		})
	}
}
