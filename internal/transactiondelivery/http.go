// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/internal/middleware"
	"github.com/anjara/banky/pkg/errorspkg"
	"github.com/anjara/banky/pkg/tokenpkg"
	"github.com/anjara/banky/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, caller domain.Caller, accountID int32, amount string) (domain.ApplyResult, error)
	Withdraw(ctx context.Context, caller domain.Caller, accountID int32, amount string) (domain.ApplyResult, error)
	RequestTransfer(ctx context.Context, caller domain.Caller, arg domain.CreateTransferParams) (domain.Transaction, error)
	SettleTransfer(ctx context.Context, caller domain.Caller, id int64, decision string) (domain.MoveResult, error)
	MobileMoney(ctx context.Context, caller domain.Caller, arg domain.MobileMoneyParams) (domain.ApplyResult, error)
	SavingsSweep(ctx context.Context, caller domain.Caller, fromAccountID, toAccountID int32, amount string) (domain.MoveResult, error)
	List(ctx context.Context, caller domain.Caller, pageSize, pageID int32) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

func caller(gctx *gin.Context) domain.Caller {
	payload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	return middleware.CallerFromPayload(payload)
}

func bindError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrPermissionDenied:
		gctx.JSON(http.StatusForbidden, web.Error(err))
	case domain.ErrInvalidOwner:
		gctx.JSON(http.StatusForbidden, web.Error(err))
	case domain.ErrAccountNotFound, domain.ErrTransactionNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInvalidAmount, domain.ErrNegativeAmount, domain.ErrAccountNotApproved,
		domain.ErrInsufficientBalance, domain.ErrSameAccount, domain.ErrDestinationRequired,
		domain.ErrInvalidDecision, domain.ErrInvalidOperation,
		domain.ErrNotATransfer, domain.ErrTransferNotPending:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type applyData struct {
	Account     domain.Account     `json:"account"`
	Transaction domain.Transaction `json:"transaction"`
}

type applyResponse struct {
	Data applyData `json:"data,omitempty"`
}

type cashRequest struct {
	AccountID int32  `json:"account_id" binding:"required,min=1"`
	Amount    string `json:"amount" binding:"required"`
}

// Deposit handles http request to deposit cash into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req cashRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.Deposit(ctx, caller(gctx), req.AccountID, req.Amount)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, applyResponse{Data: applyData{result.Account, result.Transaction}})
}

// Withdraw handles http request to withdraw cash from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req cashRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.Withdraw(ctx, caller(gctx), req.AccountID, req.Amount)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, applyResponse{Data: applyData{result.Account, result.Transaction}})
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

type transactionResponse struct {
	Data transactionData `json:"data,omitempty"`
}

type transferRequest struct {
	FromAccountID int32  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int32  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
}

// Transfer handles http request to record a pending transfer.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	transfer, err := h.service.RequestTransfer(ctx, caller(gctx), domain.CreateTransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	})
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, transactionResponse{Data: transactionData{transfer}})
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type settleRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

type moveData struct {
	Transaction domain.Transaction `json:"transaction"`
	FromAccount domain.Account     `json:"from_account"`
	ToAccount   domain.Account     `json:"to_account"`
}

type moveResponse struct {
	Data moveData `json:"data,omitempty"`
}

// Settle handles http request to approve or reject a pending transfer.
func (h *Handler) Settle(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req settleRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.SettleTransfer(ctx, caller(gctx), uri.ID, req.Decision)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, moveResponse{Data: moveData{result.Transaction, result.FromAccount, result.ToAccount}})
}

type mobileMoneyRequest struct {
	AccountID   int32  `json:"account_id" binding:"required,min=1"`
	Operation   string `json:"operation" binding:"required,oneof=deposit withdrawal"`
	Provider    string `json:"provider" binding:"required,provider"`
	PhoneNumber string `json:"phone_number" binding:"required,numeric"`
	Amount      string `json:"amount" binding:"required"`
}

// MobileMoney handles http request to apply a mobile money operation.
func (h *Handler) MobileMoney(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req mobileMoneyRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.MobileMoney(ctx, caller(gctx), domain.MobileMoneyParams{
		AccountID:   req.AccountID,
		Operation:   req.Operation,
		Provider:    req.Provider,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
	})
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, applyResponse{Data: applyData{result.Account, result.Transaction}})
}

type sweepRequest struct {
	FromAccountID int32  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int32  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
}

// SavingsSweep handles http request to move funds into a savings account.
func (h *Handler) SavingsSweep(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req sweepRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.SavingsSweep(ctx, caller(gctx), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, moveResponse{Data: moveData{result.Transaction, result.FromAccount, result.ToAccount}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type transactionsResponse struct {
	Data transactionsData `json:"data,omitempty"`
}

// List handles http request to list transactions.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	transactions, err := h.service.List(ctx, caller(gctx), req.PageSize, req.PageID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, transactionsResponse{Data: transactionsData{transactions}})
}
