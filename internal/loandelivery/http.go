// Package loandelivery manages delivery layer of loans.
package loandelivery

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

// Service provides service layer interface needed by loan delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package loandelivery
type Service interface {
	Request(ctx context.Context, caller domain.Caller, accountID int32, purpose, amount string) (domain.Loan, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (domain.Loan, error)
	Decide(ctx context.Context, caller domain.Caller, id int64, decision string) (domain.DisburseLoanResult, error)
	Repay(ctx context.Context, caller domain.Caller, id int64, amount string) (domain.RepayLoanResult, error)
	List(ctx context.Context, caller domain.Caller, pageSize, pageID int32) ([]domain.Loan, error)
}

// Handler facilitates loan delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns loan handler.
func NewHandler(ls Service) *Handler {
	return &Handler{service: ls}
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
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		gctx.JSON(http.StatusForbidden, web.Error(err))
	case errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrLoanAlreadyDecided):
		gctx.JSON(http.StatusConflict, web.Error(err))
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDecision),
		errors.Is(err, domain.ErrLoanAmountTooLarge),
		errors.Is(err, domain.ErrAccountNotApproved),
		errors.Is(err, domain.ErrLoanNotInProgress),
		errors.Is(err, domain.ErrRepaymentTooLarge),
		errors.Is(err, domain.ErrInsufficientBalance):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type loanData struct {
	Loan domain.Loan `json:"loan"`
}

type loanResponse struct {
	Data loanData `json:"data,omitempty"`
}

type requestLoanRequest struct {
	AccountID int32  `json:"account_id" binding:"required,min=1"`
	Purpose   string `json:"purpose" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// Request handles http request to ask for a loan.
func (h *Handler) Request(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req requestLoanRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	loan, err := h.service.Request(ctx, caller(gctx), req.AccountID, req.Purpose, req.Amount)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, loanResponse{Data: loanData{loan}})
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a loan.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	loan, err := h.service.Get(ctx, caller(gctx), uri.ID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, loanResponse{Data: loanData{loan}})
}

type decideRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

type disbursementData struct {
	Disbursement domain.DisburseLoanResult `json:"disbursement"`
}

type disbursementResponse struct {
	Data disbursementData `json:"data,omitempty"`
}

// Decide handles http request to approve or reject a loan.
func (h *Handler) Decide(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req decideRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.Decide(ctx, caller(gctx), uri.ID, req.Decision)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, disbursementResponse{Data: disbursementData{result}})
}

type repayRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type repaymentData struct {
	Repayment domain.RepayLoanResult `json:"repayment"`
}

type repaymentResponse struct {
	Data repaymentData `json:"data,omitempty"`
}

// Repay handles http request to repay a loan.
func (h *Handler) Repay(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req repayRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := h.service.Repay(ctx, caller(gctx), uri.ID, req.Amount)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, repaymentResponse{Data: repaymentData{result}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type loansData struct {
	Loans []domain.Loan `json:"loans"`
}

type loansResponse struct {
	Data loansData `json:"data,omitempty"`
}

// List handles http request to list loans.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	loans, err := h.service.List(ctx, caller(gctx), req.PageSize, req.PageID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, loansResponse{Data: loansData{loans}})
}
