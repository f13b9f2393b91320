// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Open(ctx context.Context, caller domain.Caller, kind string) (domain.Account, error)
	Get(ctx context.Context, caller domain.Caller, id int32) (domain.Account, error)
	List(ctx context.Context, caller domain.Caller, pageSize, pageID int32) ([]domain.Account, error)
	Decide(ctx context.Context, caller domain.Caller, id int32, decision, comment string) (domain.Account, error)
	UpdateAsOwner(ctx context.Context, caller domain.Caller, id int32, arg domain.OwnerUpdateAccountParams) (domain.Account, error)
	UpdateAsAdmin(ctx context.Context, caller domain.Caller, id int32, arg domain.AdminUpdateAccountParams) (domain.Account, error)
	Close(ctx context.Context, caller domain.Caller, id int32) error
	VerifyByNumber(ctx context.Context, number string) (domain.AccountVerification, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

func caller(gctx *gin.Context) domain.Caller {
	payload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	return middleware.CallerFromPayload(payload)
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type accountResponse struct {
	Data accountData `json:"data,omitempty"`
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
	case domain.ErrAccountNotFound, domain.ErrOwnerNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrAccountNumberTaken:
		gctx.JSON(http.StatusConflict, web.Error(err))
	case domain.ErrInvalidDecision, domain.ErrAccountNotApproved:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type openRequest struct {
	Kind string `json:"kind" binding:"required,accountkind"`
}

// Open handles http request to open an account.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req openRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account, err := h.service.Open(ctx, caller(gctx), req.Kind)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

type uriRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get an account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account, err := h.service.Get(ctx, caller(gctx), req.ID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

type accountsResponse struct {
	Data accountsData `json:"data,omitempty"`
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	accounts, err := h.service.List(ctx, caller(gctx), req.PageSize, req.PageID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, accountsResponse{Data: accountsData{accounts}})
}

type decideRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Comment  string `json:"comment"`
}

// Decide handles http request to approve or reject an account.
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

	account, err := h.service.Decide(ctx, caller(gctx), uri.ID, req.Decision, req.Comment)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

type ownerUpdateRequest struct {
	Kind string `json:"kind" binding:"required,accountkind"`
}

// Update handles http request to update an account. Admin callers may also
// change the approval status and comment.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	c := caller(gctx)

	var (
		account domain.Account
		err     error
	)

	if c.IsAdmin() {
		var req domain.AdminUpdateAccountParams
		if err := gctx.ShouldBindJSON(&req); err != nil {
			bindError(gctx, err)
			return
		}

		account, err = h.service.UpdateAsAdmin(ctx, c, uri.ID, req)
	} else {
		var req ownerUpdateRequest
		if err := gctx.ShouldBindJSON(&req); err != nil {
			bindError(gctx, err)
			return
		}

		account, err = h.service.UpdateAsOwner(ctx, c, uri.ID, domain.OwnerUpdateAccountParams{Kind: req.Kind})
	}

	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

// Close handles http request to close an account.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	if err := h.service.Close(ctx, caller(gctx), uri.ID); err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}

type verifyRequest struct {
	Number string `uri:"number" binding:"required,numeric"`
}

type verificationData struct {
	Account domain.AccountVerification `json:"account"`
}

type verificationResponse struct {
	Data verificationData `json:"data,omitempty"`
}

// Verify handles http request to verify an account by its number.
func (h *Handler) Verify(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req verifyRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	verification, err := h.service.VerifyByNumber(ctx, req.Number)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, verificationResponse{Data: verificationData{verification}})
}
