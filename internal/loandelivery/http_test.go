package loandelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/internal/middleware"
	"github.com/anjara/banky/pkg/errorspkg"
	"github.com/anjara/banky/pkg/randompkg"
	"github.com/anjara/banky/pkg/tokenpkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.ReleaseMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*gin.Engine, tokenpkg.Maker, *MockService) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	loanService := NewMockService(ctrl)
	loanHandler := NewHandler(loanService)

	server := gin.New()
	authorized := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authorized.POST("/loans", loanHandler.Request)
	authorized.GET("/loans/:id", loanHandler.Get)
	authorized.POST("/loans/:id/repayments", loanHandler.Repay)

	admin := server.Group("/").Use(
		middleware.AuthMiddleware(tokenMaker),
		middleware.RequireRoles(domain.RoleAdmin),
	)
	admin.POST("/loans/:id/decision", loanHandler.Decide)

	return server, tokenMaker, loanService
}

func TestRequestAPI(t *testing.T) {
	username := randompkg.Owner()
	clientCaller := domain.Caller{Username: username, Role: domain.RoleClient}

	loan := domain.Loan{
		ID:        1,
		AccountID: 10,
		Purpose:   "equipment",
		Principal: "500",
		Status:    domain.LoanStatusPending,
		CreatedAt: time.Now(),
	}

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(loanService *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:        "MissingPurpose",
			requestBody: gin.H{"account_id": 10, "amount": "500"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Request(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:        "AmountAboveCap",
			requestBody: gin.H{"account_id": 10, "purpose": "equipment", "amount": "500"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Request(gomock.Any(), gomock.Eq(clientCaller), gomock.Eq(int32(10)), gomock.Eq("equipment"), gomock.Eq("500")).
					Times(1).
					Return(domain.Loan{}, domain.ErrLoanAmountTooLarge)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:        "AccountNotFound",
			requestBody: gin.H{"account_id": 10, "purpose": "equipment", "amount": "500"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Request(gomock.Any(), gomock.Eq(clientCaller), gomock.Eq(int32(10)), gomock.Eq("equipment"), gomock.Eq("500")).
					Times(1).
					Return(domain.Loan{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name:        "InternalError",
			requestBody: gin.H{"account_id": 10, "purpose": "equipment", "amount": "500"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Request(gomock.Any(), gomock.Eq(clientCaller), gomock.Eq(int32(10)), gomock.Eq("equipment"), gomock.Eq("500")).
					Times(1).
					Return(domain.Loan{}, errorspkg.ErrInternal)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
		{
			name:        "OK",
			requestBody: gin.H{"account_id": 10, "purpose": "equipment", "amount": "500"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Request(gomock.Any(), gomock.Eq(clientCaller), gomock.Eq(int32(10)), gomock.Eq("equipment"), gomock.Eq("500")).
					Times(1).
					Return(loan, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, tokenMaker, loanService := newTestServer(t)
			tc.buildStubs(loanService)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/loans", bytes.NewReader(body))
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker,
				middleware.AuthTypeBearer, username, domain.RoleClient, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			tc.checkResponse(recorder)
		})
	}
}

func TestDecideAPI(t *testing.T) {
	adminUsername := randompkg.Owner()
	adminCaller := domain.Caller{Username: adminUsername, Role: domain.RoleAdmin}

	testCases := []struct {
		name          string
		role          string
		requestBody   gin.H
		buildStubs    func(loanService *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:        "ClientForbidden",
			role:        domain.RoleClient,
			requestBody: gin.H{"decision": "approved"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Decide(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusForbidden, recorder.Code)
			},
		},
		{
			name:        "UnknownDecision",
			role:        domain.RoleAdmin,
			requestBody: gin.H{"decision": "maybe"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Decide(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:        "AlreadyDecided",
			role:        domain.RoleAdmin,
			requestBody: gin.H{"decision": "rejected"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Decide(gomock.Any(), gomock.Eq(adminCaller), gomock.Eq(int64(1)), gomock.Eq("rejected")).
					Times(1).
					Return(domain.DisburseLoanResult{}, domain.ErrLoanAlreadyDecided)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusConflict, recorder.Code)
			},
		},
		{
			name:        "OK",
			role:        domain.RoleAdmin,
			requestBody: gin.H{"decision": "approved"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Decide(gomock.Any(), gomock.Eq(adminCaller), gomock.Eq(int64(1)), gomock.Eq("approved")).
					Times(1).
					Return(domain.DisburseLoanResult{
						Loan: domain.Loan{ID: 1, Status: domain.LoanStatusInProgress},
					}, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, tokenMaker, loanService := newTestServer(t)
			tc.buildStubs(loanService)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/loans/1/decision", bytes.NewReader(body))
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker,
				middleware.AuthTypeBearer, adminUsername, tc.role, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			tc.checkResponse(recorder)
		})
	}
}

func TestRepayAPI(t *testing.T) {
	username := randompkg.Owner()
	clientCaller := domain.Caller{Username: username, Role: domain.RoleClient}

	testCases := []struct {
		name          string
		loanID        int64
		requestBody   gin.H
		buildStubs    func(loanService *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:        "MissingAmount",
			loanID:      1,
			requestBody: gin.H{},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Repay(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:        "LoanNotInProgress",
			loanID:      1,
			requestBody: gin.H{"amount": "100"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Repay(gomock.Any(), gomock.Eq(clientCaller), gomock.Eq(int64(1)), gomock.Eq("100")).
					Times(1).
					Return(domain.RepayLoanResult{},
						fmt.Errorf("%w: loan is %s", domain.ErrLoanNotInProgress, domain.LoanStatusRejected))
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:        "InsufficientBalance",
			loanID:      1,
			requestBody: gin.H{"amount": "100"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Repay(gomock.Any(), gomock.Eq(clientCaller), gomock.Eq(int64(1)), gomock.Eq("100")).
					Times(1).
					Return(domain.RepayLoanResult{}, domain.ErrInsufficientBalance)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:        "OK",
			loanID:      1,
			requestBody: gin.H{"amount": "100"},
			buildStubs: func(loanService *MockService) {
				loanService.EXPECT().
					Repay(gomock.Any(), gomock.Eq(clientCaller), gomock.Eq(int64(1)), gomock.Eq("100")).
					Times(1).
					Return(domain.RepayLoanResult{
						Loan: domain.Loan{ID: 1, Status: domain.LoanStatusInProgress, Principal: "400"},
					}, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, tokenMaker, loanService := newTestServer(t)
			tc.buildStubs(loanService)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			url := fmt.Sprintf("/loans/%d/repayments", tc.loanID)

			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			require.NoError(t, err)

			err = middleware.AddAuthorization(req, tokenMaker,
				middleware.AuthTypeBearer, username, domain.RoleClient, time.Minute)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			tc.checkResponse(recorder)
		})
	}
}
