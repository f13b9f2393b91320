// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/anjara/banky/internal/accountdelivery"
	"github.com/anjara/banky/internal/accountrepo"
	"github.com/anjara/banky/internal/accountservice"
	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/internal/loandelivery"
	"github.com/anjara/banky/internal/loanrepo"
	"github.com/anjara/banky/internal/loanservice"
	"github.com/anjara/banky/internal/middleware"
	"github.com/anjara/banky/internal/sessiondelivery"
	"github.com/anjara/banky/internal/sessionrepo"
	"github.com/anjara/banky/internal/sessionservice"
	"github.com/anjara/banky/internal/transactiondelivery"
	"github.com/anjara/banky/internal/transactionrepo"
	"github.com/anjara/banky/internal/transactionservice"
	"github.com/anjara/banky/internal/userdelivery"
	"github.com/anjara/banky/internal/userrepo"
	"github.com/anjara/banky/internal/userservice"
	"github.com/anjara/banky/pkg/configpkg"
	"github.com/anjara/banky/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	loanRepo := loanrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo, userRepo)
	transactionService := transactionservice.New(transactionRepo, accountRepo)
	loanService := loanservice.New(loanRepo, accountRepo)
	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)

	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	loanHandler := loandelivery.NewHandler(loanService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)
	engine.GET("/accounts/verify/:number", accountHandler.Verify)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/accounts", accountHandler.Open)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.PATCH("/accounts/:id", accountHandler.Update)

	authRoutes.POST("/transactions/deposits", transactionHandler.Deposit)
	authRoutes.POST("/transactions/withdrawals", transactionHandler.Withdraw)
	authRoutes.POST("/transactions/mobile-money", transactionHandler.MobileMoney)
	authRoutes.POST("/transactions/savings-sweeps", transactionHandler.SavingsSweep)
	authRoutes.GET("/transactions", transactionHandler.List)
	authRoutes.POST("/transfers", transactionHandler.Transfer)

	authRoutes.POST("/loans", loanHandler.Request)
	authRoutes.GET("/loans/:id", loanHandler.Get)
	authRoutes.GET("/loans", loanHandler.List)
	authRoutes.POST("/loans/:id/repayments", loanHandler.Repay)

	adminRoutes := engine.Group("/").Use(
		middleware.AuthMiddleware(sessionService.TokenMaker),
		middleware.RequireRoles(domain.RoleAdmin),
	)

	adminRoutes.POST("/accounts/:id/decision", accountHandler.Decide)
	adminRoutes.DELETE("/accounts/:id", accountHandler.Close)
	adminRoutes.POST("/transfers/:id/decision", transactionHandler.Settle)
	adminRoutes.POST("/loans/:id/decision", loanHandler.Decide)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accountkind", accountdelivery.ValidAccountKind); err != nil {
			return nil, errors.New("cannot register account kind validator")
		}

		if err := v.RegisterValidation("provider", transactiondelivery.ValidProvider); err != nil {
			return nil, errors.New("cannot register provider validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
