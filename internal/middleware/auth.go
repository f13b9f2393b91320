package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/pkg/tokenpkg"
	"github.com/anjara/banky/pkg/web"
)

// Authorization header conventions.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

var (
	// ErrAuthHeaderNotFound indicates a missing authorization header.
	ErrAuthHeaderNotFound = errors.New("authorization header is not provided")
	// ErrInvalidAuthHeaderFormat indicates a malformed authorization header.
	ErrInvalidAuthHeaderFormat = errors.New("invalid authorization header format")
)

// AddAuthorization issues a token and sets the authorization header on the
// request. Used by delivery tests.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, username, role string, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(username, role, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware verifies the bearer token and stores its payload in the
// gin context under AuthPayloadKey.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrInvalidAuthHeaderFormat))
			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authType)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		accessToken := fields[1]

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		ctx.Set(AuthPayloadKey, payload)
		ctx.Next()
	}
}

// RequireRoles rejects the request with 403 unless the authenticated caller
// holds one of the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload := ctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)

		for _, role := range roles {
			if payload.Role == role {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(domain.ErrPermissionDenied))
	}
}

// CallerFromPayload converts a verified token payload into the explicit
// caller argument passed to service operations.
func CallerFromPayload(payload *tokenpkg.Payload) domain.Caller {
	return domain.Caller{
		Username: payload.Username,
		Role:     payload.Role,
	}
}
