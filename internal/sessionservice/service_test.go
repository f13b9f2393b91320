package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/anjara/banky/internal/domain"
	"github.com/anjara/banky/pkg/configpkg"
	"github.com/anjara/banky/pkg/randompkg"
	"github.com/anjara/banky/pkg/tokenpkg"
)

func testConfig() configpkg.Config {
	return configpkg.Config{
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}
}

func newTestService(t *testing.T) (*Service, *MockRepo, tokenpkg.Maker) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)

	service, err := New(repo, testConfig(), tokenMaker)
	require.NoError(t, err)

	return service, repo, tokenMaker
}

func TestCreate(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		service, repo, _ := newTestService(t)

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Times(1).
			DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
				require.Equal(t, username, arg.Username)
				require.Equal(t, "agent", arg.UserAgent)
				require.Equal(t, "0.0.0.0", arg.ClientIP)
				require.NotEmpty(t, arg.RefreshToken)
				require.WithinDuration(t, time.Now().Add(time.Hour), arg.ExpiresAt, time.Minute)

				return domain.Session{
					ID:           arg.ID,
					Username:     arg.Username,
					RefreshToken: arg.RefreshToken,
					UserAgent:    arg.UserAgent,
					ClientIP:     arg.ClientIP,
					ExpiresAt:    arg.ExpiresAt,
				}, nil
			})

		accessToken, expiresAt, sess, err := service.Create(
			context.Background(), username, domain.RoleClient, "agent", "0.0.0.0")

		require.NoError(t, err)
		require.NotEmpty(t, accessToken)
		require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Minute)
		require.Equal(t, username, sess.Username)

		payload, err := service.TokenMaker.VerifyToken(accessToken)
		require.NoError(t, err)
		require.Equal(t, username, payload.Username)
		require.Equal(t, domain.RoleClient, payload.Role)
	})

	t.Run("RepoError", func(t *testing.T) {
		t.Parallel()

		service, repo, _ := newTestService(t)

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Times(1).
			Return(domain.Session{}, domain.ErrUserNotFound)

		_, _, _, err := service.Create(
			context.Background(), username, domain.RoleClient, "agent", "0.0.0.0")

		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestRenewAccessToken(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()

	issue := func(t *testing.T, maker tokenpkg.Maker) (string, *tokenpkg.Payload) {
		t.Helper()

		refreshToken, payload, err := maker.CreateToken(username, domain.RoleClient, time.Hour)
		require.NoError(t, err)

		return refreshToken, payload
	}

	t.Run("InvalidToken", func(t *testing.T) {
		t.Parallel()

		service, _, _ := newTestService(t)

		_, _, err := service.RenewAccessToken(context.Background(), "not-a-token")
		require.Error(t, err)
	})

	t.Run("BlockedSession", func(t *testing.T) {
		t.Parallel()

		service, repo, tokenMaker := newTestService(t)
		refreshToken, payload := issue(t, tokenMaker)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Eq(payload.ID)).
			Times(1).
			Return(domain.Session{
				ID:           payload.ID,
				Username:     username,
				RefreshToken: refreshToken,
				IsBlocked:    true,
				ExpiresAt:    payload.ExpiredAt,
			}, nil)

		_, _, err := service.RenewAccessToken(context.Background(), refreshToken)
		require.ErrorIs(t, err, domain.ErrBlockedSession)
	})

	t.Run("MismatchedUser", func(t *testing.T) {
		t.Parallel()

		service, repo, tokenMaker := newTestService(t)
		refreshToken, payload := issue(t, tokenMaker)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Eq(payload.ID)).
			Times(1).
			Return(domain.Session{
				ID:           payload.ID,
				Username:     "somebody-else",
				RefreshToken: refreshToken,
				ExpiresAt:    payload.ExpiredAt,
			}, nil)

		_, _, err := service.RenewAccessToken(context.Background(), refreshToken)
		require.ErrorIs(t, err, domain.ErrInvalidUser)
	})

	t.Run("MismatchedToken", func(t *testing.T) {
		t.Parallel()

		service, repo, tokenMaker := newTestService(t)
		refreshToken, payload := issue(t, tokenMaker)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Eq(payload.ID)).
			Times(1).
			Return(domain.Session{
				ID:           payload.ID,
				Username:     username,
				RefreshToken: "another-token",
				ExpiresAt:    payload.ExpiredAt,
			}, nil)

		_, _, err := service.RenewAccessToken(context.Background(), refreshToken)
		require.ErrorIs(t, err, domain.ErrMismatchedRefreshToken)
	})

	t.Run("ExpiredSession", func(t *testing.T) {
		t.Parallel()

		service, repo, tokenMaker := newTestService(t)
		refreshToken, payload := issue(t, tokenMaker)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Eq(payload.ID)).
			Times(1).
			Return(domain.Session{
				ID:           payload.ID,
				Username:     username,
				RefreshToken: refreshToken,
				ExpiresAt:    time.Now().Add(-time.Minute),
			}, nil)

		_, _, err := service.RenewAccessToken(context.Background(), refreshToken)
		require.ErrorIs(t, err, domain.ErrExpiredSession)
	})

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		service, repo, tokenMaker := newTestService(t)
		refreshToken, payload := issue(t, tokenMaker)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Eq(payload.ID)).
			Times(1).
			Return(domain.Session{
				ID:           payload.ID,
				Username:     username,
				RefreshToken: refreshToken,
				ExpiresAt:    payload.ExpiredAt,
			}, nil)

		accessToken, expiresAt, err := service.RenewAccessToken(context.Background(), refreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, accessToken)
		require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Minute)

		got, err := service.TokenMaker.VerifyToken(accessToken)
		require.NoError(t, err)
		require.Equal(t, username, got.Username)
	})
}
