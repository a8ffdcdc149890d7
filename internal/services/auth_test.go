package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
)

func newAuthFixture(t *testing.T) (*authService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	svc := NewAuthService(testLogger(t), users, "test-secret", time.Hour).(*authService)
	svc.bcryptCost = bcrypt.MinCost
	return svc, users
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	pub, err := svc.Register(ctx, types.RegisterInput{Name: "Ann", Email: " Ann@Example.com ", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", pub.Email)

	stored, err := users.GetByID(ctx, pub.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.Password, "password must be hashed")

	_, err = svc.Register(ctx, types.RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "hunter22"})
	requireAPIError(t, err, http.StatusConflict, apierr.CodeConflict, "")

	tok, me, err := svc.Login(ctx, types.LoginInput{Email: "ann@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, pub.ID, me.ID)
	assert.NotEmpty(t, tok)

	authed, err := svc.SetContextFromToken(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, pub.ID, ctxutil.CallerID(authed))
	assert.NotEmpty(t, ctxutil.GetRequestData(authed).TokenID)

	_, _, err = svc.Login(ctx, types.LoginInput{Email: "ann@example.com", Password: "wrong"})
	requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeUnauthorized, msgBadCredentials)
	_, _, err = svc.Login(ctx, types.LoginInput{Email: "nobody@example.com", Password: "x"})
	requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeUnauthorized, msgBadCredentials)
}

func TestAuthRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), types.RegisterInput{Name: "A", Email: "a@b.co", Password: "123"})
	requireAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation, `"password" length must be at least 6 characters long`)
}

func TestAuthRejectsBadTokens(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()
	sub := types.NewID()

	sign := func(secret string, method jwt.SigningMethod, claims JWTClaims) string {
		tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}
	valid := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	expired := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	badSubject := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"wrong secret": sign("other-secret", jwt.SigningMethodHS256, valid),
		"wrong alg":    sign("test-secret", jwt.SigningMethodHS512, valid),
		"expired":      sign("test-secret", jwt.SigningMethodHS256, expired),
		"bad subject":  sign("test-secret", jwt.SigningMethodHS256, badSubject),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := svc.SetContextFromToken(ctx, tok)
			requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeUnauthorized, "")
			assert.Empty(t, ctxutil.CallerID(out))
		})
	}

	ok, err := svc.SetContextFromToken(ctx, sign("test-secret", jwt.SigningMethodHS256, valid))
	require.NoError(t, err)
	assert.Equal(t, sub, ctxutil.CallerID(ok))
}

func TestUserServiceGetMe(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(testLogger(t), users)
	ctx := context.Background()

	u, err := users.Create(ctx, &types.User{Name: "Me", Email: "me@x.com", Password: "hash"})
	require.NoError(t, err)

	_, err = svc.GetMe(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeUnauthorized, "")

	me, err := svc.GetMe(ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: u.ID}))
	require.NoError(t, err)
	assert.Equal(t, "me@x.com", me.Email)
}
