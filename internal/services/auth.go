package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/contactbook-backend/internal/data/repos"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

const (
	msgBadCredentials = "invalid email or password"
	msgEmailTaken     = "user with that email already exists"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, in types.RegisterInput) (*types.PublicUser, error)
	Login(ctx context.Context, in types.LoginInput) (string, *types.PublicUser, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
	bcryptCost   int
	now          func() time.Time
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &authService{
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		bcryptCost:   bcrypt.DefaultCost,
		now:          time.Now,
	}
}

func (as *authService) Register(ctx context.Context, in types.RegisterInput) (*types.PublicUser, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validatePayload(in); err != nil {
		return nil, err
	}
	exists, err := as.userRepo.EmailExists(ctx, in.Email)
	if err != nil {
		as.log.Error("email lookup failed", "error", err)
		return nil, apierr.Store("check email", err)
	}
	if exists {
		return nil, apierr.Conflict(msgEmailTaken)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	created, err := as.userRepo.Create(ctx, &types.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
	})
	if errors.Is(err, repos.ErrDuplicate) {
		return nil, apierr.Conflict(msgEmailTaken)
	}
	if err != nil {
		as.log.Error("create user failed", "error", err)
		return nil, apierr.Store("create user", err)
	}
	as.log.Info("user registered", "user_id", created.ID)
	return created.Public(), nil
}

func (as *authService) Login(ctx context.Context, in types.LoginInput) (string, *types.PublicUser, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validatePayload(in); err != nil {
		return "", nil, err
	}
	u, err := as.userRepo.GetByEmail(ctx, in.Email)
	if errors.Is(err, repos.ErrNotFound) {
		return "", nil, apierr.Unauthorized(msgBadCredentials)
	}
	if err != nil {
		as.log.Error("load user failed", "error", err)
		return "", nil, apierr.Store("find user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		as.log.Warn("password mismatch", "user_id", u.ID)
		return "", nil, apierr.Unauthorized(msgBadCredentials)
	}
	tok, err := as.generateAccessToken(u)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return tok, u.Public(), nil
}

func (as *authService) generateAccessToken(u *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken verifies tokenString and returns ctx carrying the caller.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized(msgNoCaller)
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Unauthorized("invalid or expired token")
	}
	if !types.IsValidID(claims.Subject) {
		return ctx, apierr.Unauthorized("invalid user id in token")
	}
	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		TokenID:     claims.ID,
		UserID:      claims.Subject,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
