package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"letsparkit/internal/shared/config"
	"letsparkit/internal/users"
	"letsparkit/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)

type Service interface {
	SignIn(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	SignUp(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	SignOut(ctx context.Context, accessTokenID string, accessExpiresAt time.Time, refreshToken string) error
	Restore(ctx context.Context, userID string) (*UserResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*JWTClaims, error)
}

type service struct {
	repo        users.Repository
	revocations RevocationStore
	config      *config.Config
	bcryptCost  int
	logger      *logger.Logger
	now         func() time.Time
}

func NewService(repo users.Repository, revocations RevocationStore, cfg *config.Config) Service {
	if revocations == nil {
		revocations = NewMemoryRevocationStore()
	}
	return &service{
		repo:        repo,
		revocations: revocations,
		config:      cfg,
		bcryptCost:  cfg.Seed.BcryptCost,
		logger:      logger.GetDefault().WithComponent("auth"),
		now:         time.Now,
	}
}

func (s *service) SignIn(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.LogAuthSuccess(ctx, user.ID, "password")
	return s.authResponse(user)
}

func (s *service) SignUp(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// role is never taken from the request
	user := &users.User{
		ID:           "user-" + uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        users.NormalizeEmail(req.Email),
		PasswordHash: string(hashedPassword),
		Role:         users.RoleUser,
		Phone:        req.Phone,
		CreatedAt:    s.now(),
	}
	if req.Vehicle != nil {
		user.Vehicle = &users.Vehicle{
			Type:   req.Vehicle.Type,
			Number: strings.ToUpper(strings.TrimSpace(req.Vehicle.Number)),
		}
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, users.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.logger.LogAuthSuccess(ctx, user.ID, "sign_up")
	return s.authResponse(user)
}

// SignOut revokes the access token and, when given, the refresh token
func (s *service) SignOut(ctx context.Context, accessTokenID string, accessExpiresAt time.Time, refreshToken string) error {
	if accessTokenID != "" {
		if err := s.revocations.Revoke(ctx, accessTokenID, accessExpiresAt); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
	}

	if refreshToken == "" {
		return nil
	}
	claims, err := s.parseToken(refreshToken)
	if err != nil || claims.Type != tokenTypeRefresh {
		// an unusable refresh token needs no revocation
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *service) Restore(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// RefreshToken rotates the pair; the presented refresh token is revoked
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != tokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	// Verify user still exists
	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	return s.generateTokenPair(user)
}

func (s *service) ValidateToken(ctx context.Context, tokenString string) (*JWTClaims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (s *service) authResponse(user *users.User) (*AuthResponse, error) {
	tokenPair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:         toUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) generateTokenPair(user *users.User) (*TokenPair, error) {
	now := s.now()

	accessTokenString, err := s.signToken(user, tokenTypeAccess, now, s.config.JWT.JWTExpiresIn)
	if err != nil {
		return nil, err
	}
	refreshTokenString, err := s.signToken(user, tokenTypeRefresh, now, s.config.JWT.RefreshExpiresIn)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) signToken(user *users.User, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    s.config.JWT.Issuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *service) parseToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
