// Package services реализует выпуск токенов JWT и хеширование паролей bcrypt.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/services"
	svc "gonotes/internal/notes/ports/services"
	"gonotes/pkg/logger"
)

const (
	methodGenerateAccessToken = "ServiceJWT.GenerateAccessToken"
	methodValidateAccessToken = "ServiceJWT.ValidateAccessToken"

	msgGeneratingAccessToken = "generating access token"
	msgTokenGenerated        = "token generated successfully"
	msgTokenValidated        = "token validated successfully"
	msgTokenExpired          = "token has expired"
	msgInvalidToken          = "invalid token"
	msgEmptySecretKey        = "empty secret key provided"

	errSigningToken       = "error signing token" //nolint:gosec
	errCtxGeneratingToken = "generating token"
	errCtxValidatingToken = "validating token"
)

// Claims - содержимое токена в формате библиотеки JWT.
type Claims struct {
	jwt.RegisteredClaims
}

// ServiceJWT выпускает и проверяет токены HS256.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

var _ svc.TokenService = (*ServiceJWT)(nil)

// NewJWT создает сервис JWT.
func NewJWT(config services.JWTConfig) *ServiceJWT {
	return &ServiceJWT{config: config, now: time.Now}
}

// WithClock подменяет источник времени.
func (s *ServiceJWT) WithClock(now func() time.Time) *ServiceJWT {
	s.now = now
	return s
}

// GenerateAccessToken выпускает токен с sub = userID и случайным jti.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID int64) (string, *services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateAccessToken), zap.Int64("user_id", userID))
	log.Debug(ctx, msgGeneratingAccessToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecretKey)
		return "", nil, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := s.now().Truncate(time.Second)
	claims := &services.TokenClaims{
		UserID:    userID,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TokenTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(claims, s.config.Issuer))
	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expires_at", claims.ExpiresAt))
	return signed, claims, nil
}

// ValidateAccessToken проверяет подпись, срок действия и содержимое токена.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (*services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	parsed := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(*jwt.Token) (any, error) {
		return s.config.SecretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}
	if !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	claims, err := jwtToDomainClaims(parsed)
	if err != nil {
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrInvalidJWTToken, err)
	}

	log.Debug(ctx, msgTokenValidated, zap.Int64("user_id", claims.UserID))
	return claims, nil
}

func domainToJWTClaims(claims *services.TokenClaims, issuer string) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(claims.UserID, 10),
			ID:        claims.TokenID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
}

var (
	errBadSubject = errors.New("subject is not a positive user id")
	errNoTokenID  = errors.New("token id is empty")
)

func jwtToDomainClaims(claims *Claims) (*services.TokenClaims, error) {
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, errBadSubject
	}
	if claims.ID == "" {
		return nil, errNoTokenID
	}

	out := &services.TokenClaims{UserID: userID, TokenID: claims.ID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
