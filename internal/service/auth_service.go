package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"intranet/internal/apperr"
	"intranet/internal/domain"
	"intranet/internal/metrics"
	"intranet/internal/repository"
)

const defaultTokenTTL = 24 * time.Hour

var (
	ErrMissingToken     = apperr.Unauthenticated("missing token")
	ErrInvalidToken     = apperr.Unauthenticated("invalid or expired token")
	ErrTokenNotFound    = apperr.Unauthenticated("token not found")
	ErrTokenRevoked     = apperr.Unauthenticated("token revoked")
	ErrTokenExpired     = apperr.Unauthenticated("token expired")
	ErrInsufficientRole = apperr.Forbidden("insufficient role")
	// ErrUnknownToken lo devuelve Revoke cuando no hay registro para el token.
	ErrUnknownToken = apperr.NotFound("token not found")
)

// IssuedToken es lo que recibe el cliente al iniciar sesion.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService emite, valida y revoca bearer tokens. Mantiene un solo token
// valido por usuario: cada login invalida los anteriores.
type AuthService struct {
	logger *zap.Logger
	tokens repository.SessionTokenRepository
	jwt    *JWTService
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(logger *zap.Logger, tokens repository.SessionTokenRepository, jwtSvc *JWTService, ttl time.Duration) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		logger: logger,
		tokens: tokens,
		jwt:    jwtSvc,
		ttl:    ttl,
		now:    time.Now,
	}
}

var ttlPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseTTL interpreta "<entero><unidad>" con unidad s, m, h o d. Cualquier otra
// entrada, o una duracion no positiva o que desborda, cae en 24h.
func ParseTTL(raw string) time.Duration {
	m := ttlPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return defaultTokenTTL
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return defaultTokenTTL
	}
	unit := map[string]time.Duration{
		"s": time.Second,
		"m": time.Minute,
		"h": time.Hour,
		"d": 24 * time.Hour,
	}[m[2]]
	if time.Duration(n) > math.MaxInt64/unit {
		return defaultTokenTTL
	}
	return time.Duration(n) * unit
}

// BearerToken extrae el token de un header Authorization con esquema Bearer.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return token, token != ""
}

// Issue firma un token nuevo y, en una sola transaccion, invalida los tokens
// vigentes del usuario y persiste el nuevo.
func (s *AuthService) Issue(ctx context.Context, userID, email string, role domain.Role) (IssuedToken, error) {
	now := s.now().UTC()
	cred := domain.Credential{UserID: userID, Email: email, Role: role}

	signed, jti, err := s.jwt.Sign(cred, now, s.ttl)
	if err != nil {
		return IssuedToken{}, apperr.Internal("could not sign token", err)
	}

	record := domain.SessionToken{
		ID:        jti,
		UserID:    userID,
		TokenHash: hashToken(signed),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		IsValid:   true,
	}

	var superseded int64
	err = s.tokens.WithTx(ctx, func(repo repository.SessionTokenRepository) error {
		n, err := repo.InvalidateActiveByUser(ctx, userID, now)
		if err != nil {
			return err
		}
		superseded = n
		return repo.Create(ctx, record)
	})
	if err != nil {
		return IssuedToken{}, repoError(err, ErrUserNotFound, "could not persist session")
	}

	metrics.TokensIssued.Inc()
	metrics.TokensSuperseded.Add(float64(superseded))
	if superseded > 0 {
		s.logger.Info("previous sessions invalidated", zap.String("user_id", userID), zap.Int64("count", superseded))
	}

	return IssuedToken{Token: signed, ExpiresAt: record.ExpiresAt}, nil
}

// Authenticate valida el header Authorization. Los pasos cortan en la primera
// falla: esquema, firma, registro, revocacion y por ultimo expiracion, que es
// el unico paso que escribe (marca el registro como invalido).
func (s *AuthService) Authenticate(ctx context.Context, authorization string) (domain.Credential, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return domain.Credential{}, s.reject("missing", ErrMissingToken)
	}

	claims, err := s.jwt.ParseIgnoringExpiry(token)
	if err != nil {
		return domain.Credential{}, s.reject("invalid", ErrInvalidToken)
	}

	record, err := s.tokens.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Credential{}, s.reject("not_found", ErrTokenNotFound)
		}
		return domain.Credential{}, apperr.Internal("could not load session", err)
	}

	if !record.IsValid {
		return domain.Credential{}, s.reject("revoked", ErrTokenRevoked)
	}

	if s.now().UTC().After(record.ExpiresAt) {
		if err := s.tokens.Invalidate(ctx, record.ID, nil); err != nil {
			s.logger.Warn("mark expired token invalid failed", zap.Error(err), zap.String("token_id", record.ID))
		}
		return domain.Credential{}, s.reject("expired", ErrTokenExpired)
	}

	return claims.Credential(), nil
}

// Authorize autentica y, si se indican roles, exige que la credencial tenga uno.
func (s *AuthService) Authorize(ctx context.Context, authorization string, roles ...domain.Role) (domain.Credential, error) {
	cred, err := s.Authenticate(ctx, authorization)
	if err != nil {
		return domain.Credential{}, err
	}
	if len(roles) > 0 && !slices.Contains(roles, cred.Role) {
		metrics.AuthFailures.WithLabelValues("forbidden").Inc()
		return domain.Credential{}, ErrInsufficientRole
	}
	return cred, nil
}

// Revoke invalida el token indicado (logout).
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrUnknownToken
	}
	record, err := s.tokens.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		return repoError(err, ErrUnknownToken, "could not load session")
	}
	now := s.now().UTC()
	if err := s.tokens.Invalidate(ctx, record.ID, &now); err != nil {
		return repoError(err, ErrUnknownToken, "could not revoke session")
	}
	return nil
}

func (s *AuthService) reject(reason string, err *apperr.Error) error {
	metrics.AuthFailures.WithLabelValues(reason).Inc()
	return err
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
