package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"intranet/internal/domain"
)

// JWTService firma y valida los bearer tokens de sesion.
type JWTService struct {
	secret []byte
	issuer string
}

type Claims struct {
	UserID string      `json:"uid"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewJWTService(secret, issuer string) *JWTService {
	if strings.TrimSpace(issuer) == "" {
		issuer = "intranet"
	}
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Sign emite un token HS256 con un jti unico, de modo que dos logins en el
// mismo segundo nunca producen el mismo string.
func (s *JWTService) Sign(cred domain.Credential, now time.Time, ttl time.Duration) (string, string, error) {
	if len(s.secret) == 0 {
		return "", "", ErrJWTInvalid
	}
	jti := uuid.NewString()
	claims := Claims{
		UserID: cred.UserID,
		Email:  cred.Email,
		Role:   cred.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   cred.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	return signed, jti, err
}

func (s *JWTService) Parse(tokenString string) (Claims, error) {
	return s.parse(tokenString)
}

// ParseIgnoringExpiry valida firma, algoritmo y claims pero no exp. La sesion
// persistida es la que decide si el token vencio.
func (s *JWTService) ParseIgnoringExpiry(tokenString string) (Claims, error) {
	return s.parse(tokenString, jwt.WithoutClaimsValidation())
}

func (s *JWTService) parse(tokenString string, opts ...jwt.ParserOption) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrJWTInvalid
	}

	var claims Claims
	opts = append([]jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}, opts...)
	parser := jwt.NewParser(opts...)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	if !s.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (c Claims) Credential() domain.Credential {
	return domain.Credential{
		UserID: c.UserID,
		Email:  c.Email,
		Role:   c.Role,
	}
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.UserID) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	if !claims.Role.Valid() {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
