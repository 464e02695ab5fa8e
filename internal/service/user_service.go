package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"intranet/internal/apperr"
	"intranet/internal/domain"
	"intranet/internal/metrics"
	"intranet/internal/repository"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = apperr.Unauthenticated("invalid credentials")
	ErrInvalidEmail       = apperr.Validation("invalid email")
	ErrInvalidName        = apperr.Validation("name is required")
	ErrInvalidRole        = apperr.Validation("role must be student or professor")
	ErrWeakPassword       = apperr.Validation("password must have at least 6 characters")
	ErrEmailTaken         = apperr.Conflict("email already registered")
	ErrTooManyAttempts    = apperr.New(apperr.KindRateLimited, "too many login attempts")
	ErrUserInUse          = apperr.Conflict("user still teaches courses")
)

// UserService coordina reglas de negocio para usuarios.
type UserService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	limiter LoginRateLimiter
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, limiter LoginRateLimiter) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewLoginRateLimiter(15*time.Minute, 5)
	}
	return &UserService{
		logger:  logger,
		users:   users,
		limiter: limiter,
	}
}

type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// UpdateUserInput aplica solo los campos no nil.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
	Role     *domain.Role
}

// Register crea una cuenta publica; siempre con rol estudiante.
func (s *UserService) Register(ctx context.Context, input CreateUserInput) (domain.User, error) {
	input.Role = domain.RoleStudent
	return s.Create(ctx, input)
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (domain.User, error) {
	email := normalizeEmail(input.Email)
	if !looksLikeEmail(email) {
		return domain.User{}, ErrInvalidEmail
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.User{}, ErrInvalidName
	}
	if !input.Role.Valid() {
		return domain.User{}, ErrInvalidRole
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         input.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, apperr.Internal("could not create user", err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// VerifyCredentials comprueba email y password. Los intentos fallidos cuentan
// contra el rate limiter; un login correcto reinicia el contador.
func (s *UserService) VerifyCredentials(ctx context.Context, emailAddr, password string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return domain.User{}, ErrInvalidCredentials
	}
	if !s.limiter.Allow(emailAddr) {
		metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
		return domain.User{}, ErrTooManyAttempts
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, apperr.Internal("could not load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return domain.User{}, ErrInvalidCredentials
	}

	s.limiter.Reset(emailAddr)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.User{}, repoError(err, ErrUserNotFound, "could not load user")
	}
	return user, nil
}

// List devuelve los usuarios, filtrando por rol si role no es vacio.
func (s *UserService) List(ctx context.Context, role string) ([]domain.User, error) {
	r := domain.Role(strings.ToLower(strings.TrimSpace(role)))
	if r != "" && !r.Valid() {
		return nil, ErrInvalidRole
	}
	users, err := s.users.List(ctx, r)
	if err != nil {
		return nil, apperr.Internal("could not list users", err)
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if !looksLikeEmail(email) {
			return domain.User{}, ErrInvalidEmail
		}
		user.Email = email
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domain.User{}, ErrInvalidName
		}
		user.Name = name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return domain.User{}, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, repoError(err, ErrUserNotFound, "could not update user")
	}
	return user, nil
}

// Delete borra el usuario junto con sus tokens de sesion y matriculas. Un
// profesor con cursos asignados no se puede borrar.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrUserInUse
		}
		return repoError(err, ErrUserNotFound, "could not delete user")
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal("could not hash password", err)
	}
	return string(hashBytes), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func looksLikeEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
