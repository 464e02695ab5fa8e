package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"intranet/internal/domain"
)

// SessionTokenRepository persiste los bearer tokens emitidos en login.
type SessionTokenRepository interface {
	Create(ctx context.Context, token domain.SessionToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (domain.SessionToken, error)
	// InvalidateActiveByUser marca como invalidos todos los tokens vigentes del usuario.
	InvalidateActiveByUser(ctx context.Context, userID string, revokedAt time.Time) (int64, error)
	// Invalidate marca un token como invalido; revokedAt nil conserva el valor actual.
	Invalidate(ctx context.Context, id string, revokedAt *time.Time) error
	// WithTx ejecuta fn dentro de una transaccion con un repositorio ligado a ella.
	WithTx(ctx context.Context, fn func(repo SessionTokenRepository) error) error
}

type PgSessionTokenRepository struct {
	db DBTX
}

func NewPgSessionTokenRepository(db DBTX) *PgSessionTokenRepository {
	return &PgSessionTokenRepository{db: db}
}

func (r *PgSessionTokenRepository) Create(ctx context.Context, token domain.SessionToken) error {
	const query = `
		INSERT INTO session_tokens (id, user_id, token_hash, issued_at, expires_at, is_valid, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.IssuedAt,
		token.ExpiresAt,
		token.IsValid,
		token.RevokedAt,
	)
	return translate(err)
}

func (r *PgSessionTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (domain.SessionToken, error) {
	const query = `
		SELECT id, user_id, token_hash, issued_at, expires_at, is_valid, revoked_at
		FROM session_tokens
		WHERE token_hash = $1
	`
	var token domain.SessionToken
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.IssuedAt,
		&token.ExpiresAt,
		&token.IsValid,
		&token.RevokedAt,
	)
	if err != nil {
		return domain.SessionToken{}, err
	}
	return token, nil
}

// InvalidateActiveByUser bloquea la fila del usuario antes de actualizar, de modo
// que dos logins concurrentes dentro de WithTx se serializan.
func (r *PgSessionTokenRepository) InvalidateActiveByUser(ctx context.Context, userID string, revokedAt time.Time) (int64, error) {
	var locked string
	if err := r.db.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&locked); err != nil {
		return 0, err
	}

	const query = `
		UPDATE session_tokens
		SET is_valid = FALSE, revoked_at = $2
		WHERE user_id = $1 AND is_valid
	`
	tag, err := r.db.Exec(ctx, query, userID, revokedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgSessionTokenRepository) Invalidate(ctx context.Context, id string, revokedAt *time.Time) error {
	const query = `
		UPDATE session_tokens
		SET is_valid = FALSE, revoked_at = COALESCE($2, revoked_at)
		WHERE id = $1
	`
	return affected(r.db.Exec(ctx, query, id, revokedAt))
}

func (r *PgSessionTokenRepository) WithTx(ctx context.Context, fn func(repo SessionTokenRepository) error) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&PgSessionTokenRepository{db: tx})
	})
}
