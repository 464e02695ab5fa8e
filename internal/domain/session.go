package domain

import "time"

// SessionToken es el registro persistido de un bearer token emitido en login.
// Como maximo un token por usuario tiene IsValid en true.
type SessionToken struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	TokenHash string     `json:"-"`
	IssuedAt  time.Time  `json:"issuedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	IsValid   bool       `json:"isValid"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
}

// Credential se reconstruye en cada request a partir del token firmado.
type Credential struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
