package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTokenNotFound = errors.New("token not found")
)

type TokenRepository interface {
	Create(token *model.Token) error
	ByToken(token string) (*model.Token, error)
	Touch(token string, usedAt time.Time) error
	Delete(token string) error
	DeleteByUser(userID string) (int64, error)
	DeleteLastUsedBefore(cutoff time.Time) (int64, error)
}

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *model.Token) error {
	query := `INSERT INTO tokens (token, user_id, last_used_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(query, token.Token, token.UserID, token.LastUsedAt)
	return err
}

func (r *tokenRepository) ByToken(token string) (*model.Token, error) {
	t := &model.Token{}
	query := `SELECT * FROM tokens WHERE token = $1`

	err := r.db.Get(t, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}

	return t, err
}

// Touch refreshes the last-used timestamp. Concurrent refreshes of the
// same token are last-write-wins; no ordering guarantee is needed.
func (r *tokenRepository) Touch(token string, usedAt time.Time) error {
	query := `UPDATE tokens SET last_used_at = $1 WHERE token = $2`

	_, err := r.db.Exec(query, usedAt, token)
	return err
}

// Delete removes a single token. Deleting an absent token is not an error.
func (r *tokenRepository) Delete(token string) error {
	query := `DELETE FROM tokens WHERE token = $1`

	_, err := r.db.Exec(query, token)
	return err
}

func (r *tokenRepository) DeleteByUser(userID string) (int64, error) {
	query := `DELETE FROM tokens WHERE user_id = $1`

	result, err := r.db.Exec(query, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *tokenRepository) DeleteLastUsedBefore(cutoff time.Time) (int64, error) {
	query := `DELETE FROM tokens WHERE last_used_at < $1`

	result, err := r.db.Exec(query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
