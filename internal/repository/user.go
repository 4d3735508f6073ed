package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	ByActivationToken(token string) (*model.User, error)
	ByPasswordResetToken(token string) (*model.User, error)
	ListActive(page, size int, excludeID string) ([]*model.User, int, error)
	Update(user *model.User) error
	Delete(id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, inactive, activation_token, password_reset_token, image, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Inactive,
		user.ActivationToken,
		user.PasswordResetToken,
		user.Image,
		user.CreatedAt,
	)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			if strings.Contains(errStr, "email") {
				return ErrDuplicateEmail
			}
			return ErrDuplicateUsername
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByActivationToken(token string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE activation_token = $1`

	err := r.db.Get(user, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByPasswordResetToken(token string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE password_reset_token = $1`

	err := r.db.Get(user, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

// ListActive returns a page of active users, excluding the given user id
// so authenticated callers never see themselves in the listing.
func (r *userRepository) ListActive(page, size int, excludeID string) ([]*model.User, int, error) {
	users := []*model.User{}
	query := `SELECT * FROM users WHERE inactive = FALSE AND id != $1 ORDER BY created_at LIMIT $2 OFFSET $3`

	err := r.db.Select(&users, query, excludeID, size, page*size)
	if err != nil {
		return nil, 0, err
	}

	var count int
	countQuery := `SELECT COUNT(*) FROM users WHERE inactive = FALSE AND id != $1`
	err = r.db.Get(&count, countQuery, excludeID)
	if err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET username = $1, email = $2, password_hash = $3, inactive = $4,
	          activation_token = $5, password_reset_token = $6, image = $7 WHERE id = $8`

	_, err := r.db.Exec(query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Inactive,
		user.ActivationToken,
		user.PasswordResetToken,
		user.Image,
		user.ID,
	)
	return err
}

func (r *userRepository) Delete(id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
