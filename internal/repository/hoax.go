package repository

import (
	"database/sql"
	"errors"

	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrHoaxNotFound = errors.New("hoax not found")
)

// HoaxWithOwner is a hoax listing row joined with its owner summary and
// attachment, if any.
type HoaxWithOwner struct {
	model.Hoax
	Username           string  `db:"username"`
	Email              string  `db:"email"`
	Image              *string `db:"image"`
	AttachmentFilename *string `db:"attachment_filename"`
	AttachmentType     *string `db:"attachment_type"`
}

type HoaxRepository interface {
	Create(hoax *model.Hoax) error
	ByID(id string) (*model.Hoax, error)
	ByUser(userID string) ([]*model.Hoax, error)
	List(page, size int, userID string) ([]*HoaxWithOwner, int, error)
	Delete(id string) error
}

type hoaxRepository struct {
	db *sqlx.DB
}

func NewHoaxRepository(db *sqlx.DB) HoaxRepository {
	return &hoaxRepository{db: db}
}

func (r *hoaxRepository) Create(hoax *model.Hoax) error {
	query := `INSERT INTO hoaxes (id, content, timestamp, user_id) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, hoax.ID, hoax.Content, hoax.Timestamp, hoax.UserID)
	return err
}

func (r *hoaxRepository) ByID(id string) (*model.Hoax, error) {
	hoax := &model.Hoax{}
	query := `SELECT * FROM hoaxes WHERE id = $1`

	err := r.db.Get(hoax, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrHoaxNotFound
	}

	return hoax, err
}

func (r *hoaxRepository) ByUser(userID string) ([]*model.Hoax, error) {
	hoaxes := []*model.Hoax{}
	query := `SELECT * FROM hoaxes WHERE user_id = $1`

	err := r.db.Select(&hoaxes, query, userID)
	if err != nil {
		return nil, err
	}

	return hoaxes, nil
}

// List returns a page of hoaxes newest first, joined with owner and
// attachment details. An empty userID lists hoaxes of all users.
func (r *hoaxRepository) List(page, size int, userID string) ([]*HoaxWithOwner, int, error) {
	hoaxes := []*HoaxWithOwner{}
	query := `
		SELECT h.id, h.content, h.timestamp, h.user_id,
		       u.username, u.email, u.image,
		       a.filename AS attachment_filename, a.file_type AS attachment_type
		FROM hoaxes h
		JOIN users u ON u.id = h.user_id
		LEFT JOIN attachments a ON a.hoax_id = h.id
		WHERE ($1 = '' OR h.user_id = $1)
		ORDER BY h.timestamp DESC
		LIMIT $2 OFFSET $3
	`

	err := r.db.Select(&hoaxes, query, userID, size, page*size)
	if err != nil {
		return nil, 0, err
	}

	var count int
	countQuery := `SELECT COUNT(*) FROM hoaxes WHERE ($1 = '' OR user_id = $1)`
	err = r.db.Get(&count, countQuery, userID)
	if err != nil {
		return nil, 0, err
	}

	return hoaxes, count, nil
}

func (r *hoaxRepository) Delete(id string) error {
	query := `DELETE FROM hoaxes WHERE id = $1`

	_, err := r.db.Exec(query, id)
	return err
}
