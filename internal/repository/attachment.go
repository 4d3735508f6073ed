package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/hoaxify/hoaxify/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
)

type AttachmentRepository interface {
	Create(attachment *model.Attachment) error
	ByID(id string) (*model.Attachment, error)
	ByHoax(hoaxID string) (*model.Attachment, error)
	Associate(id, hoaxID string) error
	OrphansBefore(cutoff time.Time) ([]*model.Attachment, error)
	DeleteIfUnassociated(id string) (bool, error)
	Delete(id string) error
}

type attachmentRepository struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(attachment *model.Attachment) error {
	query := `INSERT INTO attachments (id, filename, file_type, upload_date, hoax_id)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		attachment.ID,
		attachment.Filename,
		attachment.FileType,
		attachment.UploadDate,
		attachment.HoaxID,
	)
	return err
}

func (r *attachmentRepository) ByID(id string) (*model.Attachment, error) {
	attachment := &model.Attachment{}
	query := `SELECT * FROM attachments WHERE id = $1`

	err := r.db.Get(attachment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAttachmentNotFound
	}

	return attachment, err
}

func (r *attachmentRepository) ByHoax(hoaxID string) (*model.Attachment, error) {
	attachment := &model.Attachment{}
	query := `SELECT * FROM attachments WHERE hoax_id = $1`

	err := r.db.Get(attachment, query, hoaxID)
	if err == sql.ErrNoRows {
		return nil, ErrAttachmentNotFound
	}

	return attachment, err
}

// Associate binds an attachment to a hoax. The conditional update makes
// the first association permanent: a row that already has a hoax_id is
// left untouched, and a nonexistent id matches zero rows. Both cases are
// silent no-ops so a stale attachment reference never fails hoax creation.
func (r *attachmentRepository) Associate(id, hoaxID string) error {
	query := `UPDATE attachments SET hoax_id = $1 WHERE id = $2 AND hoax_id IS NULL`

	_, err := r.db.Exec(query, hoaxID, id)
	return err
}

func (r *attachmentRepository) OrphansBefore(cutoff time.Time) ([]*model.Attachment, error) {
	attachments := []*model.Attachment{}
	query := `SELECT * FROM attachments WHERE hoax_id IS NULL AND upload_date < $1`

	err := r.db.Select(&attachments, query, cutoff)
	if err != nil {
		return nil, err
	}

	return attachments, nil
}

// DeleteIfUnassociated removes the row only while it is still unbound,
// so an association that lands between the reaper's query and its delete
// wins and the row survives. Returns whether a row was removed.
func (r *attachmentRepository) DeleteIfUnassociated(id string) (bool, error) {
	query := `DELETE FROM attachments WHERE id = $1 AND hoax_id IS NULL`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *attachmentRepository) Delete(id string) error {
	query := `DELETE FROM attachments WHERE id = $1`

	_, err := r.db.Exec(query, id)
	return err
}
