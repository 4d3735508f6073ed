package model

import (
	"time"
)

// Attachment is an uploaded file pending or already bound to a hoax.
// HoaxID stays nil until a hoax submission references the attachment;
// unbound attachments past the retention window are reaped.
type Attachment struct {
	ID         string    `db:"id"`
	Filename   string    `db:"filename"`
	FileType   *string   `db:"file_type"` // nil when the content type could not be detected
	UploadDate time.Time `db:"upload_date"`
	HoaxID     *string   `db:"hoax_id"`
}

func (a *Attachment) IsAssociated() bool {
	return a.HoaxID != nil
}
