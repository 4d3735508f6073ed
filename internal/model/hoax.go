package model

type Hoax struct {
	ID      string `db:"id"`
	Content string `db:"content"`
	// Unix milliseconds of submission time
	Timestamp int64  `db:"timestamp"`
	UserID    string `db:"user_id"`
}
