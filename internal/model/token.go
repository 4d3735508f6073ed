package model

import (
	"time"
)

// Token is an opaque bearer credential with sliding expiration: the
// expiry window is measured from the last use, not from creation.
type Token struct {
	Token      string    `db:"token"`
	UserID     string    `db:"user_id"`
	LastUsedAt time.Time `db:"last_used_at"`
}

func (t *Token) IsExpired(window time.Duration, now time.Time) bool {
	return now.Sub(t.LastUsedAt) > window
}
