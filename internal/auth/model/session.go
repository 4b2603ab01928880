package model

import "time"

// Session is the server-side record of a tutor's login. At most one row per
// tutor may have IsActive=true.
type Session struct {
	ID        int       `db:"id" json:"id"`
	TutorID   int       `db:"tutor_id" json:"tutor_id"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
