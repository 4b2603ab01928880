package model

import "time"

// Code is a short-lived numeric code tied to an email. Verification and
// recovery codes share the shape; they live in separate tables with separate
// expiry policies.
type Code struct {
	ID         int       `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	Code       string    `db:"code" json:"code"`
	ExpiryDate time.Time `db:"expiry_date" json:"expiry_date"`
}

func (c Code) Expired(now time.Time) bool {
	return !now.Before(c.ExpiryDate)
}
