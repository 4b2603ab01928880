package model

import "time"

// Tutor is a guardian account. The password hash never leaves the server:
// it is excluded from JSON serialization entirely.
type Tutor struct {
	ID                     int       `db:"id" json:"id"`
	Names                  string    `db:"names" json:"names"`
	Surnames               string    `db:"surnames" json:"surnames"`
	Rut                    string    `db:"rut" json:"rut"`
	Email                  string    `db:"email" json:"email"`
	Number                 string    `db:"number" json:"number"`
	EmergencyContactNumber string    `db:"emergency_contact_number" json:"emergency_contact_number"`
	Password               string    `db:"password" json:"-"`
	Address                string    `db:"address" json:"address"`
	EmergencyAddress       string    `db:"emergency_address" json:"emergency_address"`
	EmailVerified          bool      `db:"email_verified" json:"email_verified"`
	ProfileImageURL        string    `db:"profile_image_url" json:"profile_image_url,omitempty"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}
