package model

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestAccepted RequestStatus = "ACCEPTED"
	RequestRejected RequestStatus = "REJECTED"
)

// Request is a tutor's transport petition to a driver.
type Request struct {
	RequestID int           `db:"request_id" json:"request_id"`
	TutorID   int           `db:"tutor_id" json:"tutor_id"`
	DriverID  int           `db:"driver_id" json:"driver_id"`
	Status    RequestStatus `db:"status" json:"status"`
	Message   string        `db:"message" json:"message"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
