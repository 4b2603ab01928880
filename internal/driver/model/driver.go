package model

import "time"

// Driver is a transport-provider account. Column names carry over from the
// production schema (dni_number is the driver's RUT, passwrd the hash).
type Driver struct {
	ID                       int       `db:"id" json:"id"`
	DriverName               string    `db:"driver_name" json:"driver_name"`
	DriverSurnames           string    `db:"driver_surnames" json:"driver_surnames"`
	DniNumber                string    `db:"dni_number" json:"dni_number"`
	DriverEmail              string    `db:"driver_email" json:"driver_email"`
	CellphoneNumber          string    `db:"cellphone_number" json:"cellphone_number"`
	EmergencyCellphoneNumber string    `db:"emergency_cellphone_number" json:"emergency_cellphone_number"`
	Password                 string    `db:"passwrd" json:"-"`
	VehicleModel             string    `db:"vehicle_model" json:"vehicle_model"`
	VehicleLicense           string    `db:"vehicle_license" json:"vehicle_license"`
	VehicleCapacity          int       `db:"vehicle_capacity" json:"vehicle_capacity"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
}
