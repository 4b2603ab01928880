package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterDriverRequest struct {
	DriverName               string `json:"driver_name" validate:"required"`
	DriverSurnames           string `json:"driver_surnames" validate:"required"`
	DniNumber                string `json:"dni_number" validate:"required"`
	DriverEmail              string `json:"driver_email" validate:"required,email"`
	CellphoneNumber          string `json:"cellphone_number" validate:"required"`
	EmergencyCellphoneNumber string `json:"emergency_cellphone_number" validate:"required"`
	Password                 string `json:"password" validate:"required,min=8"`
	VehicleModel             string `json:"vehicle_model" validate:"required"`
	VehicleLicense           string `json:"vehicle_license" validate:"required"`
	VehicleCapacity          int    `json:"vehicle_capacity" validate:"required,gt=0"`
}

func (r *RegisterDriverRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type RegisterDriverResponse struct {
	Message  string `json:"message"`
	DriverID int    `json:"driver_id"`
}
