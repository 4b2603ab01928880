package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CreateRequestRequest struct {
	DriverID int    `json:"driver_id" validate:"required,gt=0"`
	Message  string `json:"message" validate:"required"`
}

func (r *CreateRequestRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type CreateRequestResponse struct {
	Message   string `json:"message"`
	RequestID int    `json:"request_id"`
}
