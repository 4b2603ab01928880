package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"kowapp/internal/tutor/model"
)

var validate = validator.New()

type RegisterTutorRequest struct {
	Names                  string `json:"names" validate:"required"`
	Surnames               string `json:"surnames" validate:"required"`
	Rut                    string `json:"rut" validate:"required"`
	Email                  string `json:"email" validate:"required,email"`
	Number                 string `json:"number" validate:"required"`
	EmergencyContactNumber string `json:"emergency_contact_number" validate:"required"`
	Password               string `json:"password" validate:"required,min=8"`
	Address                string `json:"address" validate:"required"`
	EmergencyAddress       string `json:"emergency_address" validate:"required"`
}

func (r *RegisterTutorRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type RegisterTutorResponse struct {
	Message string `json:"message"`
	TutorID int    `json:"tutor_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type LoginResponse struct {
	Message string      `json:"message"`
	Tutor   model.Tutor `json:"tutor"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

func (r *VerifyEmailRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type IdentifyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *IdentifyRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type VerifyRecoveryCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

func (r *VerifyRecoveryCodeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type ProfilePictureResponse struct {
	URL string `json:"url"`
}
