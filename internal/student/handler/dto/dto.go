package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type AddStudentRequest struct {
	StudentNombre  string `json:"student_nombre" validate:"required"`
	StudentSurname string `json:"student_surname" validate:"required"`
	Rut            string `json:"rut" validate:"required"`
	StudentSchool  string `json:"student_school" validate:"required"`
	StudentHome    string `json:"student_home" validate:"required"`
}

func (r *AddStudentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type UpdateStudentRequest struct {
	StudentID      int    `json:"student_id" validate:"required"`
	StudentNombre  string `json:"student_nombre" validate:"required"`
	StudentSurname string `json:"student_surname" validate:"required"`
	Rut            string `json:"rut" validate:"required"`
	StudentSchool  string `json:"student_school" validate:"required"`
	StudentHome    string `json:"student_home" validate:"required"`
}

func (r *UpdateStudentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

type StudentCountResponse struct {
	Count int `json:"count"`
}
