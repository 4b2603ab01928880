package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"kowapp/internal/common/apperr"
	"kowapp/internal/common/logger"
	"kowapp/internal/student/handler/dto"
	"kowapp/internal/student/model"
)

type StudentRepository interface {
	Create(ctx context.Context, student model.Student) (model.Student, error)
	ListByTutor(ctx context.Context, tutorID int) ([]model.Student, error)
	Update(ctx context.Context, student model.Student) error
	Delete(ctx context.Context, studentID, tutorID int) error
	SetAttendance(ctx context.Context, studentID, tutorID int, attending bool) error
	CountByTutor(ctx context.Context, tutorID int) (int, error)
	ExistsRut(ctx context.Context, rut string) (bool, error)
}

// TutorRuts and DriverRuts expose just the RUT lookups the update check needs.
type TutorRuts interface {
	ExistsRut(ctx context.Context, rut string) (bool, error)
}

type DriverRuts interface {
	ExistsDni(ctx context.Context, dni string) (bool, error)
}

type StudentService struct {
	repo    StudentRepository
	tutors  TutorRuts
	drivers DriverRuts
}

func NewStudentService(repo StudentRepository, tutors TutorRuts, drivers DriverRuts) *StudentService {
	return &StudentService{repo: repo, tutors: tutors, drivers: drivers}
}

// Add creates a student under the authenticated tutor. The RUT must not
// already belong to another student.
func (s *StudentService) Add(ctx context.Context, tutorID int, req dto.AddStudentRequest) (model.Student, error) {
	action := "add_student"
	requestID := requestIDFrom(ctx)

	if err := req.Validate(); err != nil {
		logger.Warn(action, "validation failed", requestID, fmt.Sprint(tutorID), err.Error())
		return model.Student{}, apperr.Wrap(apperr.KindValidation, "Datos del estudiante inválidos.", err)
	}

	if taken, err := s.repo.ExistsRut(ctx, req.Rut); err != nil {
		logger.Error(action, "failed to check student rut", requestID, fmt.Sprint(tutorID), err.Error())
		return model.Student{}, apperr.Wrap(apperr.KindInternal, "failed to check rut", err)
	} else if taken {
		logger.Warn(action, "duplicate student rut", requestID, fmt.Sprint(tutorID), "")
		return model.Student{}, apperr.Conflict("El RUT ya está registrado como estudiante.", "rut")
	}

	created, err := s.repo.Create(ctx, model.Student{
		StudentNombre:  req.StudentNombre,
		StudentSurname: req.StudentSurname,
		Rut:            req.Rut,
		StudentSchool:  req.StudentSchool,
		StudentHome:    req.StudentHome,
		TutorID:        tutorID,
	})
	if err != nil {
		logger.Error(action, "failed to insert student", requestID, fmt.Sprint(tutorID), err.Error())
		return model.Student{}, apperr.Wrap(apperr.KindInternal, "failed to add student", err)
	}

	logger.Info(action, "student added", requestID, fmt.Sprint(tutorID))
	return created, nil
}

func (s *StudentService) List(ctx context.Context, tutorID int) ([]model.Student, error) {
	students, err := s.repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list students", err)
	}
	return students, nil
}

// Update rewrites the student record. The new RUT must not collide with a
// driver or tutor identity; updates are scoped to the owning tutor, so a
// foreign student id comes back as not found.
func (s *StudentService) Update(ctx context.Context, tutorID int, req dto.UpdateStudentRequest) error {
	action := "update_student"
	requestID := requestIDFrom(ctx)

	if err := req.Validate(); err != nil {
		logger.Warn(action, "validation failed", requestID, fmt.Sprint(tutorID), err.Error())
		return apperr.Wrap(apperr.KindValidation, "Datos del estudiante inválidos.", err)
	}

	if taken, err := s.drivers.ExistsDni(ctx, req.Rut); err != nil {
		logger.Error(action, "failed to check rut against drivers", requestID, fmt.Sprint(tutorID), err.Error())
		return apperr.Wrap(apperr.KindInternal, "failed to check rut", err)
	} else if taken {
		logger.Warn(action, "rut belongs to a driver", requestID, fmt.Sprint(tutorID), "")
		return apperr.Conflict("El RUT pertenece a un conductor.", "rut")
	}

	if taken, err := s.tutors.ExistsRut(ctx, req.Rut); err != nil {
		logger.Error(action, "failed to check rut against tutors", requestID, fmt.Sprint(tutorID), err.Error())
		return apperr.Wrap(apperr.KindInternal, "failed to check rut", err)
	} else if taken {
		logger.Warn(action, "rut belongs to a tutor", requestID, fmt.Sprint(tutorID), "")
		return apperr.Conflict("El RUT pertenece a un tutor.", "rut")
	}

	err := s.repo.Update(ctx, model.Student{
		StudentID:      req.StudentID,
		StudentNombre:  req.StudentNombre,
		StudentSurname: req.StudentSurname,
		Rut:            req.Rut,
		StudentSchool:  req.StudentSchool,
		StudentHome:    req.StudentHome,
		TutorID:        tutorID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.KindNotFound, "Estudiante no encontrado.")
		}
		logger.Error(action, "failed to update student", requestID, fmt.Sprint(tutorID), err.Error())
		return apperr.Wrap(apperr.KindInternal, "failed to update student", err)
	}

	logger.Info(action, "student updated", requestID, fmt.Sprint(tutorID))
	return nil
}

func (s *StudentService) Delete(ctx context.Context, tutorID, studentID int) error {
	if err := s.repo.Delete(ctx, studentID, tutorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.KindNotFound, "Estudiante no encontrado.")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete student", err)
	}
	logger.Info("delete_student", "student deleted", requestIDFrom(ctx), fmt.Sprint(tutorID))
	return nil
}

func (s *StudentService) SetAttendance(ctx context.Context, tutorID, studentID int, attending bool) error {
	if err := s.repo.SetAttendance(ctx, studentID, tutorID, attending); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.KindNotFound, "Estudiante no encontrado.")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to set attendance", err)
	}
	return nil
}

func (s *StudentService) Count(ctx context.Context, tutorID int) (int, error) {
	count, err := s.repo.CountByTutor(ctx, tutorID)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to count students", err)
	}
	return count, nil
}

func requestIDFrom(ctx context.Context) string {
	if v := ctx.Value("request_id"); v != nil {
		return fmt.Sprint(v)
	}
	return "none"
}
