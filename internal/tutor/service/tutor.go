package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"kowapp/internal/common/apperr"
	"kowapp/internal/common/crypto"
	"kowapp/internal/common/logger"
	"kowapp/internal/tutor/handler/dto"
	"kowapp/internal/tutor/model"
)

type TutorRepository interface {
	Create(ctx context.Context, tutor model.Tutor) (model.Tutor, error)
	GetByEmail(ctx context.Context, email string) (model.Tutor, error)
	GetByID(ctx context.Context, id int) (model.Tutor, error)
	ExistsRut(ctx context.Context, rut string) (bool, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	ExistsNumber(ctx context.Context, number string) (bool, error)
	SetProfileImageURL(ctx context.Context, tutorID int, imageURL string) error
	Delete(ctx context.Context, tutorID int) error
}

// CodeIssuer starts the email-verification flow after a registration.
type CodeIssuer interface {
	IssueVerificationCode(ctx context.Context, email string) error
}

type TutorService struct {
	repo  TutorRepository
	codes CodeIssuer
}

func NewTutorService(repo TutorRepository, codes CodeIssuer) *TutorService {
	return &TutorService{repo: repo, codes: codes}
}

// Register checks each unique field in turn so the client learns exactly which
// one collided, then inserts the tutor and kicks off email verification.
// Nothing is inserted on a conflict.
func (s *TutorService) Register(ctx context.Context, req dto.RegisterTutorRequest) (model.Tutor, error) {
	action := "register_tutor"
	requestID := requestIDFrom(ctx)

	logger.Info(action, "registration process started", requestID, "")

	if err := req.Validate(); err != nil {
		logger.Warn(action, "validation failed", requestID, "", err.Error())
		return model.Tutor{}, apperr.Wrap(apperr.KindValidation, "Datos de registro inválidos.", err)
	}

	if taken, err := s.repo.ExistsRut(ctx, req.Rut); err != nil {
		logger.Error(action, "failed to check rut uniqueness", requestID, "", err.Error())
		return model.Tutor{}, apperr.Wrap(apperr.KindInternal, "failed to check rut", err)
	} else if taken {
		logger.Warn(action, "duplicate rut", requestID, "", "")
		return model.Tutor{}, apperr.Conflict("El RUT ingresado ya está registrado.", "rut")
	}

	if taken, err := s.repo.ExistsNumber(ctx, req.Number); err != nil {
		logger.Error(action, "failed to check number uniqueness", requestID, "", err.Error())
		return model.Tutor{}, apperr.Wrap(apperr.KindInternal, "failed to check number", err)
	} else if taken {
		logger.Warn(action, "duplicate phone number", requestID, "", "")
		return model.Tutor{}, apperr.Conflict("El número de teléfono ya está registrado.", "telefono")
	}

	if taken, err := s.repo.ExistsEmail(ctx, req.Email); err != nil {
		logger.Error(action, "failed to check email uniqueness", requestID, "", err.Error())
		return model.Tutor{}, apperr.Wrap(apperr.KindInternal, "failed to check email", err)
	} else if taken {
		logger.Warn(action, "duplicate email", requestID, "", "")
		return model.Tutor{}, apperr.Conflict("El correo electrónico ya está registrado.", "email")
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		logger.Error(action, "failed to hash password", requestID, "", err.Error())
		return model.Tutor{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	created, err := s.repo.Create(ctx, model.Tutor{
		Names:                  req.Names,
		Surnames:               req.Surnames,
		Rut:                    req.Rut,
		Email:                  req.Email,
		Number:                 req.Number,
		EmergencyContactNumber: req.EmergencyContactNumber,
		Password:               hash,
		Address:                req.Address,
		EmergencyAddress:       req.EmergencyAddress,
	})
	if err != nil {
		logger.Error(action, "failed to insert tutor", requestID, "", err.Error())
		return model.Tutor{}, apperr.Wrap(apperr.KindInternal, "failed to register tutor", err)
	}

	// The tutor row is already committed; a failed verification email only
	// gets logged, the user can request the code again.
	if err := s.codes.IssueVerificationCode(ctx, created.Email); err != nil {
		logger.Error(action, "failed to issue verification code", requestID, fmt.Sprint(created.ID), err.Error())
	}

	logger.Info(action, "tutor successfully registered", requestID, fmt.Sprint(created.ID))
	return created, nil
}

// Login resolves the email and compares the password hash. The caller decides
// what to do with the returned record; the hash never reaches a response.
func (s *TutorService) Login(ctx context.Context, email, password string) (model.Tutor, error) {
	action := "login_tutor"
	requestID := requestIDFrom(ctx)

	tutor, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn(action, "tutor not found", requestID, "", "")
			return model.Tutor{}, apperr.New(apperr.KindNotFound, "Usuario no encontrado.")
		}
		logger.Error(action, "failed to fetch tutor", requestID, "", err.Error())
		return model.Tutor{}, apperr.Wrap(apperr.KindInternal, "failed to fetch tutor", err)
	}

	if err := crypto.CheckPassword(tutor.Password, password); err != nil {
		logger.Warn(action, "invalid credentials", requestID, fmt.Sprint(tutor.ID), "")
		return model.Tutor{}, apperr.New(apperr.KindAuthInvalid, "Contraseña incorrecta.")
	}

	logger.Info(action, "tutor successfully logged in", requestID, fmt.Sprint(tutor.ID))
	return tutor, nil
}

func (s *TutorService) Profile(ctx context.Context, tutorID int) (model.Tutor, error) {
	tutor, err := s.repo.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Tutor{}, apperr.New(apperr.KindNotFound, "Usuario no encontrado.")
		}
		return model.Tutor{}, apperr.Wrap(apperr.KindInternal, "failed to fetch tutor", err)
	}
	return tutor, nil
}

// Delete removes the tutor account. Students, sessions and outstanding codes
// go with it.
func (s *TutorService) Delete(ctx context.Context, tutorID int) error {
	action := "delete_tutor"
	requestID := requestIDFrom(ctx)

	if err := s.repo.Delete(ctx, tutorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.KindNotFound, "Usuario no encontrado.")
		}
		logger.Error(action, "failed to delete tutor", requestID, fmt.Sprint(tutorID), err.Error())
		return apperr.Wrap(apperr.KindInternal, "failed to delete tutor", err)
	}

	logger.Info(action, "tutor deleted", requestID, fmt.Sprint(tutorID))
	return nil
}

func (s *TutorService) SaveProfileImageURL(ctx context.Context, tutorID int, imageURL string) error {
	if err := s.repo.SetProfileImageURL(ctx, tutorID, imageURL); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to save profile image", err)
	}
	return nil
}

func requestIDFrom(ctx context.Context) string {
	if v := ctx.Value("request_id"); v != nil {
		return fmt.Sprint(v)
	}
	return "none"
}
