package service

import (
	"context"
	"fmt"

	"kowapp/internal/common/apperr"
	"kowapp/internal/common/crypto"
	"kowapp/internal/common/logger"
	"kowapp/internal/driver/handler/dto"
	"kowapp/internal/driver/model"
)

type DriverRepository interface {
	Create(ctx context.Context, driver model.Driver) (model.Driver, error)
	List(ctx context.Context) ([]model.Driver, error)
	ExistsDni(ctx context.Context, dni string) (bool, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
}

type DriverService struct {
	repo DriverRepository
}

func NewDriverService(repo DriverRepository) *DriverService {
	return &DriverService{repo: repo}
}

// Register creates a driver account. Drivers are read-only after this point;
// there is no driver login surface here.
func (s *DriverService) Register(ctx context.Context, req dto.RegisterDriverRequest) (model.Driver, error) {
	action := "register_driver"
	requestID := requestIDFrom(ctx)

	logger.Info(action, "driver registration started", requestID, "")

	if err := req.Validate(); err != nil {
		logger.Warn(action, "validation failed", requestID, "", err.Error())
		return model.Driver{}, apperr.Wrap(apperr.KindValidation, "Datos de registro inválidos.", err)
	}

	if taken, err := s.repo.ExistsDni(ctx, req.DniNumber); err != nil {
		logger.Error(action, "failed to check dni uniqueness", requestID, "", err.Error())
		return model.Driver{}, apperr.Wrap(apperr.KindInternal, "failed to check dni", err)
	} else if taken {
		logger.Warn(action, "duplicate dni", requestID, "", "")
		return model.Driver{}, apperr.Conflict("El RUT ingresado ya está registrado.", "rut")
	}

	if taken, err := s.repo.ExistsEmail(ctx, req.DriverEmail); err != nil {
		logger.Error(action, "failed to check email uniqueness", requestID, "", err.Error())
		return model.Driver{}, apperr.Wrap(apperr.KindInternal, "failed to check email", err)
	} else if taken {
		logger.Warn(action, "duplicate email", requestID, "", "")
		return model.Driver{}, apperr.Conflict("El correo electrónico ya está registrado.", "email")
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		logger.Error(action, "failed to hash password", requestID, "", err.Error())
		return model.Driver{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	created, err := s.repo.Create(ctx, model.Driver{
		DriverName:               req.DriverName,
		DriverSurnames:           req.DriverSurnames,
		DniNumber:                req.DniNumber,
		DriverEmail:              req.DriverEmail,
		CellphoneNumber:          req.CellphoneNumber,
		EmergencyCellphoneNumber: req.EmergencyCellphoneNumber,
		Password:                 hash,
		VehicleModel:             req.VehicleModel,
		VehicleLicense:           req.VehicleLicense,
		VehicleCapacity:          req.VehicleCapacity,
	})
	if err != nil {
		logger.Error(action, "failed to insert driver", requestID, "", err.Error())
		return model.Driver{}, apperr.Wrap(apperr.KindInternal, "failed to register driver", err)
	}

	logger.Info(action, "driver successfully registered", requestID, "")
	return created, nil
}

func (s *DriverService) List(ctx context.Context) ([]model.Driver, error) {
	drivers, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list drivers", err)
	}
	return drivers, nil
}

func requestIDFrom(ctx context.Context) string {
	if v := ctx.Value("request_id"); v != nil {
		return fmt.Sprint(v)
	}
	return "none"
}
