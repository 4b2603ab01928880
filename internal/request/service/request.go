package service

import (
	"context"
	"fmt"

	"kowapp/internal/common/apperr"
	"kowapp/internal/common/logger"
	"kowapp/internal/request/handler/dto"
	"kowapp/internal/request/model"
)

type RequestRepository interface {
	Create(ctx context.Context, req model.Request) (int, error)
	ListByTutor(ctx context.Context, tutorID int) ([]model.Request, error)
}

type RequestService struct {
	repo RequestRepository
}

func NewRequestService(repo RequestRepository) *RequestService {
	return &RequestService{repo: repo}
}

// Create files a transport petition from the tutor to a driver. New requests
// always start pending.
func (s *RequestService) Create(ctx context.Context, tutorID int, req dto.CreateRequestRequest) (int, error) {
	action := "create_request"

	if err := req.Validate(); err != nil {
		logger.Warn(action, "validation failed", "", fmt.Sprint(tutorID), err.Error())
		return 0, apperr.Wrap(apperr.KindValidation, "Datos de la solicitud inválidos.", err)
	}

	requestID, err := s.repo.Create(ctx, model.Request{
		TutorID:  tutorID,
		DriverID: req.DriverID,
		Status:   model.RequestPending,
		Message:  req.Message,
	})
	if err != nil {
		logger.Error(action, "failed to insert request", "", fmt.Sprint(tutorID), err.Error())
		return 0, apperr.Wrap(apperr.KindInternal, "failed to create request", err)
	}

	logger.Info(action, "request created", "", fmt.Sprint(tutorID))
	return requestID, nil
}

func (s *RequestService) List(ctx context.Context, tutorID int) ([]model.Request, error) {
	requests, err := s.repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list requests", err)
	}
	return requests, nil
}
