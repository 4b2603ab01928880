package service

import (
	"context"
	"fmt"

	"kowapp/internal/auth/token"
	"kowapp/internal/common/apperr"
	"kowapp/internal/common/logger"
)

type SessionRepository interface {
	Replace(ctx context.Context, tutorID int) error
	DeleteByTutor(ctx context.Context, tutorID int) error
	HasActive(ctx context.Context, tutorID int) (bool, error)
}

type SessionService struct {
	repo   SessionRepository
	tokens *token.Manager
}

func NewSessionService(repo SessionRepository, tokens *token.Manager) *SessionService {
	return &SessionService{repo: repo, tokens: tokens}
}

// EstablishSession retires every previous active session for the tutor,
// records the new one and issues the signed bearer token for it.
func (s *SessionService) EstablishSession(ctx context.Context, tutorID int) (string, error) {
	action := "establish_session"

	if err := s.repo.Replace(ctx, tutorID); err != nil {
		logger.Error(action, "failed to replace session rows", "", fmt.Sprint(tutorID), err.Error())
		return "", apperr.Wrap(apperr.KindInternal, "failed to establish session", err)
	}

	signed, err := s.tokens.Sign(tutorID)
	if err != nil {
		logger.Error(action, "failed to sign token", "", fmt.Sprint(tutorID), err.Error())
		return "", apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	logger.Info(action, "session established", "", fmt.Sprint(tutorID))
	return signed, nil
}

// EndSession deletes every session row for the tutor. Calling it with no
// sessions on record is not an error.
func (s *SessionService) EndSession(ctx context.Context, tutorID int) error {
	if err := s.repo.DeleteByTutor(ctx, tutorID); err != nil {
		logger.Error("end_session", "failed to delete session rows", "", fmt.Sprint(tutorID), err.Error())
		return apperr.Wrap(apperr.KindInternal, "failed to end session", err)
	}
	logger.Info("end_session", "session ended", "", fmt.Sprint(tutorID))
	return nil
}

// Authenticate resolves a presented token to the tutor id it was issued for.
// A cryptographically valid token is not enough: the tutor must still hold an
// active session row, so deleting sessions revokes outstanding tokens.
func (s *SessionService) Authenticate(ctx context.Context, tokenStr string) (int, error) {
	if tokenStr == "" {
		return 0, apperr.New(apperr.KindAuthMissing, "Acceso denegado. No se proporcionó token.")
	}

	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindAuthInvalid, "Token inválido.", err)
	}

	active, err := s.repo.HasActive(ctx, claims.TutorID)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to check session", err)
	}
	if !active {
		return 0, apperr.New(apperr.KindAuthInvalid, "Token inválido.")
	}

	return claims.TutorID, nil
}

func (s *SessionService) TokenTTL() int {
	return int(s.tokens.TTL().Seconds())
}
