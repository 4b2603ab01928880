package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"kowapp/internal/common/apperr"
	"kowapp/internal/common/crypto"
	"kowapp/internal/common/logger"
	"kowapp/internal/mail"
	"kowapp/internal/tutor/model"
	vmodel "kowapp/internal/verification/model"
)

// Codes are always exactly six digits, zero-padded. The recovery flow always
// worked that way; verification now matches it.
const codeDigits = 6

const tempPasswordLength = 10

type CodeRepository interface {
	InsertVerification(ctx context.Context, email, code string, expiry time.Time) error
	InsertRecovery(ctx context.Context, email, code string, expiry time.Time) error
	FindVerification(ctx context.Context, email, code string) (vmodel.Code, error)
	FindRecovery(ctx context.Context, email, code string) (vmodel.Code, error)
	LatestRecovery(ctx context.Context, email string) (vmodel.Code, error)
	DeleteVerification(ctx context.Context, id int) error
	DeleteRecovery(ctx context.Context, id int) error
}

type TutorStore interface {
	GetByEmail(ctx context.Context, email string) (model.Tutor, error)
	SetEmailVerified(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type CodeService struct {
	repo            CodeRepository
	tutors          TutorStore
	emails          mail.Queue
	verificationTTL time.Duration
	recoveryTTL     time.Duration
}

func NewCodeService(repo CodeRepository, tutors TutorStore, emails mail.Queue, verificationTTL, recoveryTTL time.Duration) *CodeService {
	return &CodeService{
		repo:            repo,
		tutors:          tutors,
		emails:          emails,
		verificationTTL: verificationTTL,
		recoveryTTL:     recoveryTTL,
	}
}

// IssueVerificationCode persists a fresh code and queues the email. A failed
// enqueue is logged but never rolls back the code: the record stays even if
// the email never reaches the user.
func (s *CodeService) IssueVerificationCode(ctx context.Context, email string) error {
	action := "issue_verification_code"

	code, err := crypto.NumericCode(codeDigits)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to generate verification code", err)
	}

	expiry := time.Now().Add(s.verificationTTL)
	if err := s.repo.InsertVerification(ctx, email, code, expiry); err != nil {
		logger.Error(action, "failed to persist verification code", "", "", err.Error())
		return apperr.Wrap(apperr.KindInternal, "failed to persist verification code", err)
	}

	if err := s.emails.Enqueue(mail.VerificationMessage(email, code)); err != nil {
		logger.Error(action, "failed to queue verification email", "", "", err.Error())
	} else {
		logger.Info(action, "verification code issued", "", "")
	}
	return nil
}

// RedeemVerificationCode validates the pair and, on success, marks the
// tutor's email verified and consumes the code so it cannot be replayed.
func (s *CodeService) RedeemVerificationCode(ctx context.Context, email, code string) (bool, error) {
	record, err := s.repo.FindVerification(ctx, email, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperr.Wrap(apperr.KindInternal, "failed to look up verification code", err)
	}

	if record.Expired(time.Now()) {
		return false, nil
	}

	if err := s.tutors.SetEmailVerified(ctx, email); err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to mark email verified", err)
	}
	if err := s.repo.DeleteVerification(ctx, record.ID); err != nil {
		logger.Warn("redeem_verification_code", "failed to consume verification code", "", "", err.Error())
	}

	logger.Info("redeem_verification_code", "email verified", "", "")
	return true, nil
}

// IssueRecoveryCode rate-limits recovery to one outstanding code per email:
// a second request while an unexpired code exists is rejected.
func (s *CodeService) IssueRecoveryCode(ctx context.Context, email string) error {
	action := "issue_recovery_code"

	if _, err := s.tutors.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.KindNotFound, "No se encontró un tutor con el correo electrónico proporcionado.")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to look up tutor", err)
	}

	latest, err := s.repo.LatestRecovery(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return apperr.Wrap(apperr.KindInternal, "failed to check outstanding recovery code", err)
	}
	if err == nil && !latest.Expired(time.Now()) {
		return apperr.New(apperr.KindConflict, "Un código de verificación ya ha sido enviado recientemente. Por favor, espera a que expire.")
	}

	code, err := crypto.NumericCode(codeDigits)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to generate recovery code", err)
	}

	expiry := time.Now().Add(s.recoveryTTL)
	if err := s.repo.InsertRecovery(ctx, email, code, expiry); err != nil {
		logger.Error(action, "failed to persist recovery code", "", "", err.Error())
		return apperr.Wrap(apperr.KindInternal, "failed to persist recovery code", err)
	}

	if err := s.emails.Enqueue(mail.RecoveryMessage(email, code)); err != nil {
		logger.Error(action, "failed to queue recovery email", "", "", err.Error())
	} else {
		logger.Info(action, "recovery code issued", "", "")
	}
	return nil
}

// RedeemRecoveryCode rotates the tutor's credential to a random temporary
// password, emails the plaintext to the tutor and consumes the code.
func (s *CodeService) RedeemRecoveryCode(ctx context.Context, email, code string) (string, error) {
	action := "redeem_recovery_code"

	record, err := s.repo.FindRecovery(ctx, email, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.New(apperr.KindAuthInvalid, "Código inválido o expirado.")
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to look up recovery code", err)
	}
	if record.Expired(time.Now()) {
		return "", apperr.New(apperr.KindAuthInvalid, "Código inválido o expirado.")
	}

	tempPassword, err := crypto.TempPassword(tempPasswordLength)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to generate temporary password", err)
	}

	hash, err := crypto.HashPassword(tempPassword)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to hash temporary password", err)
	}

	if err := s.tutors.UpdatePassword(ctx, email, hash); err != nil {
		logger.Error(action, "failed to store temporary password", "", "", err.Error())
		return "", apperr.Wrap(apperr.KindInternal, "failed to update password", err)
	}

	if err := s.repo.DeleteRecovery(ctx, record.ID); err != nil {
		logger.Warn(action, "failed to consume recovery code", "", "", err.Error())
	}

	if err := s.emails.Enqueue(mail.TempPasswordMessage(email, tempPassword)); err != nil {
		logger.Error(action, "failed to queue temporary password email", "", "", err.Error())
	}

	logger.Info(action, "temporary password issued", "", "")
	return tempPassword, nil
}
