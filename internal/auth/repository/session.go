package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Replace deactivates every active session row for the tutor and inserts a
// fresh active one inside a single transaction, so a crash in between can
// never leave two active rows.
func (r *SessionRepository) Replace(ctx context.Context, tutorID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start session transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			_ = err
		}
	}()

	if _, err := tx.Exec(ctx, `
		UPDATE tutors_sessions SET is_active = false
		WHERE tutor_id = $1 AND is_active = true
	`, tutorID); err != nil {
		return fmt.Errorf("failed to deactivate old sessions: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO tutors_sessions (tutor_id, is_active) VALUES ($1, true)
	`, tutorID); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit session transaction: %w", err)
	}
	return nil
}

// DeleteByTutor removes every session row for the tutor. Deleting zero rows
// is not an error.
func (r *SessionRepository) DeleteByTutor(ctx context.Context, tutorID int) error {
	if _, err := r.db.Exec(ctx, `
		DELETE FROM tutors_sessions WHERE tutor_id = $1
	`, tutorID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

func (r *SessionRepository) HasActive(ctx context.Context, tutorID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tutors_sessions WHERE tutor_id = $1 AND is_active = true
		)
	`, tutorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check active session: %w", err)
	}
	return exists, nil
}
