package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kowapp/internal/verification/model"
)

type CodeRepository struct {
	db *pgxpool.Pool
}

func NewCodeRepository(db *pgxpool.Pool) *CodeRepository {
	return &CodeRepository{db: db}
}

func (r *CodeRepository) InsertVerification(ctx context.Context, email, code string, expiry time.Time) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO verification_codes (email, code, expiry_date) VALUES ($1, $2, $3)
	`, email, code, expiry); err != nil {
		return fmt.Errorf("failed to insert verification code: %w", err)
	}
	return nil
}

func (r *CodeRepository) InsertRecovery(ctx context.Context, email, code string, expiry time.Time) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO recovery_codes (email, code, expiry_date) VALUES ($1, $2, $3)
	`, email, code, expiry); err != nil {
		return fmt.Errorf("failed to insert recovery code: %w", err)
	}
	return nil
}

func (r *CodeRepository) FindVerification(ctx context.Context, email, code string) (model.Code, error) {
	return r.find(ctx, "verification_codes", email, code)
}

func (r *CodeRepository) FindRecovery(ctx context.Context, email, code string) (model.Code, error) {
	return r.find(ctx, "recovery_codes", email, code)
}

func (r *CodeRepository) find(ctx context.Context, table, email, code string) (model.Code, error) {
	var c model.Code
	query := fmt.Sprintf(`
		SELECT id, email, code, expiry_date FROM %s
		WHERE email = $1 AND code = $2
		ORDER BY expiry_date DESC
		LIMIT 1
	`, table)
	err := r.db.QueryRow(ctx, query, email, code).Scan(&c.ID, &c.Email, &c.Code, &c.ExpiryDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Code{}, fmt.Errorf("code not found: %w", err)
		}
		return model.Code{}, fmt.Errorf("failed to fetch code: %w", err)
	}
	return c, nil
}

// LatestRecovery returns the most recent recovery code for the email,
// regardless of whether it has expired.
func (r *CodeRepository) LatestRecovery(ctx context.Context, email string) (model.Code, error) {
	var c model.Code
	err := r.db.QueryRow(ctx, `
		SELECT id, email, code, expiry_date FROM recovery_codes
		WHERE email = $1
		ORDER BY expiry_date DESC
		LIMIT 1
	`, email).Scan(&c.ID, &c.Email, &c.Code, &c.ExpiryDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Code{}, fmt.Errorf("code not found: %w", err)
		}
		return model.Code{}, fmt.Errorf("failed to fetch latest recovery code: %w", err)
	}
	return c, nil
}

func (r *CodeRepository) DeleteVerification(ctx context.Context, id int) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM verification_codes WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}
	return nil
}

func (r *CodeRepository) DeleteRecovery(ctx context.Context, id int) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM recovery_codes WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete recovery code: %w", err)
	}
	return nil
}
