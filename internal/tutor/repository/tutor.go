package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kowapp/internal/tutor/model"
)

type TutorRepository struct {
	db *pgxpool.Pool
}

func NewTutorRepository(db *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{db: db}
}

const tutorColumns = `
	id, names, surnames, rut, email, number, emergency_contact_number,
	password, address, emergency_address, email_verified,
	COALESCE(profile_image_url, ''), created_at
`

func scanTutor(row pgx.Row) (model.Tutor, error) {
	var t model.Tutor
	err := row.Scan(
		&t.ID,
		&t.Names,
		&t.Surnames,
		&t.Rut,
		&t.Email,
		&t.Number,
		&t.EmergencyContactNumber,
		&t.Password,
		&t.Address,
		&t.EmergencyAddress,
		&t.EmailVerified,
		&t.ProfileImageURL,
		&t.CreatedAt,
	)
	return t, err
}

func (r *TutorRepository) Create(ctx context.Context, tutor model.Tutor) (model.Tutor, error) {
	query := `
		INSERT INTO tutors (
			names, surnames, rut, email, number, emergency_contact_number,
			password, address, emergency_address
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + tutorColumns

	created, err := scanTutor(r.db.QueryRow(
		ctx,
		query,
		tutor.Names,
		tutor.Surnames,
		tutor.Rut,
		tutor.Email,
		tutor.Number,
		tutor.EmergencyContactNumber,
		tutor.Password,
		tutor.Address,
		tutor.EmergencyAddress,
	))
	if err != nil {
		return model.Tutor{}, fmt.Errorf("failed to insert tutor: %w", err)
	}
	return created, nil
}

func (r *TutorRepository) GetByEmail(ctx context.Context, email string) (model.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE email = $1`

	tutor, err := scanTutor(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Tutor{}, fmt.Errorf("tutor not found: %w", err)
		}
		return model.Tutor{}, fmt.Errorf("failed to fetch tutor by email: %w", err)
	}
	return tutor, nil
}

func (r *TutorRepository) GetByID(ctx context.Context, id int) (model.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE id = $1`

	tutor, err := scanTutor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Tutor{}, fmt.Errorf("tutor not found: %w", err)
		}
		return model.Tutor{}, fmt.Errorf("failed to fetch tutor by id: %w", err)
	}
	return tutor, nil
}

func (r *TutorRepository) ExistsRut(ctx context.Context, rut string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM tutors WHERE rut = $1)", rut)
}

func (r *TutorRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM tutors WHERE email = $1)", email)
}

func (r *TutorRepository) ExistsNumber(ctx context.Context, number string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM tutors WHERE number = $1)", number)
}

func (r *TutorRepository) exists(ctx context.Context, query, value string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check tutor uniqueness: %w", err)
	}
	return exists, nil
}

func (r *TutorRepository) SetEmailVerified(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx,
		"UPDATE tutors SET email_verified = true WHERE email = $1", email); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

func (r *TutorRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if _, err := r.db.Exec(ctx,
		"UPDATE tutors SET password = $1 WHERE email = $2", passwordHash, email); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *TutorRepository) SetProfileImageURL(ctx context.Context, tutorID int, imageURL string) error {
	if _, err := r.db.Exec(ctx,
		"UPDATE tutors SET profile_image_url = $1 WHERE id = $2", imageURL, tutorID); err != nil {
		return fmt.Errorf("failed to save profile image url: %w", err)
	}
	return nil
}

// Delete removes the tutor together with its codes. Students and sessions go
// with the tutor row via ON DELETE CASCADE.
func (r *TutorRepository) Delete(ctx context.Context, tutorID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start delete transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			_ = err
		}
	}()

	var email string
	if err := tx.QueryRow(ctx, "SELECT email FROM tutors WHERE id = $1", tutorID).Scan(&email); err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("tutor not found: %w", err)
		}
		return fmt.Errorf("failed to fetch tutor email: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM verification_codes WHERE email = $1", email); err != nil {
		return fmt.Errorf("failed to delete verification codes: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM recovery_codes WHERE email = $1", email); err != nil {
		return fmt.Errorf("failed to delete recovery codes: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM tutors WHERE id = $1", tutorID); err != nil {
		return fmt.Errorf("failed to delete tutor: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}
