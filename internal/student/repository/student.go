package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kowapp/internal/student/model"
)

type StudentRepository struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `
	student_id, student_nombre, student_surname, rut,
	student_school, student_home, student_asist, fk_tutor_id
`

func scanStudent(row pgx.Row) (model.Student, error) {
	var s model.Student
	err := row.Scan(
		&s.StudentID,
		&s.StudentNombre,
		&s.StudentSurname,
		&s.Rut,
		&s.StudentSchool,
		&s.StudentHome,
		&s.StudentAsist,
		&s.TutorID,
	)
	return s, err
}

func (r *StudentRepository) Create(ctx context.Context, student model.Student) (model.Student, error) {
	query := `
		INSERT INTO students (
			student_nombre, student_surname, rut, student_school,
			student_home, fk_tutor_id
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + studentColumns

	created, err := scanStudent(r.db.QueryRow(
		ctx,
		query,
		student.StudentNombre,
		student.StudentSurname,
		student.Rut,
		student.StudentSchool,
		student.StudentHome,
		student.TutorID,
	))
	if err != nil {
		return model.Student{}, fmt.Errorf("failed to insert student: %w", err)
	}
	return created, nil
}

// ListByTutor returns only the students owned by the tutor; other tutors'
// students never leak through this query.
func (r *StudentRepository) ListByTutor(ctx context.Context, tutorID int) ([]model.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE fk_tutor_id = $1 ORDER BY student_id`, tutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}
	return students, nil
}

func (r *StudentRepository) Update(ctx context.Context, student model.Student) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students SET
			student_nombre = $1,
			student_surname = $2,
			rut = $3,
			student_school = $4,
			student_home = $5
		WHERE student_id = $6 AND fk_tutor_id = $7
	`,
		student.StudentNombre,
		student.StudentSurname,
		student.Rut,
		student.StudentSchool,
		student.StudentHome,
		student.StudentID,
		student.TutorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("student not found: %w", pgx.ErrNoRows)
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, studentID, tutorID int) error {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM students WHERE student_id = $1 AND fk_tutor_id = $2", studentID, tutorID)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("student not found: %w", pgx.ErrNoRows)
	}
	return nil
}

func (r *StudentRepository) SetAttendance(ctx context.Context, studentID, tutorID int, attending bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students SET student_asist = $1
		WHERE student_id = $2 AND fk_tutor_id = $3
	`, attending, studentID, tutorID)
	if err != nil {
		return fmt.Errorf("failed to set attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("student not found: %w", pgx.ErrNoRows)
	}
	return nil
}

func (r *StudentRepository) CountByTutor(ctx context.Context, tutorID int) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(student_id) FROM students WHERE fk_tutor_id = $1", tutorID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func (r *StudentRepository) ExistsRut(ctx context.Context, rut string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM students WHERE rut = $1)", rut).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check student rut: %w", err)
	}
	return exists, nil
}
