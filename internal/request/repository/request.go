package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"kowapp/internal/request/model"
)

type RequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req model.Request) (int, error) {
	var requestID int
	err := r.db.QueryRow(ctx, `
		INSERT INTO requests (tutor_id, driver_id, status, message)
		VALUES ($1, $2, $3, $4)
		RETURNING request_id
	`, req.TutorID, req.DriverID, req.Status, req.Message).Scan(&requestID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert request: %w", err)
	}
	return requestID, nil
}

func (r *RequestRepository) ListByTutor(ctx context.Context, tutorID int) ([]model.Request, error) {
	rows, err := r.db.Query(ctx, `
		SELECT request_id, tutor_id, driver_id, status, message, created_at
		FROM requests
		WHERE tutor_id = $1
		ORDER BY request_id
	`, tutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests := []model.Request{}
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(&req.RequestID, &req.TutorID, &req.DriverID, &req.Status, &req.Message, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}
	return requests, nil
}
