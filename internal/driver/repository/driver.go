package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kowapp/internal/driver/model"
)

type DriverRepository struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{db: db}
}

const driverColumns = `
	id, driver_name, driver_surnames, dni_number, driver_email,
	cellphone_number, emergency_cellphone_number, passwrd,
	vehicle_model, vehicle_license, vehicle_capacity, created_at
`

func scanDriver(row pgx.Row) (model.Driver, error) {
	var d model.Driver
	err := row.Scan(
		&d.ID,
		&d.DriverName,
		&d.DriverSurnames,
		&d.DniNumber,
		&d.DriverEmail,
		&d.CellphoneNumber,
		&d.EmergencyCellphoneNumber,
		&d.Password,
		&d.VehicleModel,
		&d.VehicleLicense,
		&d.VehicleCapacity,
		&d.CreatedAt,
	)
	return d, err
}

func (r *DriverRepository) Create(ctx context.Context, driver model.Driver) (model.Driver, error) {
	query := `
		INSERT INTO drivers (
			driver_name, driver_surnames, dni_number, driver_email,
			cellphone_number, emergency_cellphone_number, passwrd,
			vehicle_model, vehicle_license, vehicle_capacity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + driverColumns

	created, err := scanDriver(r.db.QueryRow(
		ctx,
		query,
		driver.DriverName,
		driver.DriverSurnames,
		driver.DniNumber,
		driver.DriverEmail,
		driver.CellphoneNumber,
		driver.EmergencyCellphoneNumber,
		driver.Password,
		driver.VehicleModel,
		driver.VehicleLicense,
		driver.VehicleCapacity,
	))
	if err != nil {
		return model.Driver{}, fmt.Errorf("failed to insert driver: %w", err)
	}
	return created, nil
}

func (r *DriverRepository) List(ctx context.Context) ([]model.Driver, error) {
	rows, err := r.db.Query(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	drivers := []model.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drivers: %w", err)
	}
	return drivers, nil
}

func (r *DriverRepository) ExistsDni(ctx context.Context, dni string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM drivers WHERE dni_number = $1)", dni)
}

func (r *DriverRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM drivers WHERE driver_email = $1)", email)
}

func (r *DriverRepository) exists(ctx context.Context, query, value string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check driver uniqueness: %w", err)
	}
	return exists, nil
}
