package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"institute-api/internal/model"
)

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeColumns = `id, employee_id, id_number, name, email, phone, position, department,
	salary, address, status, date_joined, avatar, created_at, updated_at`

func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]model.Employee, 0)
	for rows.Next() {
		e, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan employee: %w", scanErr)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (model.Employee, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)

	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Employee{}, model.ErrEmployeeNotFound
	}
	if err != nil {
		return model.Employee{}, fmt.Errorf("find employee by id: %w", err)
	}
	return e, nil
}

// NextEmployeeID derives the next sequential badge id from the highest one
// assigned so far. Concurrent creates can race here; the unique constraint
// on employee_id turns the race into an error instead of a duplicate.
func (r *EmployeeRepository) NextEmployeeID(ctx context.Context) (string, error) {
	var last *string
	err := r.pool.QueryRow(ctx,
		`SELECT employee_id FROM employees ORDER BY id DESC LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("find last employee id: %w", err)
	}

	return nextBadgeID(last)
}

// nextBadgeID increments the numeric suffix of the highest badge id so far.
// A nil last means the table is empty and numbering starts at 1.
func nextBadgeID(last *string) (string, error) {
	if last == nil {
		return model.FormatEmployeeID(1), nil
	}

	seq, err := strconv.Atoi(strings.TrimPrefix(*last, "EMP"))
	if err != nil {
		return "", fmt.Errorf("parse last employee id %q: %w", *last, err)
	}
	return model.FormatEmployeeID(seq + 1), nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e model.Employee) (model.Employee, error) {
	now := time.Now().UTC()
	var dateJoined time.Time
	err := r.pool.QueryRow(ctx,
		`INSERT INTO employees
		 (employee_id, id_number, name, email, phone, position, department, salary, address, status, avatar, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		 RETURNING id, date_joined`,
		e.EmployeeID, e.IDNumber, e.Name, e.Email, e.Phone, e.Position,
		e.Department, e.Salary, e.Address, e.Status, e.Avatar, now).
		Scan(&e.ID, &dateJoined)
	if err != nil {
		return model.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	e.DateJoined = dateJoined.Format("2006-01-02")
	e.CreatedAt = now
	e.UpdatedAt = now
	return e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e model.Employee) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE employees
		 SET id_number = $2, name = $3, email = $4, phone = $5, position = $6,
		     department = $7, salary = $8, address = $9, status = $10, avatar = $11,
		     updated_at = $12
		 WHERE id = $1`,
		e.ID, e.IDNumber, e.Name, e.Email, e.Phone, e.Position,
		e.Department, e.Salary, e.Address, e.Status, e.Avatar, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE lower(email) = lower($1) AND id <> $2)`,
		strings.TrimSpace(email), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check employee email exists: %w", err)
	}
	return exists, nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}

func scanEmployee(row pgx.Row) (model.Employee, error) {
	var e model.Employee
	var dateJoined time.Time

	err := row.Scan(&e.ID, &e.EmployeeID, &e.IDNumber, &e.Name, &e.Email, &e.Phone,
		&e.Position, &e.Department, &e.Salary, &e.Address, &e.Status,
		&dateJoined, &e.Avatar, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Employee{}, err
	}

	e.DateJoined = dateJoined.Format("2006-01-02")
	return e, nil
}
