package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"institute-api/internal/model"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, name, email, phone, program, year, status, avatar, address,
	emergency_contact, gpa, enrollment_date, id_number, student_type, study_status,
	payment_status, total_fees, paid_amount, remaining_amount, performance,
	achievements, projects, extracurricular, total_points, total_projects, certifications,
	overall_attendance, present_days, absent_days, late_days, excused_absences,
	current_streak, last_attendance, monthly_data, grades, feedback, is_deleted, created_at`

// List returns live students newest first. Soft-deleted rows stay invisible
// until restored.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE NOT is_deleted ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := make([]model.Student, 0)
	for rows.Next() {
		s, scanErr := scanStudent(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan student: %w", scanErr)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// FindByID returns the row regardless of liveness; callers that only want
// live students must check IsDeleted.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (model.Student, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)

	s, err := scanStudent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Student{}, model.ErrStudentNotFound
	}
	if err != nil {
		return model.Student{}, fmt.Errorf("find student by id: %w", err)
	}
	return s, nil
}

func (r *StudentRepository) Create(ctx context.Context, s model.Student) (model.Student, error) {
	achievements, projects, extracurricular, monthly, grades, feedback, err := marshalStudentBlobs(s)
	if err != nil {
		return model.Student{}, err
	}

	now := time.Now().UTC()
	err = r.pool.QueryRow(ctx,
		`INSERT INTO students
		 (name, email, phone, program, year, status, avatar, address, emergency_contact,
		  gpa, enrollment_date, id_number, student_type, study_status, payment_status,
		  total_fees, paid_amount, remaining_amount, performance,
		  achievements, projects, extracurricular, total_points, total_projects, certifications,
		  overall_attendance, present_days, absent_days, late_days, excused_absences,
		  current_streak, monthly_data, grades, feedback, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		         $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
		         $29, $30, $31, $32, $33, $34, $35)
		 RETURNING id`,
		s.Name, s.Email, s.Phone, s.Program, s.Year, s.Status, s.Avatar, s.Address,
		s.EmergencyContact, s.GPA, s.EnrollmentDate, s.IDNumber, s.StudentType,
		s.StudyStatus, s.PaymentStatus, s.TotalFees, s.PaidAmount, s.Remaining,
		s.Performance, achievements, projects, extracurricular, s.TotalPoints,
		s.TotalProjects, s.Certifications, s.OverallAttendance, s.PresentDays,
		s.AbsentDays, s.LateDays, s.ExcusedAbsences, s.CurrentStreak,
		monthly, grades, feedback, now).Scan(&s.ID)
	if err != nil {
		return model.Student{}, fmt.Errorf("create student: %w", err)
	}

	s.CreatedAt = now
	return s, nil
}

func (r *StudentRepository) Update(ctx context.Context, s model.Student) error {
	achievements, projects, extracurricular, monthly, grades, feedback, err := marshalStudentBlobs(s)
	if err != nil {
		return err
	}

	var lastAttendance *string
	if s.LastAttendance != "" {
		lastAttendance = &s.LastAttendance
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET name = $2, email = $3, phone = $4, program = $5, year = $6, status = $7,
		     avatar = $8, address = $9, emergency_contact = $10, gpa = $11,
		     enrollment_date = $12, id_number = $13, student_type = $14, study_status = $15,
		     payment_status = $16, total_fees = $17, paid_amount = $18, remaining_amount = $19,
		     performance = $20, achievements = $21, projects = $22, extracurricular = $23,
		     total_points = $24, total_projects = $25, certifications = $26,
		     overall_attendance = $27, present_days = $28, absent_days = $29, late_days = $30,
		     excused_absences = $31, current_streak = $32, last_attendance = $33,
		     monthly_data = $34, grades = $35, feedback = $36
		 WHERE id = $1 AND NOT is_deleted`,
		s.ID, s.Name, s.Email, s.Phone, s.Program, s.Year, s.Status, s.Avatar,
		s.Address, s.EmergencyContact, s.GPA, s.EnrollmentDate, s.IDNumber,
		s.StudentType, s.StudyStatus, s.PaymentStatus, s.TotalFees, s.PaidAmount,
		s.Remaining, s.Performance, achievements, projects, extracurricular,
		s.TotalPoints, s.TotalProjects, s.Certifications, s.OverallAttendance,
		s.PresentDays, s.AbsentDays, s.LateDays, s.ExcusedAbsences, s.CurrentStreak,
		lastAttendance, monthly, grades, feedback)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStudentNotFound
	}
	return nil
}

// SetDeleted flips the liveness flag. It only matches rows currently in the
// opposite state, so restoring an already-live student reports not found.
// The trash bin relies on this as its restore precondition.
func (r *StudentRepository) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET is_deleted = $2 WHERE id = $1 AND is_deleted = NOT $2`,
		id, deleted)
	if err != nil {
		return fmt.Errorf("set student deleted flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) Summary(ctx context.Context) (model.StudentSummary, error) {
	var summary model.StudentSummary
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'Active'),
		        COALESCE(AVG(gpa), 0),
		        COALESCE(AVG(overall_attendance), 0),
		        COALESCE(SUM(total_points), 0),
		        COALESCE(SUM(total_projects), 0)
		 FROM students WHERE NOT is_deleted`).
		Scan(&summary.TotalStudents, &summary.ActiveStudents, &summary.AverageGPA,
			&summary.AverageAttendance, &summary.TotalAchievementPoints, &summary.TotalProjects)
	if err != nil {
		return model.StudentSummary{}, fmt.Errorf("student summary totals: %w", err)
	}

	summary.ProgramBreakdown, err = r.breakdown(ctx, "program")
	if err != nil {
		return model.StudentSummary{}, err
	}

	summary.StatusBreakdown, err = r.breakdown(ctx, "status")
	if err != nil {
		return model.StudentSummary{}, err
	}

	return summary, nil
}

func (r *StudentRepository) CountByProgram(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT program, COUNT(*) FROM students WHERE NOT is_deleted GROUP BY program`)
	if err != nil {
		return nil, fmt.Errorf("count students by program: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var program string
		var count int
		if err := rows.Scan(&program, &count); err != nil {
			return nil, fmt.Errorf("scan program count: %w", err)
		}
		counts[program] = count
	}
	return counts, rows.Err()
}

func (r *StudentRepository) breakdown(ctx context.Context, column string) ([]model.BreakdownEntry, error) {
	// column is one of the fixed identifiers above, never user input.
	rows, err := r.pool.Query(ctx,
		`SELECT `+column+`, COUNT(*) FROM students WHERE NOT is_deleted
		 GROUP BY `+column+` ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("student %s breakdown: %w", column, err)
	}
	defer rows.Close()

	entries := make([]model.BreakdownEntry, 0)
	for rows.Next() {
		var entry model.BreakdownEntry
		if err := rows.Scan(&entry.Key, &entry.Count); err != nil {
			return nil, fmt.Errorf("scan breakdown entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func marshalStudentBlobs(s model.Student) (achievements, projects, extracurricular, monthly, grades, feedback []byte, err error) {
	if achievements, err = marshalOr(s.Achievements, "[]"); err != nil {
		return
	}
	if projects, err = marshalOr(s.Projects, "[]"); err != nil {
		return
	}
	if extracurricular, err = marshalOr(s.Extracurricular, "[]"); err != nil {
		return
	}
	if monthly, err = marshalOr(s.MonthlyData, "{}"); err != nil {
		return
	}
	if grades, err = marshalOr(s.Grades, "{}"); err != nil {
		return
	}
	feedback, err = marshalOr(s.Feedback, "[]")
	return
}

func marshalOr(value any, empty string) ([]byte, error) {
	if value == nil {
		return []byte(empty), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal student field: %w", err)
	}
	return data, nil
}

func scanStudent(row pgx.Row) (model.Student, error) {
	var s model.Student
	var enrollmentDate time.Time
	var lastAttendance *time.Time
	var achievements, projects, extracurricular, monthly, grades, feedback []byte

	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Program, &s.Year, &s.Status,
		&s.Avatar, &s.Address, &s.EmergencyContact, &s.GPA, &enrollmentDate,
		&s.IDNumber, &s.StudentType, &s.StudyStatus, &s.PaymentStatus,
		&s.TotalFees, &s.PaidAmount, &s.Remaining, &s.Performance,
		&achievements, &projects, &extracurricular, &s.TotalPoints, &s.TotalProjects,
		&s.Certifications, &s.OverallAttendance, &s.PresentDays, &s.AbsentDays,
		&s.LateDays, &s.ExcusedAbsences, &s.CurrentStreak, &lastAttendance,
		&monthly, &grades, &feedback, &s.IsDeleted, &s.CreatedAt)
	if err != nil {
		return model.Student{}, err
	}

	s.EnrollmentDate = enrollmentDate.Format("2006-01-02")
	if lastAttendance != nil {
		s.LastAttendance = lastAttendance.Format("2006-01-02")
	}

	_ = json.Unmarshal(achievements, &s.Achievements)
	_ = json.Unmarshal(projects, &s.Projects)
	_ = json.Unmarshal(extracurricular, &s.Extracurricular)
	_ = json.Unmarshal(monthly, &s.MonthlyData)
	_ = json.Unmarshal(grades, &s.Grades)
	_ = json.Unmarshal(feedback, &s.Feedback)

	return s, nil
}
