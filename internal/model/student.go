package model

import "time"

const (
	ProgramIoT      = "IoT Development"
	ProgramSoftware = "Software Development"
	ProgramData     = "Data Science"
)

const (
	StudentStatusActive   = "Active"
	StudentStatusInactive = "Inactive"
	StudentStatusOnLeave  = "On Leave"
	StudentStatusPending  = "Pending"
)

// Attendance mark statuses accepted by the bulk attendance endpoint.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

type Student struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Program          string   `json:"program"`
	Year             string   `json:"year"`
	Status           string   `json:"status"`
	Avatar           string   `json:"avatar,omitempty"`
	Address          string   `json:"address,omitempty"`
	EmergencyContact string   `json:"emergency_contact,omitempty"`
	GPA              *float64 `json:"gpa,omitempty"`
	EnrollmentDate   string   `json:"enrollment_date"`
	IDNumber         string   `json:"id_number"`

	StudentType   string  `json:"student_type,omitempty"`
	StudyStatus   string  `json:"study_status,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	TotalFees     float64 `json:"total_fees"`
	PaidAmount    float64 `json:"paid_amount"`
	Remaining     float64 `json:"remaining_amount"`
	Performance   string  `json:"performance,omitempty"`

	// Activities
	Achievements    []map[string]any `json:"achievements,omitempty"`
	Projects        []map[string]any `json:"projects,omitempty"`
	Extracurricular []map[string]any `json:"extracurricular,omitempty"`
	TotalPoints     int              `json:"total_points"`
	TotalProjects   int              `json:"total_projects"`
	Certifications  int              `json:"certifications"`

	// Attendance
	OverallAttendance int                       `json:"overall_attendance"`
	PresentDays       int                       `json:"present_days"`
	AbsentDays        int                       `json:"absent_days"`
	LateDays          int                       `json:"late_days"`
	ExcusedAbsences   int                       `json:"excused_absences"`
	CurrentStreak     int                       `json:"current_streak"`
	LastAttendance    string                    `json:"last_attendance,omitempty"`
	MonthlyData       map[string]map[string]int `json:"monthly_data,omitempty"`

	Grades   map[string]string `json:"grades,omitempty"`
	Feedback []map[string]any  `json:"feedback,omitempty"`

	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type StudentListData struct {
	Items []Student `json:"items"`
}

type StudentSummary struct {
	TotalStudents          int              `json:"total_students"`
	ActiveStudents         int              `json:"active_students"`
	AverageGPA             float64          `json:"average_gpa"`
	AverageAttendance      float64          `json:"average_attendance"`
	TotalAchievementPoints int              `json:"total_achievement_points"`
	TotalProjects          int              `json:"total_projects"`
	ProgramBreakdown       []BreakdownEntry `json:"program_breakdown"`
	StatusBreakdown        []BreakdownEntry `json:"status_breakdown"`
}

type BreakdownEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type StudentActivities struct {
	ID              int64            `json:"id"`
	StudentName     string           `json:"student_name"`
	StudentID       string           `json:"student_id"`
	Email           string           `json:"email"`
	Program         string           `json:"program"`
	Achievements    []map[string]any `json:"achievements"`
	Projects        []map[string]any `json:"projects"`
	Extracurricular []map[string]any `json:"extracurricular"`
	TotalPoints     int              `json:"total_points"`
	TotalProjects   int              `json:"total_projects"`
	Certifications  int              `json:"certifications"`
}

type StudentAttendance struct {
	ID                int64                     `json:"id"`
	StudentName       string                    `json:"student_name"`
	StudentID         string                    `json:"student_id"`
	Email             string                    `json:"email"`
	Program           string                    `json:"program"`
	OverallAttendance int                       `json:"overall_attendance"`
	PresentDays       int                       `json:"present_days"`
	AbsentDays        int                       `json:"absent_days"`
	LateDays          int                       `json:"late_days"`
	ExcusedAbsences   int                       `json:"excused_absences"`
	CurrentStreak     int                       `json:"current_streak"`
	LastAttendance    string                    `json:"last_attendance,omitempty"`
	MonthlyData       map[string]map[string]int `json:"monthly_data,omitempty"`
}

type MarkAttendanceRequest struct {
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	StudentIDs []int64 `json:"student_ids"`
}

func IsValidProgram(p string) bool {
	switch p {
	case ProgramIoT, ProgramSoftware, ProgramData:
		return true
	}
	return false
}

func IsValidStudentStatus(s string) bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusOnLeave, StudentStatusPending:
		return true
	}
	return false
}

func IsValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// StudentSnapshot is the allowed-field projection stored in the trash bin
// when a student is soft-deleted. Restoration reactivates the row itself, so
// the snapshot only needs the fields shown in the trash listing.
func StudentSnapshot(s Student) map[string]any {
	snapshot := map[string]any{
		"id":              s.ID,
		"name":            s.Name,
		"email":           s.Email,
		"phone":           s.Phone,
		"program":         s.Program,
		"year":            s.Year,
		"status":          s.Status,
		"id_number":       s.IDNumber,
		"enrollment_date": s.EnrollmentDate,
	}
	if s.GPA != nil {
		snapshot["gpa"] = *s.GPA
	}
	return snapshot
}
