package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"institute-api/internal/ai"
	"institute-api/internal/model"
	"institute-api/internal/repository"
	"institute-api/pkg/apierror"
)

type studentEvaluator interface {
	Evaluate(ctx context.Context, student model.Student) (ai.Evaluation, error)
}

type StudentService struct {
	repo      *repository.StudentRepository
	trash     trashDeleter
	activity  activityRecorder
	evaluator studentEvaluator
}

func NewStudentService(repo *repository.StudentRepository, trash trashDeleter, activity activityRecorder, evaluator studentEvaluator) *StudentService {
	return &StudentService{repo: repo, trash: trash, activity: activity, evaluator: evaluator}
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.repo.List(ctx)
}

func (s *StudentService) Get(ctx context.Context, id int64) (model.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Student{}, err
	}
	if student.IsDeleted {
		return model.Student{}, model.ErrStudentNotFound
	}

	return student, nil
}

func (s *StudentService) Create(ctx context.Context, input model.Student, actor model.Actor) (model.Student, error) {
	if err := validateStudent(&input); err != nil {
		return model.Student{}, err
	}

	input.ID = 0
	input.IsDeleted = false
	input.Remaining = input.TotalFees - input.PaidAmount

	student, err := s.repo.Create(ctx, input)
	if err != nil {
		return model.Student{}, err
	}

	description := fmt.Sprintf("created student %s (%s)", student.IDNumber, student.Name)
	if _, err := s.activity.Record(ctx, actor, model.ActivityCreate, description, model.KindStudent, strconv.FormatInt(student.ID, 10), nil); err != nil {
		return model.Student{}, err
	}

	return student, nil
}

func (s *StudentService) Update(ctx context.Context, id int64, input model.Student, actor model.Actor) (model.Student, error) {
	if err := validateStudent(&input); err != nil {
		return model.Student{}, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return model.Student{}, err
	}

	input.ID = existing.ID
	input.IsDeleted = false
	input.CreatedAt = existing.CreatedAt
	input.Remaining = input.TotalFees - input.PaidAmount

	if err := s.repo.Update(ctx, input); err != nil {
		return model.Student{}, err
	}

	description := fmt.Sprintf("updated student %s (%s)", input.IDNumber, input.Name)
	if _, err := s.activity.Record(ctx, actor, model.ActivityUpdate, description, model.KindStudent, strconv.FormatInt(id, 10), nil); err != nil {
		return model.Student{}, err
	}

	return s.Get(ctx, id)
}

// Delete routes through the trash bin; the row survives with its deleted
// flag set until the entry is purged.
func (s *StudentService) Delete(ctx context.Context, id int64, actor model.Actor) (model.TrashEntry, error) {
	return s.trash.Delete(ctx, model.KindStudent, strconv.FormatInt(id, 10), actor)
}

func (s *StudentService) Summary(ctx context.Context) (model.StudentSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return model.StudentSummary{}, err
	}

	summary.AverageGPA = round2(summary.AverageGPA)
	summary.AverageAttendance = round2(summary.AverageAttendance)
	return summary, nil
}

func (s *StudentService) Activities(ctx context.Context) ([]model.StudentActivities, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.StudentActivities, 0, len(students))
	for _, st := range students {
		out = append(out, model.StudentActivities{
			ID:              st.ID,
			StudentName:     st.Name,
			StudentID:       st.IDNumber,
			Email:           st.Email,
			Program:         st.Program,
			Achievements:    st.Achievements,
			Projects:        st.Projects,
			Extracurricular: st.Extracurricular,
			TotalPoints:     st.TotalPoints,
			TotalProjects:   st.TotalProjects,
			Certifications:  st.Certifications,
		})
	}

	return out, nil
}

func (s *StudentService) Attendance(ctx context.Context) ([]model.StudentAttendance, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.StudentAttendance, 0, len(students))
	for _, st := range students {
		out = append(out, model.StudentAttendance{
			ID:                st.ID,
			StudentName:       st.Name,
			StudentID:         st.IDNumber,
			Email:             st.Email,
			Program:           st.Program,
			OverallAttendance: st.OverallAttendance,
			PresentDays:       st.PresentDays,
			AbsentDays:        st.AbsentDays,
			LateDays:          st.LateDays,
			ExcusedAbsences:   st.ExcusedAbsences,
			CurrentStreak:     st.CurrentStreak,
			LastAttendance:    st.LastAttendance,
			MonthlyData:       st.MonthlyData,
		})
	}

	return out, nil
}

// MarkAttendance applies one attendance status to a batch of students.
// Students that no longer exist are skipped; the returned count is the
// number actually updated.
func (s *StudentService) MarkAttendance(ctx context.Context, req model.MarkAttendanceRequest, actor model.Actor) (int, error) {
	if !model.IsValidAttendanceStatus(req.Status) {
		return 0, apierror.BadRequest("unknown attendance status", req.Status)
	}
	if len(req.StudentIDs) == 0 {
		return 0, apierror.BadRequest("student_ids is required", "")
	}

	date := time.Now().UTC()
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return 0, apierror.BadRequest("date must be YYYY-MM-DD", req.Date)
		}
		date = parsed
	}

	updated := 0
	for _, id := range req.StudentIDs {
		student, err := s.Get(ctx, id)
		if errors.Is(err, model.ErrStudentNotFound) {
			continue
		}
		if err != nil {
			return updated, err
		}

		applyAttendance(&student, date, req.Status)

		if err := s.repo.Update(ctx, student); err != nil {
			return updated, err
		}
		updated++
	}

	description := fmt.Sprintf("marked %d students %s for %s", updated, req.Status, date.Format("2006-01-02"))
	if _, err := s.activity.Record(ctx, actor, model.ActivityUpdate, description, model.KindStudent, "", nil); err != nil {
		return updated, err
	}

	return updated, nil
}

// Evaluate produces a structured performance evaluation for one student.
func (s *StudentService) Evaluate(ctx context.Context, id int64) (ai.Evaluation, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return ai.Evaluation{}, err
	}

	return s.evaluator.Evaluate(ctx, student)
}

// applyAttendance folds one day's mark into the student's counters. Only a
// present mark extends the streak; every other status resets it.
func applyAttendance(s *model.Student, date time.Time, status string) {
	switch status {
	case model.AttendancePresent:
		s.PresentDays++
		s.CurrentStreak++
	case model.AttendanceAbsent:
		s.AbsentDays++
		s.CurrentStreak = 0
	case model.AttendanceLate:
		s.LateDays++
		s.CurrentStreak = 0
	case model.AttendanceExcused:
		s.ExcusedAbsences++
		s.CurrentStreak = 0
	}

	s.LastAttendance = date.Format("2006-01-02")

	monthKey := date.Format("2006-01")
	if s.MonthlyData == nil {
		s.MonthlyData = map[string]map[string]int{}
	}
	if s.MonthlyData[monthKey] == nil {
		s.MonthlyData[monthKey] = map[string]int{}
	}
	s.MonthlyData[monthKey][status]++

	total := s.PresentDays + s.AbsentDays + s.LateDays + s.ExcusedAbsences
	if total > 0 {
		s.OverallAttendance = int(math.Round(float64(s.PresentDays) / float64(total) * 100))
	}
}

func validateStudent(input *model.Student) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if input.Name == "" {
		return apierror.BadRequest("name is required", "")
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return apierror.BadRequest("a valid email is required", input.Email)
	}
	if !model.IsValidProgram(input.Program) {
		return apierror.BadRequest("unknown program", input.Program)
	}
	if input.Status == "" {
		input.Status = model.StudentStatusActive
	}
	if !model.IsValidStudentStatus(input.Status) {
		return apierror.BadRequest("unknown student status", input.Status)
	}
	if input.GPA != nil && (*input.GPA < 0 || *input.GPA > 4) {
		return apierror.BadRequest("gpa must be between 0.0 and 4.0", "")
	}
	if input.EnrollmentDate == "" {
		input.EnrollmentDate = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", input.EnrollmentDate); err != nil {
		return apierror.BadRequest("enrollment_date must be YYYY-MM-DD", input.EnrollmentDate)
	}

	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
