package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-api/internal/model"
)

func TestApplyAttendance(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	t.Run("present extends the streak", func(t *testing.T) {
		s := model.Student{PresentDays: 4, CurrentStreak: 4}

		applyAttendance(&s, day, model.AttendancePresent)

		assert.Equal(t, 5, s.PresentDays)
		assert.Equal(t, 5, s.CurrentStreak)
		assert.Equal(t, "2026-03-09", s.LastAttendance)
		assert.Equal(t, 1, s.MonthlyData["2026-03"][model.AttendancePresent])
		assert.Equal(t, 100, s.OverallAttendance)
	})

	t.Run("absent resets the streak", func(t *testing.T) {
		s := model.Student{PresentDays: 9, CurrentStreak: 9}

		applyAttendance(&s, day, model.AttendanceAbsent)

		assert.Equal(t, 1, s.AbsentDays)
		assert.Equal(t, 0, s.CurrentStreak)
		assert.Equal(t, 90, s.OverallAttendance)
	})

	t.Run("late and excused also reset the streak", func(t *testing.T) {
		s := model.Student{CurrentStreak: 3}

		applyAttendance(&s, day, model.AttendanceLate)
		assert.Equal(t, 1, s.LateDays)
		assert.Equal(t, 0, s.CurrentStreak)

		s.CurrentStreak = 2
		applyAttendance(&s, day, model.AttendanceExcused)
		assert.Equal(t, 1, s.ExcusedAbsences)
		assert.Equal(t, 0, s.CurrentStreak)
	})

	t.Run("overall percentage is rounded", func(t *testing.T) {
		s := model.Student{PresentDays: 1, AbsentDays: 1}

		applyAttendance(&s, day, model.AttendancePresent)

		// 2 present out of 3 total days.
		assert.Equal(t, 67, s.OverallAttendance)
	})

	t.Run("monthly counters accumulate per month", func(t *testing.T) {
		s := model.Student{}

		applyAttendance(&s, day, model.AttendancePresent)
		applyAttendance(&s, day.AddDate(0, 0, 1), model.AttendancePresent)
		applyAttendance(&s, day.AddDate(0, 1, 0), model.AttendanceAbsent)

		assert.Equal(t, 2, s.MonthlyData["2026-03"][model.AttendancePresent])
		assert.Equal(t, 1, s.MonthlyData["2026-04"][model.AttendanceAbsent])
	})
}

func TestValidateStudent(t *testing.T) {
	valid := func() model.Student {
		return model.Student{
			Name:    "Ada Lovelace",
			Email:   "ada@institute.edu",
			Program: model.ProgramSoftware,
		}
	}

	t.Run("defaults status and enrollment date", func(t *testing.T) {
		s := valid()
		require.NoError(t, validateStudent(&s))
		assert.Equal(t, model.StudentStatusActive, s.Status)
		assert.NotEmpty(t, s.EnrollmentDate)
	})

	t.Run("trims name and email", func(t *testing.T) {
		s := valid()
		s.Name = "  Ada Lovelace  "
		s.Email = " ada@institute.edu "
		require.NoError(t, validateStudent(&s))
		assert.Equal(t, "Ada Lovelace", s.Name)
		assert.Equal(t, "ada@institute.edu", s.Email)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		cases := map[string]func(*model.Student){
			"missing name":    func(s *model.Student) { s.Name = "  " },
			"missing email":   func(s *model.Student) { s.Email = "" },
			"malformed email": func(s *model.Student) { s.Email = "not-an-email" },
			"unknown program": func(s *model.Student) { s.Program = "Basket Weaving" },
			"unknown status":  func(s *model.Student) { s.Status = "Ghost" },
			"gpa above scale": func(s *model.Student) { g := 4.5; s.GPA = &g },
			"negative gpa":    func(s *model.Student) { g := -0.1; s.GPA = &g },
			"bad date format": func(s *model.Student) { s.EnrollmentDate = "03/09/2026" },
		}

		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				s := valid()
				mutate(&s)
				assert.Error(t, validateStudent(&s))
			})
		}
	})

	t.Run("accepts gpa at the bounds", func(t *testing.T) {
		for _, g := range []float64{0, 4} {
			s := valid()
			gpa := g
			s.GPA = &gpa
			assert.NoError(t, validateStudent(&s))
		}
	})
}
