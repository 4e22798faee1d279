package service

import (
	"context"

	"institute-api/internal/model"
	"institute-api/internal/repository"
)

const dashboardActivityLimit = 10

type recentActivities interface {
	Recent(ctx context.Context, limit int) ([]model.ActivityEntry, error)
}

type DashboardService struct {
	students  *repository.StudentRepository
	employees *repository.EmployeeRepository
	activity  recentActivities
}

func NewDashboardService(students *repository.StudentRepository, employees *repository.EmployeeRepository, activity recentActivities) *DashboardService {
	return &DashboardService{students: students, employees: employees, activity: activity}
}

func (s *DashboardService) Summary(ctx context.Context) (model.DashboardSummary, error) {
	counts, err := s.students.CountByProgram(ctx)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	totalStudents := 0
	for _, count := range counts {
		totalStudents += count
	}

	totalEmployees, err := s.employees.Count(ctx)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	recent, err := s.activity.Recent(ctx, dashboardActivityLimit)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	return model.DashboardSummary{
		TotalStudents:    totalStudents,
		TotalEmployees:   totalEmployees,
		IoTStudents:      counts[model.ProgramIoT],
		SoftwareStudents: counts[model.ProgramSoftware],
		RecentActivities: recent,
	}, nil
}
