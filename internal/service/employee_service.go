package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"institute-api/internal/model"
	"institute-api/internal/repository"
	"institute-api/pkg/apierror"
)

// trashDeleter is the slice of the trash bin the entity services use to
// route deletions through it.
type trashDeleter interface {
	Delete(ctx context.Context, kind model.EntityKind, originalID string, actor model.Actor) (model.TrashEntry, error)
}

type EmployeeService struct {
	repo     *repository.EmployeeRepository
	trash    trashDeleter
	activity activityRecorder
}

func NewEmployeeService(repo *repository.EmployeeRepository, trash trashDeleter, activity activityRecorder) *EmployeeService {
	return &EmployeeService{repo: repo, trash: trash, activity: activity}
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (model.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, req model.EmployeeRequest, actor model.Actor) (model.Employee, error) {
	if err := validateEmployeeRequest(&req); err != nil {
		return model.Employee{}, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		return model.Employee{}, err
	}
	if taken {
		return model.Employee{}, model.ErrEmailTaken
	}

	employeeID, err := s.repo.NextEmployeeID(ctx)
	if err != nil {
		return model.Employee{}, err
	}

	employee, err := s.repo.Create(ctx, model.Employee{
		EmployeeID: employeeID,
		IDNumber:   req.IDNumber,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		Salary:     req.Salary,
		Address:    req.Address,
		Status:     req.Status,
		Avatar:     req.Avatar,
	})
	if err != nil {
		return model.Employee{}, err
	}

	description := fmt.Sprintf("created employee %s (%s)", employee.EmployeeID, employee.Name)
	if _, err := s.activity.Record(ctx, actor, model.ActivityCreate, description, model.KindEmployee, strconv.FormatInt(employee.ID, 10), nil); err != nil {
		return model.Employee{}, err
	}

	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, req model.EmployeeRequest, actor model.Actor) (model.Employee, error) {
	if err := validateEmployeeRequest(&req); err != nil {
		return model.Employee{}, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Employee{}, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, req.Email, id)
	if err != nil {
		return model.Employee{}, err
	}
	if taken {
		return model.Employee{}, model.ErrEmailTaken
	}

	existing.IDNumber = req.IDNumber
	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Position = req.Position
	existing.Department = req.Department
	existing.Salary = req.Salary
	existing.Address = req.Address
	existing.Status = req.Status
	existing.Avatar = req.Avatar

	if err := s.repo.Update(ctx, existing); err != nil {
		return model.Employee{}, err
	}

	description := fmt.Sprintf("updated employee %s (%s)", existing.EmployeeID, existing.Name)
	if _, err := s.activity.Record(ctx, actor, model.ActivityUpdate, description, model.KindEmployee, strconv.FormatInt(id, 10), nil); err != nil {
		return model.Employee{}, err
	}

	return s.repo.FindByID(ctx, id)
}

// Delete routes through the trash bin. Employees are hard-deleted, so the
// resulting entry holds the only remaining copy of the record.
func (s *EmployeeService) Delete(ctx context.Context, id int64, actor model.Actor) (model.TrashEntry, error) {
	return s.trash.Delete(ctx, model.KindEmployee, strconv.FormatInt(id, 10), actor)
}

func (s *EmployeeService) Departments() []model.Department {
	return model.Departments()
}

func validateEmployeeRequest(req *model.EmployeeRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" {
		return apierror.BadRequest("name is required", "")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apierror.BadRequest("a valid email is required", req.Email)
	}
	if !model.IsValidDepartment(req.Department) {
		return apierror.BadRequest("unknown department", req.Department)
	}
	if req.Status == "" {
		req.Status = model.EmployeeStatusActive
	}
	if !model.IsValidEmployeeStatus(req.Status) {
		return apierror.BadRequest("unknown employee status", req.Status)
	}
	if req.Salary < 0 {
		return apierror.BadRequest("salary cannot be negative", "")
	}

	return nil
}
