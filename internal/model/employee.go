package model

import (
	"fmt"
	"time"
)

const (
	EmployeeStatusActive     = "active"
	EmployeeStatusOnLeave    = "on_leave"
	EmployeeStatusResigned   = "resigned"
	EmployeeStatusTerminated = "terminated"
)

const (
	DepartmentAcademic   = "academic"
	DepartmentCatering   = "catering"
	DepartmentFinance    = "finance"
	DepartmentDiscipline = "discipline_welfare"
)

type Employee struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	IDNumber   string    `json:"id_number,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	Address    string    `json:"address,omitempty"`
	Status     string    `json:"status"`
	DateJoined string    `json:"date_joined"`
	Avatar     string    `json:"avatar,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type EmployeeRequest struct {
	IDNumber   string  `json:"id_number"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	Address    string  `json:"address"`
	Status     string  `json:"status"`
	Avatar     string  `json:"avatar"`
}

type EmployeeListData struct {
	Items []Employee `json:"items"`
}

type Department struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

func Departments() []Department {
	return []Department{
		{Name: DepartmentAcademic, Label: "Academic Department"},
		{Name: DepartmentCatering, Label: "Catering Department"},
		{Name: DepartmentFinance, Label: "Finance Department"},
		{Name: DepartmentDiscipline, Label: "Discipline & Welfare Department"},
	}
}

func IsValidDepartment(name string) bool {
	for _, d := range Departments() {
		if d.Name == name {
			return true
		}
	}
	return false
}

func IsValidEmployeeStatus(status string) bool {
	switch status {
	case EmployeeStatusActive, EmployeeStatusOnLeave, EmployeeStatusResigned, EmployeeStatusTerminated:
		return true
	}
	return false
}

// FormatEmployeeID renders the sequential badge identifier (EMP001, EMP002...).
func FormatEmployeeID(seq int) string {
	return fmt.Sprintf("EMP%03d", seq)
}

// EmployeeSnapshot is the allowed-field projection stored in the trash bin
// when an employee is deleted.
func EmployeeSnapshot(e Employee) map[string]any {
	return map[string]any{
		"id":          e.ID,
		"employee_id": e.EmployeeID,
		"id_number":   e.IDNumber,
		"name":        e.Name,
		"email":       e.Email,
		"phone":       e.Phone,
		"position":    e.Position,
		"department":  e.Department,
		"salary":      e.Salary,
		"address":     e.Address,
		"status":      e.Status,
		"date_joined": e.DateJoined,
		"avatar":      e.Avatar,
	}
}
