package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEmployeeID(t *testing.T) {
	assert.Equal(t, "EMP001", FormatEmployeeID(1))
	assert.Equal(t, "EMP042", FormatEmployeeID(42))
	assert.Equal(t, "EMP1000", FormatEmployeeID(1000))
}

func TestIsValidDepartment(t *testing.T) {
	for _, d := range Departments() {
		assert.True(t, IsValidDepartment(d.Name))
	}
	assert.False(t, IsValidDepartment("marketing"))
	assert.False(t, IsValidDepartment(""))
}

func TestIsValidEmployeeStatus(t *testing.T) {
	assert.True(t, IsValidEmployeeStatus(EmployeeStatusActive))
	assert.True(t, IsValidEmployeeStatus(EmployeeStatusOnLeave))
	assert.False(t, IsValidEmployeeStatus("fired"))
}

func TestEmployeeSnapshot(t *testing.T) {
	e := Employee{
		ID:         3,
		EmployeeID: "EMP003",
		Name:       "Grace Hopper",
		Email:      "grace@institute.edu",
		Department: DepartmentAcademic,
		Salary:     5400,
		Status:     EmployeeStatusActive,
	}

	snapshot := EmployeeSnapshot(e)

	assert.Equal(t, int64(3), snapshot["id"])
	assert.Equal(t, "EMP003", snapshot["employee_id"])
	assert.Equal(t, "Grace Hopper", snapshot["name"])
	assert.Equal(t, 5400.0, snapshot["salary"])
	assert.NotContains(t, snapshot, "created_at")
}
