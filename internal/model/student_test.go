package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentSnapshot(t *testing.T) {
	s := Student{
		ID:       5,
		Name:     "Ada Lovelace",
		Email:    "ada@institute.edu",
		Program:  ProgramSoftware,
		Status:   StudentStatusActive,
		IDNumber: "ST-2026-005",
	}

	snapshot := StudentSnapshot(s)

	assert.Equal(t, "Ada Lovelace", snapshot["name"])
	assert.Equal(t, ProgramSoftware, snapshot["program"])
	assert.NotContains(t, snapshot, "gpa")

	gpa := 3.7
	s.GPA = &gpa
	assert.Equal(t, 3.7, StudentSnapshot(s)["gpa"])
}

func TestIsValidAttendanceStatus(t *testing.T) {
	assert.True(t, IsValidAttendanceStatus(AttendancePresent))
	assert.True(t, IsValidAttendanceStatus(AttendanceExcused))
	assert.False(t, IsValidAttendanceStatus("Present"))
	assert.False(t, IsValidAttendanceStatus(""))
}
