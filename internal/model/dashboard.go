package model

type DashboardSummary struct {
	TotalStudents    int             `json:"total_students"`
	TotalEmployees   int             `json:"total_employees"`
	IoTStudents      int             `json:"iot_students"`
	SoftwareStudents int             `json:"software_students"`
	RecentActivities []ActivityEntry `json:"recent_activities"`
}
