package domain

import "time"

// Project groups uploaded schedules on the server side.
type Project struct {
	ID            int
	Name          string
	Description   string
	CreatedDate   time.Time
	CreatedBy     string
	Status        string
	ScheduleCount int
}

// Schedule is one imported P6 file within a project.
type Schedule struct {
	ID          int
	ProjectID   int
	Name        string
	Description string

	FileName string
	FileSize int64

	TotalActivities    int
	TotalRelationships int
	WBSCount           int

	ProjectStartDate  *time.Time
	ProjectFinishDate *time.Time
	DataDate          *time.Time

	Status      ScheduleStatus
	CreatedDate time.Time
	CreatedBy   string
}
