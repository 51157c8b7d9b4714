package api

import (
	"time"

	"github.com/p6tools/p6view/internal/domain"
)

// Wire types mirror the server's JSON shapes. They stay inside this
// package; callers only see domain types.

type projectJSON struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	CreatedDate   string `json:"created_date"`
	CreatedBy     string `json:"created_by"`
	Status        string `json:"status"`
	ScheduleCount int    `json:"schedule_count"`
}

func (p projectJSON) toDomain() *domain.Project {
	return &domain.Project{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CreatedDate:   parseDateOrZero(p.CreatedDate),
		CreatedBy:     p.CreatedBy,
		Status:        p.Status,
		ScheduleCount: p.ScheduleCount,
	}
}

type scheduleJSON struct {
	ID                 int     `json:"id"`
	ProjectID          int     `json:"project_id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	FileName           string  `json:"file_name"`
	FileSize           int64   `json:"file_size"`
	TotalActivities    int     `json:"total_activities"`
	TotalRelationships int     `json:"total_relationships"`
	WBSCount           int     `json:"wbs_count"`
	ProjectStartDate   *string `json:"project_start_date"`
	ProjectFinishDate  *string `json:"project_finish_date"`
	DataDate           *string `json:"data_date"`
	Status             string  `json:"status"`
	CreatedDate        string  `json:"created_date"`
	CreatedBy          string  `json:"created_by"`
}

func (s scheduleJSON) toDomain() *domain.Schedule {
	return &domain.Schedule{
		ID:                 s.ID,
		ProjectID:          s.ProjectID,
		Name:               s.Name,
		Description:        s.Description,
		FileName:           s.FileName,
		FileSize:           s.FileSize,
		TotalActivities:    s.TotalActivities,
		TotalRelationships: s.TotalRelationships,
		WBSCount:           s.WBSCount,
		ProjectStartDate:   parseDatePtr(s.ProjectStartDate),
		ProjectFinishDate:  parseDatePtr(s.ProjectFinishDate),
		DataDate:           parseDatePtr(s.DataDate),
		Status:             domain.ScheduleStatus(s.Status),
		CreatedDate:        parseDateOrZero(s.CreatedDate),
		CreatedBy:          s.CreatedBy,
	}
}

type activityJSON struct {
	TaskID         string  `json:"task_id"`
	TaskName       string  `json:"task_name"`
	WBSID          string  `json:"wbs_id"`
	DurationDays   float64 `json:"duration_days"`
	TotalFloatDays float64 `json:"total_float_days"`
	FreeFloatDays  float64 `json:"free_float_days"`
	EarlyStartDate *string `json:"early_start_date"`
	EarlyEndDate   *string `json:"early_end_date"`
	LateStartDate  *string `json:"late_start_date"`
	LateEndDate    *string `json:"late_end_date"`
	ActualStart    *string `json:"actual_start_date"`
	ActualEnd      *string `json:"actual_end_date"`
	ProgressPct    float64 `json:"progress_pct"`
	TaskType       string  `json:"task_type"`
	StatusCode     string  `json:"status_code"`

	ActivityCodes map[string]string `json:"activity_codes,omitempty"`
	UDFValues     map[string]string `json:"udf_values,omitempty"`
	ResourceNames string            `json:"resource_names,omitempty"`
}

func (a activityJSON) toDomain() *domain.Activity {
	name := a.TaskName
	if name == "" {
		name = "Unnamed Activity"
	}
	return &domain.Activity{
		TaskID:         a.TaskID,
		TaskName:       name,
		WBSID:          a.WBSID,
		DurationDays:   a.DurationDays,
		TotalFloatDays: a.TotalFloatDays,
		FreeFloatDays:  a.FreeFloatDays,
		ProgressPct:    a.ProgressPct,
		EarlyStart:     parseDatePtr(a.EarlyStartDate),
		EarlyEnd:       parseDatePtr(a.EarlyEndDate),
		LateStart:      parseDatePtr(a.LateStartDate),
		LateEnd:        parseDatePtr(a.LateEndDate),
		ActualStart:    parseDatePtr(a.ActualStart),
		ActualEnd:      parseDatePtr(a.ActualEnd),
		TaskType:       a.TaskType,
		StatusCode:     a.StatusCode,
		ActivityCodes:  a.ActivityCodes,
		UDFValues:      a.UDFValues,
		ResourceNames:  a.ResourceNames,
	}
}

type wbsJSON struct {
	WBSID       string `json:"wbs_id"`
	WBSName     string `json:"wbs_name"`
	ParentWBSID string `json:"parent_wbs_id"`
	ProjID      string `json:"proj_id"`
	SortOrder   int    `json:"sort_order,omitempty"`
	Level       int    `json:"level,omitempty"`
}

func (w wbsJSON) toDomain() *domain.WBSNode {
	name := w.WBSName
	if name == "" {
		name = "WBS " + w.WBSID
	}
	return &domain.WBSNode{
		WBSID:     w.WBSID,
		Name:      name,
		ParentID:  w.ParentWBSID,
		ProjID:    w.ProjID,
		SortOrder: w.SortOrder,
		Level:     w.Level,
	}
}

// ProjectInfo labels the activity page with its owning project and
// schedule.
type ProjectInfo struct {
	ProjectID    int    `json:"project_id"`
	ProjectName  string `json:"project_name"`
	ScheduleID   int    `json:"schedule_id"`
	ScheduleName string `json:"schedule_name"`
}

// Pagination reports the server-side paging state of an activity page.
type Pagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// ActivityQuery narrows a GetActivities call.
type ActivityQuery struct {
	Page         int
	PerPage      int
	Search       string
	Status       string // domain.StatusAll or one of the status buckets
	IncludeCodes bool
	IncludeUDFs  bool
}

// ActivityPage is one page of schedule data: activities plus the flat
// WBS structure they hang from.
type ActivityPage struct {
	Activities  []*domain.Activity
	WBS         []*domain.WBSNode
	ProjectInfo ProjectInfo
	Pagination  Pagination
}

// Server dates are naive isoformat strings; a bare date form shows up
// in older exports.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, ok := parseDate(*s)
	if !ok {
		return nil
	}
	return &t
}

func parseDateOrZero(s string) time.Time {
	t, _ := parseDate(s)
	return t
}
