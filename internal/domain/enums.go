package domain

// ActivityStatus is the progress-derived display status. The buckets
// match the server's filter semantics exactly.
type ActivityStatus string

const (
	StatusNotStarted ActivityStatus = "Not Started"
	StatusInProgress ActivityStatus = "In Progress"
	StatusCompleted  ActivityStatus = "Completed"
)

// StatusAll is the filter value that disables status filtering.
const StatusAll = "all"

type ScheduleStatus string

const (
	ScheduleImported ScheduleStatus = "imported"
	ScheduleParsing  ScheduleStatus = "parsing"
	ScheduleParsed   ScheduleStatus = "parsed"
	ScheduleError    ScheduleStatus = "error"
)

// NodeKind discriminates rows in the flattened hierarchy.
type NodeKind string

const (
	KindProject  NodeKind = "project"
	KindWBS      NodeKind = "wbs"
	KindActivity NodeKind = "activity"
)

// ValidStatusFilters is the canonical set of accepted status filter strings.
var ValidStatusFilters = map[string]bool{
	StatusAll:                true,
	string(StatusNotStarted): true,
	string(StatusInProgress): true,
	string(StatusCompleted):  true,
}
