package domain

// WBSNode is one level of the work breakdown structure, delivered by
// the API as a flat list linked by parent ids.
type WBSNode struct {
	WBSID    string
	Name     string
	ParentID string // empty for roots; may also carry a root sentinel
	ProjID   string

	// SortOrder is an explicit ordering hint from the import; 0 means
	// "not provided" and siblings fall back to name order.
	SortOrder int
	Level     int
}
