package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p6tools/p6view/internal/domain"
)

func wbs(id, parent, name string) *domain.WBSNode {
	return &domain.WBSNode{WBSID: id, ParentID: parent, Name: name}
}

func act(taskID, wbsID string) *domain.Activity {
	return &domain.Activity{TaskID: taskID, TaskName: taskID, WBSID: wbsID}
}

// expandAll returns a set with the root and every given id expanded.
func expandAll(ids ...string) *ExpandedSet {
	s := NewExpandedSet()
	s.Expand(RootID)
	for _, id := range ids {
		s.Expand(id)
	}
	return s
}

func rowIDs(rows []Node) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestBuild_CollapsedRootShowsOnlyProjectRow(t *testing.T) {
	nodes := []*domain.WBSNode{wbs("W1", "", "Phase A")}
	acts := []*domain.Activity{act("T1", "W1")}

	rows := Build(acts, nodes, NewExpandedSet(), Options{ProjectName: "Demo"})

	require.Len(t, rows, 1)
	assert.Equal(t, domain.KindProject, rows[0].Kind)
	assert.Equal(t, RootID, rows[0].ID)
	assert.Equal(t, "Demo", rows[0].Name)
	assert.False(t, rows[0].Expanded)
	assert.Equal(t, 1, rows[0].ChildCount, "child count is total WBS count")
}

func TestBuild_EndToEndScenario(t *testing.T) {
	nodes := []*domain.WBSNode{wbs("W1", "", "Phase A")}
	acts := []*domain.Activity{{
		TaskID: "T1", TaskName: "T1", WBSID: "W1",
		DurationDays: 10, ProgressPct: 50, TotalFloatDays: 0,
		EarlyStart: date(2024, 1, 1), EarlyEnd: date(2024, 1, 10),
	}}

	rows := Build(acts, nodes, expandAll("W1"), Options{})

	require.Equal(t, []string{RootID, "W1", "T1"}, rowIDs(rows))

	w1 := rows[1]
	assert.Equal(t, domain.KindWBS, w1.Kind)
	assert.Equal(t, 1, w1.Depth)
	assert.Equal(t, 10.0, w1.Stats.TotalDuration)
	assert.InDelta(t, 50.0, w1.Stats.AvgProgress, 1e-9)
	assert.Zero(t, w1.Stats.MinFloat)
	require.NotNil(t, w1.Stats.Start)
	assert.Equal(t, *date(2024, 1, 1), *w1.Stats.Start)
	require.NotNil(t, w1.Stats.End)
	assert.Equal(t, *date(2024, 1, 10), *w1.Stats.End)

	t1 := rows[2]
	assert.Equal(t, domain.KindActivity, t1.Kind)
	assert.Equal(t, 2, t1.Depth)
	require.NotNil(t, t1.Activity)
	assert.Equal(t, "T1", t1.Activity.TaskID)
}

func TestBuild_Deterministic(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W2", "", "Beta"),
		wbs("W1", "", "Alpha"),
		wbs("W3", "W1", "Child"),
	}
	acts := []*domain.Activity{
		act("T2", "W1"),
		act("T1", "W1"),
		act("T3", "W3"),
	}

	first := Build(acts, nodes, expandAll("W1", "W2", "W3"), Options{})
	// A distinct set instance with the same contents must produce the
	// same sequence.
	second := Build(acts, nodes, expandAll("W3", "W2", "W1"), Options{})

	assert.Equal(t, rowIDs(first), rowIDs(second))
}

func TestBuild_ActivitiesBeforeChildSubtrees(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W1", "", "Phase"),
		wbs("W2", "W1", "Subphase"),
	}
	acts := []*domain.Activity{act("T1", "W1"), act("T2", "W2")}

	rows := Build(acts, nodes, expandAll("W1", "W2"), Options{})

	assert.Equal(t, []string{RootID, "W1", "T1", "W2", "T2"}, rowIDs(rows))
}

func TestBuild_SiblingAndActivityOrdering(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W2", "", "Beta"),
		wbs("W1", "", "Alpha"),
	}
	acts := []*domain.Activity{
		// T3 has no start date and must sort first; T1/T2 share a start
		// and fall back to task id order.
		{TaskID: "T2", TaskName: "T2", WBSID: "W1", EarlyStart: date(2024, 3, 1)},
		{TaskID: "T1", TaskName: "T1", WBSID: "W1", EarlyStart: date(2024, 3, 1)},
		{TaskID: "T3", TaskName: "T3", WBSID: "W1"},
	}

	rows := Build(acts, nodes, expandAll("W1", "W2"), Options{})

	assert.Equal(t, []string{RootID, "W1", "T3", "T1", "T2", "W2"}, rowIDs(rows))
}

func TestBuild_ExplicitSortOrderWins(t *testing.T) {
	nodes := []*domain.WBSNode{
		{WBSID: "W1", Name: "Alpha", SortOrder: 2},
		{WBSID: "W2", Name: "Beta", SortOrder: 1},
		{WBSID: "W3", Name: "Gamma"}, // no sort order: after ordered siblings
	}

	rows := Build(nil, nodes, expandAll(), Options{})

	assert.Equal(t, []string{RootID, "W2", "W1", "W3"}, rowIDs(rows))
}

func TestBuild_ExpansionGating(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W1", "", "Phase"),
		wbs("W2", "W1", "Subphase"),
	}
	acts := []*domain.Activity{act("T1", "W1"), act("T2", "W2")}

	open := Build(acts, nodes, expandAll("W1", "W2"), Options{})
	require.Equal(t, []string{RootID, "W1", "T1", "W2", "T2"}, rowIDs(open))

	// Collapsing W1 removes its descendants but keeps the row and its
	// child count intact.
	collapsed := Build(acts, nodes, expandAll("W2"), Options{})
	require.Equal(t, []string{RootID, "W1"}, rowIDs(collapsed))
	assert.Equal(t, 2, collapsed[1].ChildCount)
	assert.False(t, collapsed[1].Expanded)
}

func TestBuild_CollapsedWBSKeepsRollup(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W1", "", "Phase"),
		wbs("W2", "W1", "Subphase"),
	}
	acts := []*domain.Activity{
		{TaskID: "T1", TaskName: "T1", WBSID: "W2", DurationDays: 4},
	}

	rows := Build(acts, nodes, expandAll(), Options{})

	require.Equal(t, []string{RootID, "W1"}, rowIDs(rows))
	assert.Equal(t, 4.0, rows[1].Stats.TotalDuration, "rollup spans collapsed descendants")
}

func TestBuild_RootSentinels(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W1", "", "Empty parent"),
		wbs("W2", "W2", "Self parent"),
		wbs("W3", "P9", "Project sentinel"),
		wbs("W4", "S7", "Schedule sentinel"),
	}

	rows := Build(nil, nodes, expandAll(), Options{ProjectID: "P9", ScheduleID: "S7"})

	require.Len(t, rows, 5)
	for _, r := range rows[1:] {
		assert.Equal(t, 1, r.Depth, "all four sentinel forms are roots: %s", r.ID)
	}
}

func TestBuild_CustomRootPredicate(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W1", "ROOT", "A"),
		wbs("W2", "W1", "B"),
	}
	opts := Options{
		IsRoot: func(n *domain.WBSNode) bool { return n.ParentID == "ROOT" },
	}

	rows := Build(nil, nodes, expandAll("W1"), opts)

	assert.Equal(t, []string{RootID, "W1", "W2"}, rowIDs(rows))
}

func TestBuild_UnassignedBucket(t *testing.T) {
	nodes := []*domain.WBSNode{wbs("W1", "", "Phase")}
	acts := []*domain.Activity{
		act("T1", "W1"),
		act("T2", "MISSING"),
		act("T3", ""),
	}

	rows := Build(acts, nodes, expandAll("W1", UnassignedID), Options{})

	require.Equal(t, []string{RootID, "W1", "T1", UnassignedID, "T2", "T3"}, rowIDs(rows))

	bucket := rows[3]
	assert.Equal(t, domain.KindWBS, bucket.Kind)
	assert.Equal(t, UnassignedName, bucket.Name)
	assert.Equal(t, 1, bucket.Depth)
	assert.Equal(t, 2, bucket.ChildCount)
}

func TestBuild_NoUnassignedBucketWhenAllResolve(t *testing.T) {
	nodes := []*domain.WBSNode{wbs("W1", "", "Phase")}
	acts := []*domain.Activity{act("T1", "W1")}

	rows := Build(acts, nodes, expandAll("W1", UnassignedID), Options{})

	assert.NotContains(t, rowIDs(rows), UnassignedID)
}

func TestBuild_CycleTerminates(t *testing.T) {
	// A and B list each other as parents. The build must terminate and
	// each id may appear at most once per root-to-leaf path.
	nodes := []*domain.WBSNode{
		wbs("A", "B", "Node A"),
		wbs("B", "A", "Node B"),
	}
	acts := []*domain.Activity{act("T1", "A"), act("T2", "B")}

	rows := Build(acts, nodes, expandAll("A", "B"), Options{})

	ids := rowIDs(rows)
	assert.Contains(t, ids, "A")
	assert.Contains(t, ids, "B")
	for _, id := range []string{"A", "B"} {
		count := 0
		for _, got := range ids {
			if got == id {
				count++
			}
		}
		assert.Equal(t, 1, count, "id %s must appear once", id)
	}
	// Activities survive the broken cycle.
	assert.Contains(t, ids, "T1")
	assert.Contains(t, ids, "T2")
}

func TestBuild_NestedChainRollup(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W1", "", "Root"),
		wbs("W2", "W1", "Mid"),
		wbs("W3", "W2", "Leaf"),
	}
	acts := []*domain.Activity{act("T1", "W3")}

	rows := Build(acts, nodes, expandAll("W1", "W2", "W3"), Options{})

	assert.Equal(t, []string{RootID, "W1", "W2", "W3", "T1"}, rowIDs(rows))
	assert.Equal(t, 1, rows[1].Stats.ActivityCount, "rollup reaches the leaf activity")
}

func TestBuild_OrphanWBSPromotedToRoot(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W1", "", "Phase"),
		wbs("W9", "NOPE", "Orphan"),
	}

	rows := Build(nil, nodes, expandAll(), Options{})

	require.Equal(t, []string{RootID, "W1", "W9"}, rowIDs(rows))
	assert.Equal(t, 1, rows[2].Depth)
}

func TestBuild_PureFunction(t *testing.T) {
	nodes := []*domain.WBSNode{wbs("W2", "", "B"), wbs("W1", "", "A")}
	acts := []*domain.Activity{act("T2", "W1"), act("T1", "W1")}

	nodesBefore := []*domain.WBSNode{nodes[0], nodes[1]}
	actsBefore := []*domain.Activity{acts[0], acts[1]}

	Build(acts, nodes, expandAll("W1", "W2"), Options{})

	assert.Equal(t, nodesBefore, nodes, "input WBS order untouched")
	assert.Equal(t, actsBefore, acts, "input activity order untouched")
}

func TestExpandDefaults(t *testing.T) {
	nodes := []*domain.WBSNode{
		wbs("W1", "", "A"),
		wbs("W2", "", "B"),
		wbs("W3", "", "C"),
		wbs("W4", "", "D"),
		wbs("W5", "W1", "Nested"),
	}

	s := NewExpandedSet()
	ExpandDefaults(s, nodes, Options{})

	assert.True(t, s.Has(RootID))
	assert.True(t, s.Has("W1"))
	assert.True(t, s.Has("W2"))
	assert.True(t, s.Has("W3"))
	assert.False(t, s.Has("W4"), "only the first three roots pre-expand")
	assert.False(t, s.Has("W5"), "nested nodes start collapsed")
}
