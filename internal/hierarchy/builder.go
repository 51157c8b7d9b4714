package hierarchy

import (
	"github.com/p6tools/p6view/internal/domain"
)

// Synthetic node ids. Double underscores keep them out of the P6 id
// space, which is alphanumeric.
const (
	// RootID is the id of the synthetic project root row.
	RootID = "__project__"
	// UnassignedID is the id of the pseudo-WBS collecting activities
	// whose wbs_id resolves to no known WBS node.
	UnassignedID = "__unassigned__"
)

// UnassignedName is the display name of the unassigned bucket.
const UnassignedName = "Unassigned Activities"

// Node is one row of the flattened hierarchy, rebuilt from scratch on
// every state change and never persisted.
type Node struct {
	Kind       domain.NodeKind
	ID         string
	Name       string
	Depth      int
	Expanded   bool
	ChildCount int

	// Stats is populated for project and wbs rows.
	Stats Stats

	// Activity is set for activity rows only.
	Activity *domain.Activity
}

// Options configures a build. The zero value is usable: the root
// predicate then treats only empty and self-referential parents as
// roots.
type Options struct {
	// ProjectName labels the synthetic root row.
	ProjectName string

	// ProjectID and ScheduleID are accepted as root-parent sentinels;
	// P6 exports use them interchangeably depending on the data source.
	ProjectID  string
	ScheduleID string

	// IsRoot overrides root detection entirely when non-nil.
	IsRoot func(*domain.WBSNode) bool
}

func (o Options) isRoot(n *domain.WBSNode) bool {
	if o.IsRoot != nil {
		return o.IsRoot(n)
	}
	switch n.ParentID {
	case "", n.WBSID:
		return true
	}
	if o.ProjectID != "" && n.ParentID == o.ProjectID {
		return true
	}
	if o.ScheduleID != "" && n.ParentID == o.ScheduleID {
		return true
	}
	return false
}

// Build flattens activities and WBS nodes into a pre-order display
// list: project root, then each WBS subtree, then the unassigned
// bucket. A node's descendants appear only while its id is in the
// expanded set; the node row itself is gated by its parent chain alone.
//
// Build is a pure function of its inputs and allocates a fresh slice
// on every call; two calls with equal inputs produce identical output.
// Cyclic parent references are broken by skipping any WBS already on
// the current root-to-leaf path, so malformed imports cannot hang the
// viewer.
func Build(activities []*domain.Activity, wbsNodes []*domain.WBSNode, expanded *ExpandedSet, opts Options) []Node {
	b := &builder{
		expanded: expanded,
		opts:     opts,
		byID:     make(map[string]*domain.WBSNode, len(wbsNodes)),
		children: make(map[string][]*domain.WBSNode),
		acts:     make(map[string][]*domain.Activity),
	}

	for _, n := range wbsNodes {
		b.byID[n.WBSID] = n
	}

	var roots, orphans []*domain.WBSNode
	for _, n := range wbsNodes {
		switch {
		case opts.isRoot(n):
			roots = append(roots, n)
		case b.byID[n.ParentID] == nil:
			// Parent matches no node and no root rule: surface the
			// subtree at root level rather than dropping it.
			orphans = append(orphans, n)
		default:
			b.children[n.ParentID] = append(b.children[n.ParentID], n)
		}
	}

	var unassigned []*domain.Activity
	for _, a := range activities {
		if b.byID[a.WBSID] == nil {
			unassigned = append(unassigned, a)
			continue
		}
		b.acts[a.WBSID] = append(b.acts[a.WBSID], a)
	}

	name := opts.ProjectName
	if name == "" {
		name = "Project"
	}
	rootExpanded := expanded.Has(RootID)
	b.rows = append(b.rows, Node{
		Kind:       domain.KindProject,
		ID:         RootID,
		Name:       name,
		Expanded:   rootExpanded,
		ChildCount: len(wbsNodes),
		Stats:      Rollup(activities),
	})
	if !rootExpanded {
		return b.rows
	}

	sortWBSNodes(roots)
	sortWBSNodes(orphans)
	path := make(map[string]bool)
	for _, n := range roots {
		b.walk(n, 1, path)
	}
	for _, n := range orphans {
		b.walk(n, 1, path)
	}

	// A parent cycle with no root (A→B→A) is reachable from nowhere;
	// promote one member per cycle to root level so the data still
	// shows up. The path guard inside walk breaks the loop.
	reach := make(map[string]bool, len(wbsNodes))
	for _, n := range roots {
		b.markReachable(n, reach)
	}
	for _, n := range orphans {
		b.markReachable(n, reach)
	}
	remaining := append([]*domain.WBSNode(nil), wbsNodes...)
	sortWBSNodes(remaining)
	for _, n := range remaining {
		if !reach[n.WBSID] {
			b.walk(n, 1, path)
			b.markReachable(n, reach)
		}
	}

	if len(unassigned) > 0 {
		b.appendBucket(unassigned)
	}

	return b.rows
}

type builder struct {
	expanded *ExpandedSet
	opts     Options

	byID     map[string]*domain.WBSNode
	children map[string][]*domain.WBSNode
	acts     map[string][]*domain.Activity

	rows []Node
}

// markReachable records n's whole subtree, regardless of expansion
// state, so the cycle sweep above only promotes genuinely unreachable
// nodes.
func (b *builder) markReachable(n *domain.WBSNode, reach map[string]bool) {
	if reach[n.WBSID] {
		return
	}
	reach[n.WBSID] = true
	for _, c := range b.children[n.WBSID] {
		b.markReachable(c, reach)
	}
}

// walk appends the row for n and, when n is expanded, its direct
// activities followed by child WBS subtrees. path holds the WBS ids on
// the current root-to-leaf chain; a child already on it is a cycle and
// is skipped outright so every id appears at most once per path.
func (b *builder) walk(n *domain.WBSNode, depth int, path map[string]bool) {
	if path[n.WBSID] {
		return
	}
	path[n.WBSID] = true
	defer delete(path, n.WBSID)

	childWBS := append([]*domain.WBSNode(nil), b.children[n.WBSID]...)
	sortWBSNodes(childWBS)

	directActs := append([]*domain.Activity(nil), b.acts[n.WBSID]...)
	sortActivities(directActs)

	open := b.expanded.Has(n.WBSID)
	b.rows = append(b.rows, Node{
		Kind:       domain.KindWBS,
		ID:         n.WBSID,
		Name:       n.Name,
		Depth:      depth,
		Expanded:   open,
		ChildCount: len(childWBS) + len(directActs),
		Stats:      Rollup(b.collectActivities(n)),
	})
	if !open {
		return
	}

	for _, a := range directActs {
		b.rows = append(b.rows, activityRow(a, depth+1))
	}
	for _, c := range childWBS {
		b.walk(c, depth+1, path)
	}
}

// collectActivities gathers every activity under n's subtree, guarding
// against parent cycles with a visited set.
func (b *builder) collectActivities(n *domain.WBSNode) []*domain.Activity {
	var out []*domain.Activity
	visited := make(map[string]bool)

	var visit func(*domain.WBSNode)
	visit = func(w *domain.WBSNode) {
		if visited[w.WBSID] {
			return
		}
		visited[w.WBSID] = true
		out = append(out, b.acts[w.WBSID]...)
		for _, c := range b.children[w.WBSID] {
			visit(c)
		}
	}
	visit(n)
	return out
}

// appendBucket renders the unassigned pseudo-WBS after all real roots.
func (b *builder) appendBucket(unassigned []*domain.Activity) {
	sortActivities(unassigned)

	open := b.expanded.Has(UnassignedID)
	b.rows = append(b.rows, Node{
		Kind:       domain.KindWBS,
		ID:         UnassignedID,
		Name:       UnassignedName,
		Depth:      1,
		Expanded:   open,
		ChildCount: len(unassigned),
		Stats:      Rollup(unassigned),
	})
	if !open {
		return
	}
	for _, a := range unassigned {
		b.rows = append(b.rows, activityRow(a, 2))
	}
}

func activityRow(a *domain.Activity, depth int) Node {
	return Node{
		Kind:     domain.KindActivity,
		ID:       a.TaskID,
		Name:     a.TaskName,
		Depth:    depth,
		Activity: a,
	}
}

// ExpandDefaults applies the initial expansion state: the project root
// plus the first few root-level WBS nodes so a fresh view shows useful
// structure without overwhelming the terminal.
func ExpandDefaults(expanded *ExpandedSet, wbsNodes []*domain.WBSNode, opts Options) {
	expanded.Expand(RootID)

	var roots []*domain.WBSNode
	for _, n := range wbsNodes {
		if opts.isRoot(n) {
			roots = append(roots, n)
		}
	}
	sortWBSNodes(roots)

	const prefix = 3
	for i, n := range roots {
		if i >= prefix {
			break
		}
		expanded.Expand(n.WBSID)
	}
}
