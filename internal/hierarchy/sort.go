package hierarchy

import (
	"sort"

	"github.com/p6tools/p6view/internal/domain"
)

// sortWBSNodes orders sibling WBS nodes by the canonical rules:
// 1. Explicit sort order: set (nonzero) before unset, ascending
// 2. Name: lexical ascending
// 3. WBS ID: lexical ascending
func sortWBSNodes(nodes []*domain.WBSNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]

		if (a.SortOrder != 0) != (b.SortOrder != 0) {
			return a.SortOrder != 0
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}

		if a.Name != b.Name {
			return a.Name < b.Name
		}

		return a.WBSID < b.WBSID
	})
}

// sortActivities orders activities by early start ascending, with
// dateless activities first (zero-time fallback), ties broken by
// task ID.
func sortActivities(acts []*domain.Activity) {
	sort.SliceStable(acts, func(i, j int) bool {
		a, b := acts[i], acts[j]

		sa, sb := a.SortStart(), b.SortStart()
		if !sa.Equal(sb) {
			return sa.Before(sb)
		}

		return a.TaskID < b.TaskID
	})
}
