package hierarchy

import (
	"time"

	"github.com/p6tools/p6view/internal/domain"
)

// Stats aggregates descendant activity values up to a grouping node.
type Stats struct {
	TotalDuration float64
	AvgProgress   float64
	MinFloat      float64
	Start         *time.Time
	End           *time.Time
	ActivityCount int
}

// Rollup computes aggregate statistics over a set of activities,
// typically the descendants of one WBS subtree. An empty input yields
// a zero-valued Stats, never an error.
//
// The date range only considers activities that carry both early dates;
// activities missing either date still count toward duration, progress
// and float. Progress is duration-weighted so a short housekeeping task
// cannot skew a phase's progress; when total duration is zero the
// unweighted mean is used instead. Float rolls up pessimistically: the
// subtree is only as uncritical as its most critical member.
func Rollup(activities []*domain.Activity) Stats {
	if len(activities) == 0 {
		return Stats{}
	}

	s := Stats{ActivityCount: len(activities)}

	var weightedProgress, plainProgress float64
	first := true
	for _, a := range activities {
		s.TotalDuration += a.DurationDays
		weightedProgress += a.ProgressPct * a.DurationDays
		plainProgress += a.ProgressPct

		if first || a.TotalFloatDays < s.MinFloat {
			s.MinFloat = a.TotalFloatDays
			first = false
		}

		if !a.HasDates() {
			continue
		}
		if s.Start == nil || a.EarlyStart.Before(*s.Start) {
			start := *a.EarlyStart
			s.Start = &start
		}
		if s.End == nil || a.EarlyEnd.After(*s.End) {
			end := *a.EarlyEnd
			s.End = &end
		}
	}

	if s.TotalDuration > 0 {
		s.AvgProgress = weightedProgress / s.TotalDuration
	} else {
		s.AvgProgress = plainProgress / float64(len(activities))
	}

	return s
}
