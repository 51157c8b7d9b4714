package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/p6tools/p6view/internal/api"
	"github.com/p6tools/p6view/internal/cli/formatter"
	"github.com/p6tools/p6view/internal/domain"
	"github.com/p6tools/p6view/internal/hierarchy"
)

// statusFlag is a pflag.Value that rejects unknown status filters at
// parse time instead of after a round-trip to the server.
type statusFlag string

func (s *statusFlag) String() string { return string(*s) }
func (s *statusFlag) Type() string   { return "status" }

func (s *statusFlag) Set(v string) error {
	if !domain.ValidStatusFilters[v] {
		return fmt.Errorf("invalid status filter %q (want all, Not Started, In Progress, or Completed)", v)
	}
	*s = statusFlag(v)
	return nil
}

func registerStatusFlag(fs *pflag.FlagSet, s *statusFlag) {
	fs.Var(s, "status", "Status filter: all, Not Started, In Progress, Completed")
}

func newActivitiesCmd(app *App) *cobra.Command {
	var scheduleID int
	var search string
	var flat bool
	status := statusFlag(domain.StatusAll)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Print a schedule's activities as a WBS tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := api.ActivityQuery{
				PerPage: app.Config.PerPage,
				Search:  search,
				Status:  string(status),
			}
			page, err := app.API.GetAllActivities(context.Background(), scheduleID, q)
			if err != nil {
				return err
			}

			if flat {
				printActivitiesFlat(page.Activities)
				return nil
			}

			// Fully expanded tree.
			expanded := hierarchy.NewExpandedSet()
			expanded.Expand(hierarchy.RootID)
			for _, n := range page.WBS {
				expanded.Expand(n.WBSID)
			}
			expanded.Expand(hierarchy.UnassignedID)

			rows := hierarchy.Build(page.Activities, page.WBS, expanded, hierarchy.Options{
				ProjectName: page.ProjectInfo.ProjectName,
				ProjectID:   strconv.Itoa(page.ProjectInfo.ProjectID),
				ScheduleID:  strconv.Itoa(scheduleID),
			})
			printActivityTree(rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&scheduleID, "schedule", 0, "Schedule ID (required)")
	cmd.Flags().StringVar(&search, "search", "", "Filter by activity name or ID")
	registerStatusFlag(cmd.Flags(), &status)
	cmd.Flags().BoolVar(&flat, "flat", false, "Print a flat activity table instead of the WBS tree")
	_ = cmd.MarkFlagRequired("schedule")

	return cmd
}

func printActivityTree(rows []hierarchy.Node) {
	for _, row := range rows {
		indent := strings.Repeat("  ", row.Depth)
		if row.Kind != domain.KindActivity {
			fmt.Printf("%s%s  [%d activities, %.0f%% complete, %.0fd]\n",
				indent, row.Name,
				row.Stats.ActivityCount, row.Stats.AvgProgress, row.Stats.TotalDuration)
			continue
		}
		a := row.Activity
		marker := " "
		if a.IsCritical() {
			marker = "!"
		}
		fmt.Printf("%s%s %-10s %s  %5.1f%%  %5.0fd  float %.0fd\n",
			indent, marker, a.TaskID,
			formatter.Pad(a.TaskName, 40),
			a.ProgressPct, a.DurationDays, a.TotalFloatDays)
	}
}

func printActivitiesFlat(activities []*domain.Activity) {
	fmt.Printf("%-12s %-40s %-12s %8s %8s %12s %12s\n",
		"ID", "NAME", "STATUS", "PROG", "FLOAT", "START", "FINISH")
	for _, a := range activities {
		start, finish := "—", "—"
		if a.EarlyStart != nil {
			start = a.EarlyStart.Format("2006-01-02")
		}
		if a.EarlyEnd != nil {
			finish = a.EarlyEnd.Format("2006-01-02")
		}
		fmt.Printf("%-12s %-40s %-12s %7.1f%% %7.0fd %12s %12s\n",
			a.TaskID,
			formatter.Truncate(a.TaskName, 40),
			a.Status(),
			a.ProgressPct,
			a.TotalFloatDays,
			start, finish,
		)
	}
}
