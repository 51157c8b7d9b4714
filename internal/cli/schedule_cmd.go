package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p6tools/p6view/internal/cli/formatter"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage schedules within a project",
	}

	cmd.AddCommand(
		newScheduleListCmd(app),
		newScheduleAddCmd(app),
		newScheduleUploadCmd(app),
		newScheduleRemoveCmd(app),
	)

	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	var projectID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.API.ListSchedules(context.Background(), projectID)
			if err != nil {
				return err
			}
			if len(schedules) == 0 {
				fmt.Println("No schedules.")
				return nil
			}
			fmt.Printf("%-5s %-28s %-8s %10s %12s %12s\n",
				"ID", "NAME", "STATUS", "ACTIVITIES", "START", "FINISH")
			for _, s := range schedules {
				start, finish := "—", "—"
				if s.ProjectStartDate != nil {
					start = s.ProjectStartDate.Format("2006-01-02")
				}
				if s.ProjectFinishDate != nil {
					finish = s.ProjectFinishDate.Format("2006-01-02")
				}
				fmt.Printf("%-5d %-28s %-8s %10d %12s %12s\n",
					s.ID,
					formatter.Truncate(s.Name, 28),
					s.Status,
					s.TotalActivities,
					start, finish,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&projectID, "project", 0, "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var projectID int
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an empty schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.API.CreateSchedule(context.Background(), projectID, name, description, app.Config.CreatedBy)
			if err != nil {
				return err
			}
			fmt.Printf("Created schedule %s (id %d)\n", s.Name, s.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&projectID, "project", 0, "Project ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Schedule name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Schedule description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newScheduleUploadCmd(app *App) *cobra.Command {
	var projectID int
	var name, description string

	cmd := &cobra.Command{
		Use:   "upload <file.xer>",
		Short: "Upload an XER file as a new schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.API.UploadScheduleFile(context.Background(), projectID, args[0], name, description, app.Config.CreatedBy)
			if err != nil {
				return err
			}
			fmt.Printf("Uploaded %s: %d activities, %d WBS nodes (id %d)\n",
				s.Name, s.TotalActivities, s.WBSCount, s.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&projectID, "project", 0, "Project ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Schedule name (default: file name)")
	cmd.Flags().StringVar(&description, "description", "", "Schedule description")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <schedule-id>",
		Short: "Delete a schedule and its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scheduleID int
			if _, err := fmt.Sscanf(args[0], "%d", &scheduleID); err != nil {
				return fmt.Errorf("invalid schedule ID %q", args[0])
			}
			if !yes {
				return fmt.Errorf("refusing to delete schedule %d without --yes", scheduleID)
			}
			ctx := context.Background()
			if err := app.API.DeleteSchedule(ctx, scheduleID); err != nil {
				return err
			}
			if app.Recents != nil {
				_ = app.Recents.Forget(ctx, scheduleID)
			}
			fmt.Printf("Deleted schedule %d\n", scheduleID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	return cmd
}
