package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p6tools/p6view/internal/cli/formatter"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectAddCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.API.ListProjects(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects.")
				return nil
			}
			fmt.Printf("%-5s %-30s %-10s %s\n", "ID", "NAME", "SCHEDULES", "CREATED")
			for _, p := range projects {
				fmt.Printf("%-5d %-30s %-10d %s\n",
					p.ID,
					formatter.Truncate(p.Name, 30),
					p.ScheduleCount,
					p.CreatedDate.Format("2006-01-02"),
				)
			}
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.API.CreateProject(context.Background(), name, description, app.Config.CreatedBy)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s (id %d)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
