package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/p6tools/p6view/internal/api"
	"github.com/p6tools/p6view/internal/cli/formatter"
)

// nameDescForm builds a two-field form for entities with a required
// name and an optional description.
func nameDescForm(nameTitle string, name, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(nameTitle).
				Value(name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Description (optional)").
				Value(description),
		),
	).WithTheme(p6viewHuhTheme()).WithShowHelp(false)
}

// uploadForm builds the XER upload form. The file path is validated
// client-side before any bytes leave the machine.
func uploadForm(path, name, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("XER file path").
				Placeholder("schedule.xer").
				Value(path).
				Validate(validateUploadPath),
			huh.NewInput().
				Title("Schedule name (blank = file name)").
				Value(name),
			huh.NewInput().
				Title("Description (optional)").
				Value(description),
		),
	).WithTheme(p6viewHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateUploadPath(s string) error {
	return api.ValidateUpload(strings.TrimSpace(s))
}

// ── wizard runners ───────────────────────────────────────────────────────────

// execCreateProject pushes a create-project wizard.
func execCreateProject(state *SharedState) tea.Cmd {
	var name, description string
	form := nameDescForm("Project name", &name, &description)
	return startWizardCmd(state, "New Project", form, func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			p, err := app.API.CreateProject(context.Background(), name, description, app.Config.CreatedBy)
			if err != nil {
				return wizardCompleteError(err)
			}
			return wizardCompleteOutput(fmt.Sprintf("%s Created project %s",
				formatter.StyleGreen.Render("✔"), formatter.Bold(p.Name)))
		}
	})
}

// execCreateSchedule pushes a create-schedule wizard for the active project.
func execCreateSchedule(state *SharedState) tea.Cmd {
	var name, description string
	form := nameDescForm("Schedule name", &name, &description)
	projectID := state.ActiveProjectID
	return startWizardCmd(state, "New Schedule", form, func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			s, err := app.API.CreateSchedule(context.Background(), projectID, name, description, app.Config.CreatedBy)
			if err != nil {
				return wizardCompleteError(err)
			}
			return wizardCompleteOutput(fmt.Sprintf("%s Created schedule %s",
				formatter.StyleGreen.Render("✔"), formatter.Bold(s.Name)))
		}
	})
}

// execUploadSchedule pushes an XER upload wizard for the active project.
func execUploadSchedule(state *SharedState) tea.Cmd {
	var path, name, description string
	form := uploadForm(&path, &name, &description)
	projectID := state.ActiveProjectID
	return startWizardCmd(state, "Upload XER", form, func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			s, err := app.API.UploadScheduleFile(context.Background(), projectID,
				strings.TrimSpace(path), name, description, app.Config.CreatedBy)
			if err != nil {
				return wizardCompleteError(err)
			}
			return wizardCompleteOutput(fmt.Sprintf("%s Uploaded %s (%d activities)",
				formatter.StyleGreen.Render("✔"), formatter.Bold(s.Name), s.TotalActivities))
		}
	})
}

// execConfirmDelete pushes a confirmation wizard and runs deleteFn if
// confirmed.
func execConfirmDelete(state *SharedState, prompt, title string, deleteFn func(ctx context.Context) error) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(prompt, &confirmed)
	return pushView(newWizardView(state, "Confirm Delete", form, func() tea.Cmd {
		if !confirmed {
			return func() tea.Msg { return wizardCompleteOutput(formatter.Dim("Cancelled.")) }
		}
		return func() tea.Msg {
			if err := deleteFn(context.Background()); err != nil {
				return wizardCompleteError(err)
			}
			return wizardCompleteOutput(fmt.Sprintf("%s Deleted: %s",
				formatter.StyleGreen.Render("✔"), formatter.Bold(title)))
		}
	}))
}
