package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newHealthCmd(app *App) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable and healthy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.API.Health(ctx); err != nil {
				return fmt.Errorf("backend at %s: %w", app.Config.Endpoint, err)
			}
			fmt.Printf("ok: %s\n", app.Config.Endpoint)

			if !debug {
				return nil
			}
			status, err := app.API.DebugStatus(ctx)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(status))
			for k := range status {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%-24s %v\n", k, status[k])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Print the backend's debug status map")

	return cmd
}
