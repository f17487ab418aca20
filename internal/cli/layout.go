package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/inkpad/internal/infrastructure/persistence/sqlite"
)

// NewLayoutCmd creates the layout inspection and maintenance commands.
func NewLayoutCmd() *cobra.Command {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect and manage the saved workspace layout",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved workspace layout as a tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := NewApp(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer closeApp(ctx, app)

			fmt.Print(app.Store.DescribeTree(ctx))
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved layout; the next start uses a fresh workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := NewApp(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer closeApp(ctx, app)

			repo := sqlite.NewLayoutRepository(app.DB)
			if err := repo.DeleteLayout(ctx); err != nil {
				return fmt.Errorf("failed to delete layout: %w", err)
			}
			fmt.Println("Saved layout deleted.")
			return nil
		},
	}

	layoutCmd.AddCommand(showCmd)
	layoutCmd.AddCommand(resetCmd)

	return layoutCmd
}
