package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/inkpad/internal/config"
)

// NewRootCmd creates the root command for inkpad.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "inkpad",
		Short: "A split-pane workspace engine for markdown notes",
		Long:  `Inkpad manages a note-taking workspace: split panes, tabs with per-tab history, and a layout that survives restarts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("inkpad %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", buildDate)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize inkpad database and configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := NewApp(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer closeApp(ctx, app)

			fmt.Printf("inkpad %s - Initialization complete!\n", version)
			fmt.Println("Database initialized at:", app.Config.Database.Path)
			fmt.Println("Notes directory:", app.Config.Documents.NotesDir)

			xdgDirs, err := config.GetXDGDirs()
			if err == nil {
				fmt.Println("Configuration directories:")
				fmt.Printf("- Config: %s\n", xdgDirs.ConfigHome)
				fmt.Printf("- Data: %s\n", xdgDirs.DataHome)
				fmt.Printf("- State: %s\n", xdgDirs.StateHome)
			}
			return nil
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(NewLayoutCmd())

	return rootCmd
}
