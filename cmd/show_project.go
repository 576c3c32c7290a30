package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newShowProjectCmd creates a new command for showing project details
func newShowProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-project [id]",
		Short: "Show the photos of a specific project",
		Long:  `Show detailed information about a project identified by its ID, as printed by list-projects.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			svc, closeFn, err := newProjectService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			project, err := svc.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Project: %s\n", project.Name)
			if project.Year > 0 {
				fmt.Printf("Year: %d\n", project.Year)
			}
			fmt.Printf("Folder: %s\n", project.Folder)
			fmt.Printf("Photos: %d\n", len(project.Images))
			fmt.Println("================")

			for i, image := range project.Images {
				fmt.Printf("%d. %s\n", i+1, image)
			}
			return nil
		},
	}
}
