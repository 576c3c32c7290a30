package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"studio-site/pkg/models"
)

// newListProjectsCmd creates a new command for listing projects
func newListProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-projects",
		Short: "List all projects",
		Long:  `List all projects discovered in the photo source with their year and number of photos.`,
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

			projects, err := svc.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			listProjects(projects)
			return nil
		},
	}
}

// listProjects displays all projects
func listProjects(projects []models.Project) {
	fmt.Println("Projects:")
	fmt.Println("=========")

	for _, project := range projects {
		fmt.Printf("%s\n", project.Name)
		fmt.Printf("  ID: %s\n", project.ID)
		if project.Year > 0 {
			fmt.Printf("  Year: %d\n", project.Year)
		}
		fmt.Printf("  Photos: %d\n", len(project.Images))
		fmt.Println()
	}

	fmt.Printf("Total: %d projects\n", len(projects))
}
