package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"studio-site/pkg/models"
	"studio-site/pkg/services"
)

// newExportCmd creates a new command for exporting site data
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export site data",
		Long:  `Export all projects and studio content in the specified format. Currently supported formats: json.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			if format != "json" {
				return fmt.Errorf("unsupported export format: %s (supported formats: json)", format)
			}

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

			data, err := exportJSON(projects, services.Studio())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

// exportJSON renders projects and studio content as indented JSON
func exportJSON(projects []models.Project, studio models.Studio) ([]byte, error) {
	data, err := json.MarshalIndent(struct {
		Projects []models.Project `json:"projects"`
		models.Studio
	}{projects, studio}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling data: %w", err)
	}
	return data, nil
}
