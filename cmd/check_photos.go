package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"studio-site/pkg/services"
)

// newCheckPhotosCmd creates a new command that verifies every local project photo decodes
func newCheckPhotosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-photos",
		Short: "Check that project photos decode and are not blank",
		Long: `Decode every photo under <public>/projects and report files that are unreadable
or a single flat color. Formats without a decoder (such as AVIF) are reported as skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			summary, err := checkPhotos(cmd, services.NewLocalSource(cfg.PublicDir))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nSummary:\n")
			fmt.Fprintf(cmd.OutOrStdout(), "  Photos checked: %d\n", summary.checked)
			fmt.Fprintf(cmd.OutOrStdout(), "  Skipped (no decoder): %d\n", summary.skipped)
			fmt.Fprintf(cmd.OutOrStdout(), "  Problems: %d\n", summary.problems)
			if summary.problems > 0 {
				return fmt.Errorf("%d photos failed the check", summary.problems)
			}
			return nil
		},
	}
}

type photoSummary struct {
	checked, skipped, problems int
}

func checkPhotos(cmd *cobra.Command, source *services.LocalSource) (photoSummary, error) {
	var summary photoSummary

	folders, err := source.Folders(cmd.Context())
	if err != nil {
		return summary, fmt.Errorf("list project folders: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, folder := range folders {
		files, err := source.Files(cmd.Context(), folder)
		if err != nil {
			fmt.Fprintf(out, "Project: %s\n  Error reading folder: %v\n", folder, err)
			summary.problems++
			continue
		}

		for _, rel := range files {
			summary.checked++
			err := services.CheckPhoto(filepath.Join(source.Root(), folder, rel))
			switch {
			case err == nil:
			case errors.Is(err, services.ErrUnsupportedFormat):
				summary.skipped++
			default:
				summary.problems++
				fmt.Fprintf(out, "Project: %s\n  %s: %v\n", folder, rel, err)
			}
		}
	}
	return summary, nil
}
