package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"studio-site/pkg/config"
	"studio-site/pkg/logging"
	"studio-site/pkg/services"
)

// Configuration flags
var (
	portNumber    string
	publicDir     string
	spreadsheetID string
	credentials   string
	photoBucket   string
	logLevel      string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studio-site",
		Short: "Studio Site serves the studio's public website",
		Long: `Studio Site serves the interior-design studio's public website: the home page,
project galleries, the studio page and the contact form. Inquiries and newsletter
signups are appended to a Google Sheets spreadsheet.`,
		SilenceUsage: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&publicDir, "public", "d", "", "Set the PUBLIC_DIR (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&spreadsheetID, "spreadsheet", "", "Set the SPREADSHEET_ID (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&credentials, "credentials", "", "Set the GOOGLE_CREDENTIALS_FILE (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&photoBucket, "bucket", "b", "", "Set the PHOTO_BUCKET (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set the LOG_LEVEL (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newListProjectsCmd())
	rootCmd.AddCommand(newShowProjectCmd())
	rootCmd.AddCommand(newListStudioCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newCheckPhotosCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	for env, value := range map[string]string{
		"PORT":                    portNumber,
		"PUBLIC_DIR":              publicDir,
		"SPREADSHEET_ID":          spreadsheetID,
		"GOOGLE_CREDENTIALS_FILE": credentials,
		"PHOTO_BUCKET":            photoBucket,
		"LOG_LEVEL":               logLevel,
	} {
		if value != "" {
			os.Setenv(env, value)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Configure(logging.Config{Level: cfg.LogLevel})
	return cfg, nil
}

// newProjectService builds the project service over the configured photo source.
// The returned close func releases the bucket client when one was opened.
func newProjectService(ctx context.Context, cfg *config.Config) (*services.ProjectService, func(), error) {
	if cfg.PhotoBucket == "" {
		return services.NewProjectService(services.NewLocalSource(cfg.PublicDir)), func() {}, nil
	}

	source, err := services.NewBucketSource(ctx, cfg.PhotoBucket)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := source.Close(); err != nil {
			l := logging.WithComponent("cmd")
			l.Warn().Err(err).Msg("error closing storage client")
		}
	}
	return services.NewProjectService(source), closeFn, nil
}
