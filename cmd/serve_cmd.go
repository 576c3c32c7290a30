package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"studio-site/pkg/config"
	"studio-site/pkg/handlers"
	"studio-site/pkg/logging"
	"studio-site/pkg/services"
)

const shutdownGrace = 10 * time.Second

// newServeCmd creates a new command for serving the website
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to serve the studio website via HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			return Serve(cmd.Context(), cfg)
		},
	}
}

// Serve runs the website until ctx is cancelled or the process is interrupted
func Serve(ctx context.Context, cfg *config.Config) error {
	if err := cfg.RequireSheets(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.WithComponent("server")

	projects, closeProjects, err := newProjectService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProjects()

	appender, err := services.NewSheetsAppender(ctx, cfg.SpreadsheetID, cfg.CredentialsFile)
	if err != nil {
		return err
	}
	leads := services.NewLeadService(appender, services.LeadOptions{
		InquiryRange:    cfg.InquiryRange,
		NewsletterRange: cfg.NewsletterRange,
		Location:        cfg.Timezone,
	})

	srv := &http.Server{
		Addr: cfg.ServerAddress(),
		Handler: handlers.NewRouter(handlers.Options{
			Projects:   projects,
			Leads:      leads,
			ViewsDir:   cfg.ViewsDir,
			PublicDir:  cfg.PublicDir,
			SubmitRate: cfg.SubmitRateLimit,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.PrintServerStartMessage()
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error().Err(err).Msg("server error")
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
