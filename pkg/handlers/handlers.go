package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/eknkc/pug"
	"github.com/eknkc/pug/compiler"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"studio-site/pkg/logging"
	"studio-site/pkg/models"
	"studio-site/pkg/services"
)

// FailureMessage is shown to visitors when a submission cannot be recorded
const FailureMessage = "Something went wrong sending your message. Please try again later."

const (
	heroImageCount    = 8
	featuredCount     = 6
	maxFormBodyBytes  = 64 << 10
	submitRateWindow  = time.Minute
	defaultSubmitRate = 5
)

// ProjectLister is the project data the site renders
type ProjectLister interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	HeroImages(ctx context.Context, n int) ([]string, error)
}

// LeadSubmitter records inquiries and newsletter signups
type LeadSubmitter interface {
	SubmitInquiry(ctx context.Context, form services.InquiryForm) error
	Subscribe(ctx context.Context, email string) error
}

// Options configures the site router
type Options struct {
	Projects   ProjectLister
	Leads      LeadSubmitter
	ViewsDir   string
	PublicDir  string
	SubmitRate int // submissions per IP per minute
}

// Site serves the studio website
type Site struct {
	projects  ProjectLister
	leads     LeadSubmitter
	viewsDir  string
	publicDir string
	log       zerolog.Logger
}

// NewRouter configures all routes and returns the router
func NewRouter(opts Options) http.Handler {
	s := &Site{
		projects:  opts.Projects,
		leads:     opts.Leads,
		viewsDir:  opts.ViewsDir,
		publicDir: opts.PublicDir,
		log:       logging.WithComponent("http"),
	}
	// pug rejects relative paths that climb out of the working directory
	if abs, err := filepath.Abs(opts.ViewsDir); err == nil {
		s.viewsDir = abs
	}

	rate := opts.SubmitRate
	if rate <= 0 {
		rate = defaultSubmitRate
	}
	limitSubmissions := RateLimit(rate, submitRateWindow)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(RequestLogger(s.log))
	r.Use(Metrics)

	fileServer := http.FileServer(http.Dir(s.publicDir))

	// Pages
	r.Get("/", s.IndexHandler)
	r.Get("/projects", s.GalleryHandler)
	r.Get("/projects/{id}", s.ProjectHandler)
	r.Handle("/projects/{id}/*", fileServer)
	r.Get("/studio", s.StudioHandler)
	r.Get("/contact", s.ContactHandler)
	r.With(limitSubmissions).Post("/contact", s.ContactSubmitHandler)
	r.With(limitSubmissions).Post("/newsletter", s.NewsletterSubmitHandler)

	// API
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.ListProjectsAPI)
		r.Get("/projects/{id}", s.GetProjectAPI)
		r.Get("/studio", s.StudioAPI)
		r.With(limitSubmissions).Post("/inquiries", s.SubmitInquiryAPI)
		r.With(limitSubmissions).Post("/newsletter", s.SubscribeAPI)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Everything else comes from the public directory
	r.NotFound(fileServer.ServeHTTP)

	return r
}

// IndexHandler renders the home page
func (s *Site) IndexHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.ListProjects(r.Context())
	if err != nil {
		s.serverError(w, "listing projects", err)
		return
	}
	hero, err := s.projects.HeroImages(r.Context(), heroImageCount)
	if err != nil {
		s.serverError(w, "choosing hero images", err)
		return
	}

	featured := projects
	if len(featured) > featuredCount {
		featured = featured[:featuredCount]
	}
	s.render(w, http.StatusOK, "index", models.Index{
		Hero:     hero,
		Featured: projectCards(featured),
	})
}

// GalleryHandler renders the project listing
func (s *Site) GalleryHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.ListProjects(r.Context())
	if err != nil {
		s.serverError(w, "listing projects", err)
		return
	}
	s.render(w, http.StatusOK, "projects", models.Gallery{Projects: projectCards(projects)})
}

// ProjectHandler renders a single project
func (s *Site) ProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := s.projects.GetProject(r.Context(), id)
	if errors.Is(err, services.ErrProjectNotFound) {
		s.log.Debug().Str("id", id).Msg("project not found")
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "loading project", err)
		return
	}

	s.render(w, http.StatusOK, "project", models.ProjectPage{
		Name:   project.Name,
		Year:   project.Year,
		Images: project.Images,
	})
}

// StudioHandler renders the team, shows and press page
func (s *Site) StudioHandler(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "studio", services.Studio())
}

// ContactHandler renders the empty inquiry form
func (s *Site) ContactHandler(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "contact", models.Contact{})
}

// ContactSubmitHandler handles the inquiry form post
func (s *Site) ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := services.InquiryForm{
		Name:        r.PostForm.Get("name"),
		Email:       r.PostForm.Get("email"),
		Phone:       r.PostForm.Get("phone"),
		Location:    r.PostForm.Get("location"),
		ProjectType: r.PostForm.Get("projectType"),
		Budget:      r.PostForm.Get("budget"),
		Timeline:    r.PostForm.Get("timeline"),
		Message:     r.PostForm.Get("message"),
		Newsletter:  services.Checkbox(r.PostForm.Get("newsletter")),
	}

	err := s.leads.SubmitInquiry(r.Context(), form)
	page := models.Contact{Form: inquiryFields(form)}

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		page.Errors = fieldMessages(verr.Fields)
		s.render(w, http.StatusUnprocessableEntity, "contact", page)
	case err != nil:
		page.Failure = FailureMessage
		s.render(w, http.StatusBadGateway, "contact", page)
	default:
		s.render(w, http.StatusOK, "contact", models.Contact{Sent: true})
	}
}

// NewsletterSubmitHandler handles the newsletter signup form post
func (s *Site) NewsletterSubmitHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	email := r.PostForm.Get("email")
	err := s.leads.Subscribe(r.Context(), email)

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		s.render(w, http.StatusUnprocessableEntity, "newsletter", models.Newsletter{Email: email, Error: verr.Fields["email"]})
	case err != nil:
		s.render(w, http.StatusBadGateway, "newsletter", models.Newsletter{Email: email, Failure: FailureMessage})
	default:
		s.render(w, http.StatusOK, "newsletter", models.Newsletter{Sent: true})
	}
}

// render executes the named pug view into a buffer so a template failure
// never leaves a half-written page behind.
func (s *Site) render(w http.ResponseWriter, status int, view string, data interface{}) {
	tpl, err := pug.CompileFile(view+".pug", pug.Options{Dir: compiler.FsDir(s.viewsDir)})
	if err != nil {
		s.serverError(w, "compiling template "+view, err)
		return
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		s.serverError(w, "executing template "+view, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debug().Err(err).Str("view", view).Msg("client went away")
	}
}

func (s *Site) serverError(w http.ResponseWriter, action string, err error) {
	s.log.Error().Err(err).Msg(action)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func projectCards(projects []models.Project) []models.ProjectCard {
	cards := make([]models.ProjectCard, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, models.ProjectCard{
			Name:  p.Name,
			Year:  p.Year,
			Href:  p.Href(),
			Cover: p.Cover,
		})
	}
	return cards
}

func inquiryFields(form services.InquiryForm) models.InquiryFields {
	return models.InquiryFields{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Location:    form.Location,
		ProjectType: form.ProjectType,
		Budget:      form.Budget,
		Timeline:    form.Timeline,
		Message:     form.Message,
		Newsletter:  string(form.Newsletter),
	}
}

func fieldMessages(errs services.FieldErrors) models.InquiryFields {
	return models.InquiryFields{
		Name:        errs["name"],
		Email:       errs["email"],
		Phone:       errs["phone"],
		Location:    errs["location"],
		ProjectType: errs["projectType"],
		Budget:      errs["budget"],
		Timeline:    errs["timeline"],
		Message:     errs["message"],
	}
}
