package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/pkg/logging"
	"studio-site/pkg/services"
)

// ListProjectsAPI handles GET /api/projects
func (s *Site) ListProjectsAPI(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.ListProjects(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("listing projects")
		respondError(w, http.StatusInternalServerError, "Projects are unavailable")
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProjectAPI handles GET /api/projects/{id}
func (s *Site) GetProjectAPI(w http.ResponseWriter, r *http.Request) {
	project, err := s.projects.GetProject(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, services.ErrProjectNotFound) {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("loading project")
		respondError(w, http.StatusInternalServerError, "Projects are unavailable")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// StudioAPI handles GET /api/studio
func (s *Site) StudioAPI(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, services.Studio())
}

// SubmitInquiryAPI handles POST /api/inquiries
func (s *Site) SubmitInquiryAPI(w http.ResponseWriter, r *http.Request) {
	var form services.InquiryForm
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBodyBytes)).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.respondSubmission(w, s.leads.SubmitInquiry(r.Context(), form))
}

// SubscribeAPI handles POST /api/newsletter
func (s *Site) SubscribeAPI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.respondSubmission(w, s.leads.Subscribe(r.Context(), req.Email))
}

func (s *Site) respondSubmission(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]services.FieldErrors{"errors": verr.Fields})
	case err != nil:
		respondError(w, http.StatusBadGateway, FailureMessage)
	default:
		respondJSON(w, http.StatusOK, map[string]string{"message": "Thanks! We'll be in touch soon."})
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		l := logging.WithComponent("http")
		l.Warn().Err(err).Msg("error encoding JSON")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
