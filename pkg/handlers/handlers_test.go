package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-site/pkg/services"
)

type stubSource struct{}

func (stubSource) Folders(context.Context) ([]string, error) {
	return []string{"No. 4-2022", "Garden Flat-2020"}, nil
}

func (stubSource) Photos(_ context.Context, folder string) ([]services.Photo, error) {
	return []services.Photo{
		{Path: "1.jpg", URL: services.PhotoURL(folder, "1.jpg")},
		{Path: "2.jpg", URL: services.PhotoURL(folder, "2.jpg")},
	}, nil
}

type recordingAppender struct {
	mu   sync.Mutex
	rows [][]interface{}
	err  error
}

func (a *recordingAppender) AppendRow(_ context.Context, _ string, row []interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows = append(a.rows, row)
	return a.err
}

func (a *recordingAppender) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.rows)
}

// viewsDir holds the site's own templates
var viewsDir = filepath.Join("..", "..", "views")

func newTestRouter(t *testing.T, appender *recordingAppender, rate int) http.Handler {
	t.Helper()
	public := t.TempDir()
	photo := filepath.Join(public, "projects", "No. 4-2022", "1.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(photo), 0o755))
	require.NoError(t, os.WriteFile(photo, []byte("jpeg-bytes"), 0o644))

	return NewRouter(Options{
		Projects:   services.NewProjectService(stubSource{}),
		Leads:      services.NewLeadService(appender, services.LeadOptions{InquiryRange: "Inquiries!A:J", NewsletterRange: "Newsletter!A:B"}),
		ViewsDir:   viewsDir,
		PublicDir:  public,
		SubmitRate: rate,
	})
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const validInquiryJSON = `{"name":"Ada","email":"ada@example.com","projectType":"Furnishing","message":"Hello","newsletter":true}`

func TestHealth(t *testing.T) {
	h := newTestRouter(t, &recordingAppender{}, 100)

	w := do(t, h, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProjectsAPI(t *testing.T) {
	h := newTestRouter(t, &recordingAppender{}, 100)

	w := do(t, h, http.MethodGet, "/api/projects", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var projects []struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Year   int      `json:"year"`
		Images []string `json:"images"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	require.Len(t, projects, 2)
	assert.Equal(t, "no-4-2022", projects[0].ID)
	assert.Equal(t, "No. 4", projects[0].Name)
	assert.Equal(t, 2022, projects[0].Year)
	assert.Len(t, projects[0].Images, 2)

	w = do(t, h, http.MethodGet, "/api/projects/garden-flat-2020", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Garden Flat"`)

	w = do(t, h, http.MethodGet, "/api/projects/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
}

func TestStudioAPI(t *testing.T) {
	h := newTestRouter(t, &recordingAppender{}, 100)

	w := do(t, h, http.MethodGet, "/api/studio", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var studio map[string][]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &studio))
	assert.NotEmpty(t, studio["team"])
	assert.NotEmpty(t, studio["shows"])
	assert.NotEmpty(t, studio["press"])
}

func TestPages(t *testing.T) {
	h := newTestRouter(t, &recordingAppender{}, 100)

	for _, path := range []string{"/", "/projects", "/projects/no-4-2022", "/studio", "/contact"} {
		w := do(t, h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
	}

	w := do(t, h, http.MethodGet, "/projects/unknown-project", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPageContent(t *testing.T) {
	h := newTestRouter(t, &recordingAppender{}, 100)
	photo := `src="/projects/No.%204-2022/1.jpg"`

	t.Run("home", func(t *testing.T) {
		body := do(t, h, http.MethodGet, "/", "", "").Body.String()
		assert.Contains(t, body, photo)
		assert.Contains(t, body, `href="/projects/no-4-2022"`)
		assert.Contains(t, body, `href="/projects/garden-flat-2020"`)
		assert.Contains(t, body, "Garden Flat")
	})

	t.Run("gallery", func(t *testing.T) {
		body := do(t, h, http.MethodGet, "/projects", "", "").Body.String()
		assert.Contains(t, body, `href="/projects/no-4-2022"`)
		assert.Contains(t, body, "No. 4")
		assert.Contains(t, body, "2022")
		assert.Contains(t, body, photo)
	})

	t.Run("project", func(t *testing.T) {
		body := do(t, h, http.MethodGet, "/projects/no-4-2022", "", "").Body.String()
		assert.Contains(t, body, "<h1>No. 4</h1>")
		assert.Contains(t, body, photo)
		assert.Contains(t, body, `src="/projects/No.%204-2022/2.jpg"`)
	})

	t.Run("studio", func(t *testing.T) {
		body := do(t, h, http.MethodGet, "/studio", "", "").Body.String()
		for _, member := range services.Team() {
			assert.Contains(t, body, member.Name)
		}
		for _, show := range services.Shows() {
			assert.Contains(t, body, `src="`+show.Image+`"`)
		}
		for _, item := range services.Press() {
			assert.Contains(t, body, item.Outlet)
		}
	})
}

func TestPhotoFiles(t *testing.T) {
	h := newTestRouter(t, &recordingAppender{}, 100)

	w := do(t, h, http.MethodGet, "/projects/"+url.PathEscape("No. 4-2022")+"/1.jpg", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())

	w = do(t, h, http.MethodGet, "/css/missing.css", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMissingViews(t *testing.T) {
	h := NewRouter(Options{
		Projects: services.NewProjectService(stubSource{}),
		Leads:    services.NewLeadService(&recordingAppender{}, services.LeadOptions{}),
		ViewsDir: filepath.Join(t.TempDir(), "missing"),
	})

	w := do(t, h, http.MethodGet, "/studio", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSubmitInquiryAPI(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		appender := &recordingAppender{}
		h := newTestRouter(t, appender, 100)

		w := do(t, h, http.MethodPost, "/api/inquiries", "application/json", validInquiryJSON)
		assert.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 1, appender.count())
		assert.Equal(t, "Ada", appender.rows[0][1])
		assert.Equal(t, "Yes", appender.rows[0][9])
	})

	t.Run("invalid", func(t *testing.T) {
		appender := &recordingAppender{}
		h := newTestRouter(t, appender, 100)

		w := do(t, h, http.MethodPost, "/api/inquiries", "application/json", `{"name":"","email":"nope"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Errors, "name")
		assert.Equal(t, "Please enter a valid email address", body.Errors["email"])
		assert.Zero(t, appender.count())
	})

	t.Run("append failure", func(t *testing.T) {
		appender := &recordingAppender{err: errors.New("sheets unavailable")}
		h := newTestRouter(t, appender, 100)

		w := do(t, h, http.MethodPost, "/api/inquiries", "application/json", validInquiryJSON)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"`+FailureMessage+`"}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newTestRouter(t, &recordingAppender{}, 100)

		w := do(t, h, http.MethodPost, "/api/inquiries", "application/json", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestContactForm(t *testing.T) {
	appender := &recordingAppender{}
	h := newTestRouter(t, appender, 100)
	formType := "application/x-www-form-urlencoded"

	w := do(t, h, http.MethodPost, "/contact", formType, url.Values{"name": {"Ada"}}.Encode())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `value="Ada"`)
	assert.Contains(t, w.Body.String(), "Please choose a project type")
	assert.Zero(t, appender.count())

	form := url.Values{
		"name":        {"Ada"},
		"email":       {"ada@example.com"},
		"projectType": {"Single room"},
		"message":     {"Nursery refresh"},
		"newsletter":  {"on"},
	}
	w = do(t, h, http.MethodPost, "/contact", formType, form.Encode())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, appender.count())

	appender.err = errors.New("timeout")
	w = do(t, h, http.MethodPost, "/contact", formType, form.Encode())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), FailureMessage)
}

func TestNewsletter(t *testing.T) {
	appender := &recordingAppender{}
	h := newTestRouter(t, appender, 100)

	w := do(t, h, http.MethodPost, "/api/newsletter", "application/json", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/api/newsletter", "application/json", `{"email":"ada@"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/newsletter", "application/x-www-form-urlencoded", "email=grace%40example.com")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 2, appender.count())
}

func TestSubmissionRateLimit(t *testing.T) {
	appender := &recordingAppender{}
	h := newTestRouter(t, appender, 2)

	for i := 0; i < 2; i++ {
		w := do(t, h, http.MethodPost, "/api/inquiries", "application/json", validInquiryJSON)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := do(t, h, http.MethodPost, "/api/inquiries", "application/json", validInquiryJSON)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 2, appender.count())

	// Read-only routes are not limited
	w = do(t, h, http.MethodGet, "/api/projects", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
