package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"studio-site/pkg/logging"
	"studio-site/pkg/metrics"
)

// TimestampLayout is the spreadsheet timestamp column format
const TimestampLayout = "01/02/2006 15:04:05"

const (
	formInquiry    = "inquiry"
	formNewsletter = "newsletter"
)

// RowAppender appends a single row to a spreadsheet range
type RowAppender interface {
	AppendRow(ctx context.Context, sheetRange string, row []interface{}) error
}

// Checkbox is a form checkbox value. It decodes from a JSON string or bool.
type Checkbox string

// UnmarshalJSON accepts both "on" style strings and JSON booleans
func (c *Checkbox) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*c = "true"
		} else {
			*c = ""
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("checkbox must be a string or boolean: %w", err)
	}
	*c = Checkbox(s)
	return nil
}

// Checked coerces the raw checkbox value to a bool
func (c Checkbox) Checked() bool {
	switch strings.ToLower(strings.TrimSpace(string(c))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// InquiryForm is the raw inquiry form as submitted
type InquiryForm struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Location    string   `json:"location"`
	ProjectType string   `json:"projectType"`
	Budget      string   `json:"budget"`
	Timeline    string   `json:"timeline"`
	Message     string   `json:"message"`
	Newsletter  Checkbox `json:"newsletter"`
}

// Inquiry is a validated inquiry
type Inquiry struct {
	Name        string
	Email       string
	Phone       string
	Location    string
	ProjectType string
	Budget      string
	Timeline    string
	Message     string
	Newsletter  bool
}

// FieldErrors maps a form field name to its message
type FieldErrors map[string]string

// ValidationError is returned when a submission fails validation
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid submission: " + strings.Join(names, ", ")
}

// ValidateInquiry trims and checks form. The returned FieldErrors is nil when the form is valid.
func ValidateInquiry(form InquiryForm) (Inquiry, FieldErrors) {
	inq := Inquiry{
		Name:        strings.TrimSpace(form.Name),
		Email:       strings.TrimSpace(form.Email),
		Phone:       strings.TrimSpace(form.Phone),
		Location:    strings.TrimSpace(form.Location),
		ProjectType: strings.TrimSpace(form.ProjectType),
		Budget:      strings.TrimSpace(form.Budget),
		Timeline:    strings.TrimSpace(form.Timeline),
		Message:     strings.TrimSpace(form.Message),
		Newsletter:  form.Newsletter.Checked(),
	}

	errs := FieldErrors{}
	if inq.Name == "" {
		errs["name"] = "Name is required"
	}
	if msg := checkEmail(inq.Email); msg != "" {
		errs["email"] = msg
	}
	if inq.ProjectType == "" {
		errs["projectType"] = "Please choose a project type"
	}
	if inq.Message == "" {
		errs["message"] = "Tell us a little about your project"
	}

	if len(errs) == 0 {
		return inq, nil
	}
	return inq, errs
}

// ValidateEmail returns a user-facing message when email is not a usable address
func ValidateEmail(email string) FieldErrors {
	if msg := checkEmail(strings.TrimSpace(email)); msg != "" {
		return FieldErrors{"email": msg}
	}
	return nil
}

func checkEmail(email string) string {
	if email == "" {
		return "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "Please enter a valid email address"
	}
	at := strings.LastIndexByte(email, '@')
	if domain := email[at+1:]; !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return "Please enter a valid email address"
	}
	return ""
}

// LeadService validates submissions and appends them to the lead spreadsheet
type LeadService struct {
	appender        RowAppender
	inquiryRange    string
	newsletterRange string
	location        *time.Location
	now             func() time.Time
	log             zerolog.Logger
}

// LeadOptions configures a LeadService
type LeadOptions struct {
	InquiryRange    string
	NewsletterRange string
	Location        *time.Location
}

// NewLeadService creates a LeadService writing through appender
func NewLeadService(appender RowAppender, opts LeadOptions) *LeadService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &LeadService{
		appender:        appender,
		inquiryRange:    opts.InquiryRange,
		newsletterRange: opts.NewsletterRange,
		location:        loc,
		now:             time.Now,
		log:             logging.WithComponent("leads"),
	}
}

// SubmitInquiry validates form and appends one row to the inquiry range.
// Invalid input returns a *ValidationError and appends nothing.
func (s *LeadService) SubmitInquiry(ctx context.Context, form InquiryForm) error {
	inq, fieldErrs := ValidateInquiry(form)
	if fieldErrs != nil {
		metrics.RecordSubmission(formInquiry, metrics.ResultInvalid)
		return &ValidationError{Fields: fieldErrs}
	}

	if err := s.appender.AppendRow(ctx, s.inquiryRange, InquiryRow(inq, s.timestamp())); err != nil {
		metrics.RecordSubmission(formInquiry, metrics.ResultFailed)
		s.log.Error().Err(err).Str("range", s.inquiryRange).Msg("failed to append inquiry")
		return fmt.Errorf("append inquiry: %w", err)
	}

	metrics.RecordSubmission(formInquiry, metrics.ResultSent)
	s.log.Info().Str("project_type", inq.ProjectType).Bool("newsletter", inq.Newsletter).Msg("inquiry recorded")
	return nil
}

// Subscribe validates email and appends it to the newsletter range
func (s *LeadService) Subscribe(ctx context.Context, email string) error {
	if fieldErrs := ValidateEmail(email); fieldErrs != nil {
		metrics.RecordSubmission(formNewsletter, metrics.ResultInvalid)
		return &ValidationError{Fields: fieldErrs}
	}

	row := []interface{}{s.timestamp(), strings.TrimSpace(email)}
	if err := s.appender.AppendRow(ctx, s.newsletterRange, row); err != nil {
		metrics.RecordSubmission(formNewsletter, metrics.ResultFailed)
		s.log.Error().Err(err).Str("range", s.newsletterRange).Msg("failed to append newsletter signup")
		return fmt.Errorf("append newsletter signup: %w", err)
	}

	metrics.RecordSubmission(formNewsletter, metrics.ResultSent)
	s.log.Info().Msg("newsletter signup recorded")
	return nil
}

func (s *LeadService) timestamp() string {
	return s.now().In(s.location).Format(TimestampLayout)
}

// InquiryRow lays out inq in the spreadsheet column order
func InquiryRow(inq Inquiry, timestamp string) []interface{} {
	newsletter := "No"
	if inq.Newsletter {
		newsletter = "Yes"
	}
	return []interface{}{
		timestamp,
		inq.Name,
		inq.Email,
		inq.Phone,
		inq.Location,
		inq.ProjectType,
		inq.Budget,
		inq.Timeline,
		inq.Message,
		newsletter,
	}
}
