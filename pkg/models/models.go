package models

// Project represents a portfolio entry with its photo set
type Project struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Year   int      `json:"year,omitempty"`
	Folder string   `json:"-"`
	Cover  string   `json:"cover,omitempty"`
	Images []string `json:"images"`
}

// Href returns the project page path
func (p Project) Href() string {
	return "/projects/" + p.ID
}

// TeamMember represents a person on the studio page
type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}

// ShowAppearance represents a show-house or television appearance
type ShowAppearance struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link,omitempty"`
}

// PressItem represents a press mention
type PressItem struct {
	Outlet      string `json:"outlet"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link,omitempty"`
}

// Studio groups the static studio page content
type Studio struct {
	Team  []TeamMember     `json:"team"`
	Shows []ShowAppearance `json:"shows"`
	Press []PressItem      `json:"press"`
}

// Index represents the home page data
type Index struct {
	Hero     []string
	Featured []ProjectCard
}

// ProjectCard is the view of a project in a listing
type ProjectCard struct {
	Name  string
	Year  int
	Href  string
	Cover string
}

// Gallery represents the project listing page data
type Gallery struct {
	Projects []ProjectCard
}

// ProjectPage represents a single project page
type ProjectPage struct {
	Name   string
	Year   int
	Images []string
}

// Contact represents the contact page data
type Contact struct {
	Form    InquiryFields
	Errors  InquiryFields
	Failure string
	Sent    bool
}

// InquiryFields mirrors the inquiry form, used for both values and messages
type InquiryFields struct {
	Name        string
	Email       string
	Phone       string
	Location    string
	ProjectType string
	Budget      string
	Timeline    string
	Message     string
	Newsletter  string
}

// Newsletter represents the newsletter signup result page
type Newsletter struct {
	Email   string
	Error   string
	Failure string
	Sent    bool
}
