package services

import "studio-site/pkg/models"

var team = []models.TeamMember{
	{
		Name:  "Margot Ellery",
		Role:  "Founder & Principal Designer",
		Bio:   "Margot founded the studio after a decade restoring pre-war apartments. She leads every project from first walkthrough to final install.",
		Image: "/images/team/margot.jpg",
	},
	{
		Name:  "Theo Blanchard",
		Role:  "Senior Designer",
		Bio:   "Theo handles space planning and millwork, drawing on his background in architecture and furniture making.",
		Image: "/images/team/theo.jpg",
	},
	{
		Name:  "Priya Nair",
		Role:  "Design Associate",
		Bio:   "Priya sources textiles, lighting and vintage pieces and keeps the studio library in order.",
		Image: "/images/team/priya.jpg",
	},
	{
		Name:  "Jonah Webb",
		Role:  "Project Manager",
		Bio:   "Jonah coordinates contractors, schedules and deliveries so installs land on time.",
		Image: "/images/team/jonah.jpg",
	},
}

var shows = []models.ShowAppearance{
	{
		Name:        "Kips Bay Decorator Show House",
		Description: "A library and reading room in warm walnut and hand-painted plaster.",
		Image:       "/images/shows/kips-bay.jpg",
		Link:        "https://www.kipsbaydecoratorshowhouse.org",
	},
	{
		Name:        "Holiday House",
		Description: "A dining room dressed for winter entertaining.",
		Image:       "/images/shows/holiday-house.jpg",
	},
	{
		Name:        "Hamptons Designer Showhouse",
		Description: "A sunroom built around a salvaged iron conservatory frame.",
		Image:       "/images/shows/hamptons.jpg",
	},
}

var press = []models.PressItem{
	{
		Outlet:      "Architectural Digest",
		Title:       "A Brownstone Gets a Second Life",
		Description: "How the studio reworked a narrow Brooklyn townhouse without losing its original trim.",
		Image:       "/images/press/ad.jpg",
		Link:        "https://www.architecturaldigest.com",
	},
	{
		Outlet:      "Elle Decor",
		Title:       "Designers to Watch",
		Description: "The studio named among the year's emerging residential practices.",
		Image:       "/images/press/elle-decor.jpg",
	},
	{
		Outlet:      "House Beautiful",
		Title:       "The Case for Color in Small Kitchens",
		Description: "Notes on lacquered cabinetry from the Park Ave Loft project.",
		Image:       "/images/press/house-beautiful.jpg",
	},
}

// Team returns the studio team members
func Team() []models.TeamMember {
	return append([]models.TeamMember(nil), team...)
}

// Shows returns the show-house appearances
func Shows() []models.ShowAppearance {
	return append([]models.ShowAppearance(nil), shows...)
}

// Press returns the press mentions
func Press() []models.PressItem {
	return append([]models.PressItem(nil), press...)
}

// Studio returns all static studio page content
func Studio() models.Studio {
	return models.Studio{Team: Team(), Shows: Shows(), Press: Press()}
}
