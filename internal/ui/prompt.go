package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/samerh/leadline/internal/models"
)

// serviceOptions are the preset caller-service choices for script
// generation. "Other" switches to a free-text description.
var serviceOptions = []string{
	"Digital Marketing Services",
	"Web Design & Development",
	"SEO & Online Visibility",
	"Social Media Management",
	"Google Ads & PPC",
	"Email Marketing",
	"Content Creation",
	"Business Consulting",
	"Financial Services",
	"Insurance Services",
	"Real Estate Services",
	"Legal Services",
	"Accounting & Bookkeeping",
	"HR & Recruitment",
	"IT Support & Services",
	"Cleaning Services",
	"Landscaping & Maintenance",
	"Restaurant Services",
	"Healthcare Services",
}

const customServiceOption = "Other (Custom)"

// sanitizeInput removes null bytes and other invisible control characters
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// PromptForSearch collects the location, category, and radius for one search
func PromptForSearch(defaultRadiusMeters int) (models.SearchQuery, error) {
	var location, category, radiusInput string
	defaultKm := defaultRadiusMeters / 1000

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Location").
				Description("Where to find businesses (e.g., New York, NY or London, UK)").
				Placeholder("New York, NY").
				Value(&location).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("location cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Business Type").
				Description("What kind of businesses (e.g., restaurant, dentist, marketing agency)").
				Placeholder("restaurant").
				Value(&category).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("business type cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Radius (km)").
				Description(fmt.Sprintf("Search radius from the location, 1-50 (default %d)", defaultKm)).
				Placeholder(strconv.Itoa(defaultKm)).
				Value(&radiusInput).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil // Will use default
					}
					km, err := strconv.Atoi(s)
					if err != nil || km < 1 || km > 50 {
						return fmt.Errorf("radius must be a number between 1 and 50")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return models.SearchQuery{}, fmt.Errorf("prompt cancelled: %w", err)
	}

	radiusMeters := defaultRadiusMeters
	if s := strings.TrimSpace(radiusInput); s != "" {
		km, _ := strconv.Atoi(s)
		radiusMeters = km * 1000
	}

	return models.SearchQuery{
		Location:     strings.TrimSpace(sanitizeInput(location)),
		Category:     strings.TrimSpace(sanitizeInput(category)),
		RadiusMeters: radiusMeters,
	}, nil
}

// PromptForService asks what the caller sells, for script generation.
// Returns an empty string if the user skips.
func PromptForService() (string, error) {
	options := make([]huh.Option[string], 0, len(serviceOptions)+2)
	options = append(options, huh.NewOption("Skip (no script generation)", ""))
	for _, svc := range serviceOptions {
		options = append(options, huh.NewOption(svc, svc))
	}
	options = append(options, huh.NewOption(customServiceOption, customServiceOption))

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you do?").
				Description("Used to tailor cold calling scripts to each business").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	if selected != customServiceOption {
		return selected, nil
	}

	var custom string
	customForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Describe your service").
				Description("Be specific about what you offer and who you help").
				Placeholder("We help restaurants increase online orders through social media advertising").
				Value(&custom),
		),
	)
	if err := customForm.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return strings.TrimSpace(sanitizeInput(custom)), nil
}

// ConfirmAnotherSearch asks whether to run another search or quit
func ConfirmAnotherSearch() bool {
	var again bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Run another search?").
				Affirmative("Yes").
				Negative("Quit").
				Value(&again),
		),
	)
	if err := form.Run(); err != nil {
		return false
	}
	return again
}

// PromptForProject asks which project database to open, offering existing
// .db files plus a "new project" entry
func PromptForProject(existing []string, defaultName string) (string, error) {
	const newProject = "Create new project"

	options := make([]huh.Option[string], 0, len(existing)+1)
	for _, name := range existing {
		options = append(options, huh.NewOption(name, name))
	}
	options = append(options, huh.NewOption(newProject, newProject))

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Project").
				Description("Each project keeps its own search history database").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	if selected != newProject {
		return selected, nil
	}

	var name string
	nameForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Placeholder(defaultName).
				Value(&name),
		),
	)
	if err := nameForm.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	name = strings.TrimSpace(sanitizeInput(name))
	if name == "" {
		name = defaultName
	}
	if !strings.HasSuffix(strings.ToLower(name), ".db") {
		name = name + ".db"
	}
	return name, nil
}
