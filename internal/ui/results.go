package ui

// results.go is the interactive review screen for one admitted batch:
// browse the table, filter, open a record, generate a script, export CSV.

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samerh/leadline/internal/api"
	"github.com/samerh/leadline/internal/export"
	"github.com/samerh/leadline/internal/models"
)

// viewMode selects which pane the results screen is showing
type viewMode int

const (
	modeTable viewMode = iota
	modeDetail
	modeScript
)

// ratingSteps are the minimum-rating filter values cycled by the "r" key
var ratingSteps = []float64{0, 3.0, 4.0, 4.5}

// ResultsConfig wires the review screen to the session
type ResultsConfig struct {
	Batch     *models.SearchBatch
	Remaining int // quota left after this batch committed

	// GenerateScript produces a calling script for one business.
	// Nil disables the "s" key.
	GenerateScript func(b *models.Business) (string, error)
}

// scriptMsg carries an async script generation result
type scriptMsg struct {
	business string
	script   string
	err      error
}

type resultsModel struct {
	cfg    ResultsConfig
	layout Layout

	table    table.Model
	filtered []models.Business // current rows, in batch order
	liveOnly bool
	ratingIx int

	mode       viewMode
	script     string
	generating bool
	status     string
}

// RunResults shows the review screen for an admitted batch
func RunResults(cfg ResultsConfig) error {
	m := resultsModel{
		cfg:    cfg,
		layout: DefaultLayout(),
	}
	m.applyFilters()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("results screen error: %w", err)
	}
	return nil
}

// applyFilters rebuilds the visible rows from the current filter state
func (m *resultsModel) applyFilters() {
	minRating := ratingSteps[m.ratingIx]

	m.filtered = m.filtered[:0]
	for _, b := range m.cfg.Batch.Businesses {
		if m.liveOnly && b.WebsiteState != models.LivenessLive {
			continue
		}
		if minRating > 0 && b.Rating < minRating {
			continue
		}
		m.filtered = append(m.filtered, b)
	}

	rows := make([]table.Row, len(m.filtered))
	for i, b := range m.filtered {
		phone := b.Phone
		if phone == "" {
			phone = "-"
		}
		website := "-"
		if b.HasWebsite() {
			website = b.Website
			if root, err := api.RootDomain(b.Website); err == nil {
				website = root
			}
		}
		rating := "-"
		if b.Rating > 0 {
			rating = fmt.Sprintf("%.1f (%d)", b.Rating, b.RatingCount)
		}
		rows[i] = table.Row{b.Name, b.Address, phone, website, b.WebsiteState.String(), rating}
	}

	m.table = NewResultsTable(BuildResultColumns(), rows)
}

// selected returns the business under the cursor, or nil on an empty view
func (m *resultsModel) selected() *models.Business {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[cursor]
}

func (m resultsModel) Init() tea.Cmd {
	return nil
}

func (m resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width)
		return m, nil

	case scriptMsg:
		m.generating = false
		if msg.err != nil {
			m.status = ErrorStyle.Render(fmt.Sprintf("Script failed: %v", msg.err))
			return m, nil
		}
		m.script = msg.script
		m.mode = modeScript
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeDetail, modeScript:
			switch msg.String() {
			case "esc", "q", "enter":
				m.mode = modeTable
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter":
			if m.selected() != nil {
				m.mode = modeDetail
			}
			return m, nil

		case "w":
			m.liveOnly = !m.liveOnly
			m.applyFilters()
			return m, nil

		case "r":
			m.ratingIx = (m.ratingIx + 1) % len(ratingSteps)
			m.applyFilters()
			return m, nil

		case "e":
			filename, err := export.ExportBatchCSV(m.cfg.Batch)
			if err != nil {
				m.status = ErrorStyle.Render(fmt.Sprintf("Export failed: %v", err))
			} else {
				m.status = SuccessStyle.Render(fmt.Sprintf("Exported %d contacts to %s", m.cfg.Batch.Size(), filename))
			}
			return m, nil

		case "s":
			if m.cfg.GenerateScript == nil {
				m.status = WarnStyle.Render("Set your service at startup to generate scripts")
				return m, nil
			}
			b := m.selected()
			if b == nil || m.generating {
				return m, nil
			}
			m.generating = true
			m.status = DimStyle.Render(fmt.Sprintf("Generating script for %s...", b.Name))
			return m, m.generateScript(b)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// generateScript runs script generation off the update loop
func (m resultsModel) generateScript(b *models.Business) tea.Cmd {
	business := *b
	gen := m.cfg.GenerateScript
	return func() tea.Msg {
		script, err := gen(&business)
		return scriptMsg{business: business.Name, script: script, err: err}
	}
}

func (m resultsModel) View() string {
	switch m.mode {
	case modeDetail:
		return m.detailView()
	case modeScript:
		return m.scriptView()
	}
	return m.tableView()
}

func (m resultsModel) tableView() string {
	var b strings.Builder

	title := fmt.Sprintf("%s near %s — %d contacts, %d remaining today",
		m.cfg.Batch.Query.Category, m.cfg.Batch.Query.Location, m.cfg.Batch.Size(), m.cfg.Remaining)
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	filters := []string{}
	if m.liveOnly {
		filters = append(filters, "live websites only")
	}
	if minRating := ratingSteps[m.ratingIx]; minRating > 0 {
		filters = append(filters, fmt.Sprintf("rating ≥ %.1f", minRating))
	}
	if len(filters) > 0 {
		b.WriteString(DimStyle.Render(fmt.Sprintf("Showing %d of %d (%s)",
			len(m.filtered), m.cfg.Batch.Size(), strings.Join(filters, ", "))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(DimStyle.Render("enter details · s script · e export CSV · w live filter · r rating filter · q back"))

	return BorderStyle.Width(m.layout.InnerWidth).Render(b.String())
}

func (m resultsModel) detailView() string {
	b := m.selected()
	if b == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(b.Name))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Address:  %s\n", orDash(b.Address)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(b.Phone)))
	sb.WriteString(fmt.Sprintf("Website:  %s (%s)\n", orDash(b.Website), b.WebsiteState))
	if b.Rating > 0 {
		sb.WriteString(fmt.Sprintf("Rating:   %.1f (%d reviews)\n", b.Rating, b.RatingCount))
	}
	if len(b.Categories) > 0 {
		sb.WriteString(fmt.Sprintf("Types:    %s\n", strings.Join(b.Categories, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Maps:     %s\n", orDash(b.MapURL)))
	if phone := b.DialablePhone(); phone != "" {
		sb.WriteString(fmt.Sprintf("Call:     tel:%s\n", phone))
	}
	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("esc back"))

	return BorderStyle.Width(m.layout.InnerWidth).Render(sb.String())
}

func (m resultsModel) scriptView() string {
	b := m.selected()
	name := ""
	if b != nil {
		name = b.Name
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("Cold Calling Script — %s", name)))
	sb.WriteString("\n\n")
	sb.WriteString(NormalStyle.Render(m.script))
	sb.WriteString("\n\n")
	sb.WriteString(DimStyle.Render("esc back"))

	return BorderStyle.Width(m.layout.InnerWidth).Render(sb.String())
}

// orDash substitutes a dash for empty fields
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
