package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"invdash/dashboard"
)

const appTitle = "Inventory Management Dashboard"

func (m *Model) View() string {
	var body string
	if m.form != nil {
		body = m.form.view(m.surface)
	} else {
		body = m.sectionView(m.app.State().Active)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(appTitle),
		m.tabsView(),
		sectionStyle.Render(body),
		m.statusView(),
		helpStyle.Render(m.helpText()),
	)
}

func (m *Model) tabsView() string {
	active := m.app.State().Active
	tabs := make([]string, 0, len(dashboard.Sections))
	for i, s := range dashboard.Sections {
		label := strconv.Itoa(i+1) + " " + s.Title()
		if s == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) sectionView(s dashboard.Section) string {
	switch s {
	case dashboard.SectionDashboard:
		return m.dashboardView()
	case dashboard.SectionReports:
		return m.reportsView()
	}
	return m.listView(s)
}

// ============================================================================
// Dashboard
// ============================================================================

func cardsRow(cards []dashboard.StatCard) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, cardStyle.Render(
			cardValueStyle.Render(c.Value)+"\n"+cardLabelStyle.Render(c.Label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) dashboardView() string {
	stats := m.surface.stats
	var sb strings.Builder
	sb.WriteString(cardsRow(stats.Cards))
	sb.WriteString("\n")
	sb.WriteString(cardsRow(stats.Secondary))
	sb.WriteString("\n\n")
	sb.WriteString(headingStyle.Render("Recent Activity"))
	sb.WriteString("\n")

	activity := m.surface.activity
	if len(activity.Items) == 0 {
		sb.WriteString(mutedStyle.Render(activity.Empty))
		return sb.String()
	}
	for _, item := range activity.Items {
		sb.WriteString(item.Glyph + " " + lipgloss.NewStyle().Bold(true).Render(item.ProductName) +
			"  " + mutedStyle.Render(item.Detail) + "\n")
	}
	return sb.String()
}

// ============================================================================
// Lists
// ============================================================================

func (m *Model) listView(list dashboard.Section) string {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render(list.Title()))
	sb.WriteString("\n")
	if filters := m.filtersView(list); filters != "" {
		sb.WriteString(filters + "\n\n")
	}
	sb.WriteString(m.tables[list].View())
	sb.WriteString("\n")
	sb.WriteString(pagerView(m.surface.pages[list]))
	return sb.String()
}

func (m *Model) filtersView(list dashboard.Section) string {
	state := m.app.State()
	var parts []string

	if in, ok := m.searches[list]; ok {
		if m.searching || in.Value() != "" {
			parts = append(parts, in.View())
		}
	}

	switch list {
	case dashboard.SectionProducts:
		category := "All Categories"
		if state.ProductFilter.CategoryID != "" {
			category = m.surface.optionLabel(dashboard.OptionsCategoryFilter, state.ProductFilter.CategoryID)
		}
		low := "off"
		if state.ProductFilter.LowStock {
			low = "on"
		}
		parts = append(parts, mutedStyle.Render("Category: ")+category, mutedStyle.Render("Low stock: ")+low)
	case dashboard.SectionOrders:
		status := "All Statuses"
		if state.OrderStatus != "" {
			status = state.OrderStatus
		}
		parts = append(parts, mutedStyle.Render("Status: ")+status)
	}
	return strings.Join(parts, "   ")
}

// pagerView draws pagination as a line; disabled ends are dimmed.
func pagerView(p dashboard.PaginationView) string {
	buttons := p.Buttons()
	if len(buttons) == 0 {
		return ""
	}
	parts := make([]string, 0, len(buttons))
	for _, btn := range buttons {
		switch {
		case btn.Active:
			parts = append(parts, activeStyle.Render("["+btn.Label+"]"))
		case btn.Disabled:
			parts = append(parts, mutedStyle.Render(btn.Label))
		default:
			parts = append(parts, btn.Label)
		}
	}
	return strings.Join(parts, " ")
}

// ============================================================================
// Reports
// ============================================================================

var reportMenu = []string{"a Low Inventory", "b Sales by Category", "c Top Products", "d Inventory Valuation"}

func (m *Model) reportsView() string {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Reports"))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Join(reportMenu, "   ")))
	sb.WriteString("\n\n")

	r := m.surface.report
	if r == nil {
		sb.WriteString(mutedStyle.Render("Select a report"))
		return sb.String()
	}
	sb.WriteString(headingStyle.Render(r.Title))
	sb.WriteString("\n")
	if r.Subtitle != "" {
		sb.WriteString(mutedStyle.Render(r.Subtitle) + "\n")
	}
	sb.WriteString(grid(r.Table))
	return sb.String()
}

// grid renders a table view as aligned text with styled badges.
func grid(v dashboard.TableView) string {
	if len(v.Rows) == 0 {
		return mutedStyle.Render(v.Empty)
	}

	widths := make([]int, len(v.Columns))
	for i, c := range v.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range v.Rows {
		for i, cell := range row.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell.Text))
			}
		}
	}

	pad := func(s string, w int) string {
		return lipgloss.NewStyle().Width(w + 2).Render(s)
	}

	var sb strings.Builder
	for i, c := range v.Columns {
		sb.WriteString(pad(lipgloss.NewStyle().Bold(true).Render(c), widths[i]))
	}
	sb.WriteString("\n")
	for _, row := range v.Rows {
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			text := cell.Text
			if style, ok := badgeStyles[cell.Badge]; ok {
				text = style.Render(text)
			}
			sb.WriteString(pad(text, widths[i]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ============================================================================
// Status and help
// ============================================================================

func (m *Model) statusView() string {
	if m.pending != nil {
		return promptStyle.Render(" " + m.pending.prompt + " (y/n)")
	}

	var parts []string
	if m.surface.loading {
		parts = append(parts, m.spinner.View()+" Loading...")
	}
	if n, ok := m.surface.visibleToast(); ok {
		style, found := toastStyles[string(n.Kind)]
		if !found {
			style = toastStyles["info"]
		}
		parts = append(parts, style.Render(n.Message))
	}
	return " " + strings.Join(parts, "  ")
}

func (m *Model) helpText() string {
	switch {
	case m.form != nil, m.pending != nil:
		return ""
	case m.searching:
		return "type to search • enter/esc done"
	}

	help := "1-5/tab sections • r refresh • q quit"
	switch active := m.app.State().Active; active {
	case dashboard.SectionProducts:
		help = "↑/↓ select • [ ] page • / search • c category • l low stock • n new • d delete • " + help
	case dashboard.SectionSuppliers:
		help = "↑/↓ select • [ ] page • / search • n new • d delete • " + help
	case dashboard.SectionOrders:
		help = "↑/↓ select • [ ] page • s status • n new • d delete • " + help
	case dashboard.SectionReports:
		help = "a-d load report • " + help
	}
	return help
}
