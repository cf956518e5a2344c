package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("1")).
	Bold(true)

// View renders the TUI based on current state
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.HeaderView(), m.ContentView(), m.FooterView())
}

// ContentView renders the main content area based on current view
func (m Model) ContentView() string {
	var content string
	switch m.currentView {
	case ViewDetail:
		content = m.DetailView()
	case ViewSearch:
		content = m.SearchView()
	case ViewHelp:
		content = m.HelpView()
	default:
		content = m.DashboardView()
	}

	if m.error != nil {
		content = errorStyle.Render("Error: "+m.error.Error()) + "\n\n" + content
	}
	return content
}

// DashboardView renders the status page list
func (m Model) DashboardView() string {
	if len(m.pages) == 0 {
		if m.loading {
			return "Loading status pages...\n"
		}
		return m.renderer.Labels().NoSearchResults + "\n"
	}
	return m.pageList.View()
}

// DetailView renders the current status and incidents of the selected page
func (m Model) DetailView() string {
	if m.detail == nil {
		if m.loading {
			return "Loading...\n"
		}
		return ""
	}

	var b strings.Builder
	if err := m.renderer.CompanyDetail(&b, m.detail, m.now); err != nil {
		return errorStyle.Render(err.Error())
	}

	// Keep the table inside the window
	lines := strings.Split(b.String(), "\n")
	if limit := m.height - headerHeight - footerHeight; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n")
}

// SearchView renders the search box and its results
func (m Model) SearchView() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	switch {
	case m.searchQuery == "":
	case len(m.searchResults) == 0 && !m.loading:
		b.WriteString(m.renderer.Labels().NoSearchResults)
		b.WriteString("\n")
	default:
		b.WriteString(m.searchList.View())
	}
	return b.String()
}

// HelpView renders the keyboard shortcuts
func (m Model) HelpView() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("14")).
		Padding(1, 2)

	var help strings.Builder
	help.WriteString(lipgloss.NewStyle().Underline(true).Render("Navigation:"))
	help.WriteString("\n")
	help.WriteString("  [↑/↓]        - Navigate lists\n")
	help.WriteString("  [ENTER]      - Show status page detail\n")
	help.WriteString("  [/]          - Search status pages\n")
	help.WriteString("  [ESC]        - Back\n")
	help.WriteString("  [r]          - Refresh data\n")
	help.WriteString("  [?/h]        - Toggle help\n")
	help.WriteString("  [q/Ctrl+C]   - Quit\n\n")

	labels := m.renderer.Labels()
	help.WriteString(lipgloss.NewStyle().Underline(true).Render(labels.Status + ":"))
	help.WriteString("\n")
	help.WriteString("  ● " + labels.StatusUp + "\n")
	help.WriteString("  ● " + labels.StatusFailing + "\n")
	help.WriteString("  ● " + labels.StatusUnknown + " - " + labels.UnknownStatusMsg + "\n")

	return style.Render(help.String())
}

// FooterView renders the status bar footer
func (m Model) FooterView() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7")).
		Background(lipgloss.Color("8")).
		Padding(0, 1).
		Width(m.width)

	shortcuts := " • [q]uit [/]search [r]efresh [?]help"
	if m.currentView == ViewDetail || m.currentView == ViewSearch {
		shortcuts = " • [esc]back [r]efresh [?]help"
	}

	return style.Render("statusboard • " + viewName(m.currentView) + shortcuts)
}
