package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pacphi/statusboard/pkg/api"
)

const (
	headerHeight = 7
	footerHeight = 1
)

var (
	gradientColors = []lipgloss.Color{
		lipgloss.Color("6"),  // Cyan
		lipgloss.Color("14"), // Bright Cyan
		lipgloss.Color("12"), // Bright Blue
	}

	boxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Faint(true)
)

// HeaderView renders the title and a summary box with the status counts
func (m Model) HeaderView() string {
	labels := m.renderer.Labels()

	title := lipgloss.NewStyle().
		Foreground(gradientColors[0]).
		Bold(true).
		Render("◉ " + labels.Title)
	subtitle := lipgloss.NewStyle().
		Foreground(gradientColors[2]).
		Render(labels.Subtitle)

	up, failing, unknown := countStatuses(m.pages)

	var stats strings.Builder
	stats.WriteString(lipgloss.NewStyle().Foreground(statusColor(api.StatusUp)).Bold(true).
		Render(fmt.Sprintf("%s %d", labels.StatusUp, up)))
	stats.WriteString("  ")
	stats.WriteString(lipgloss.NewStyle().Foreground(statusColor(api.StatusDegraded)).Bold(true).
		Render(fmt.Sprintf("%s %d", labels.StatusFailing, failing)))
	stats.WriteString("  ")
	stats.WriteString(lipgloss.NewStyle().Foreground(statusColor(api.StatusUnknown)).Bold(true).
		Render(fmt.Sprintf("%s %d", labels.StatusUnknown, unknown)))

	var updated string
	switch {
	case m.loading:
		updated = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("⠋ ...")
	case !m.lastUpdate.IsZero():
		updated = agoStyle.Render(fmt.Sprintf("%s: %s", labels.LastCheckedAgo,
			m.renderer.Formatter().TimeAgo(m.lastUpdate, m.now)))
	}

	inner := max(m.width-4, 20)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Width(inner).
		Render(lipgloss.JoinHorizontal(lipgloss.Top,
			stats.String(),
			strings.Repeat(" ", max(inner-lipgloss.Width(stats.String())-lipgloss.Width(updated), 1)),
			updated,
		))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, box, boxStyle.Render(viewName(m.currentView)))
}

func countStatuses(pages []api.StatusPage) (up, failing, unknown int) {
	for _, page := range pages {
		switch {
		case page.Status.IsHealthy():
			up++
		case page.Status.IsFailing():
			failing++
		default:
			unknown++
		}
	}
	return up, failing, unknown
}

func viewName(v ViewMode) string {
	return map[ViewMode]string{
		ViewDashboard: "Dashboard",
		ViewDetail:    "Detail",
		ViewSearch:    "Search",
		ViewHelp:      "Help",
	}[v]
}
