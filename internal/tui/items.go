package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/render"
	"github.com/pacphi/statusboard/pkg/timefmt"
)

// StatusItem is a status page row in a list
type StatusItem struct {
	Page  api.StatusPage
	Label string
	Ago   string
}

func (i StatusItem) FilterValue() string {
	return i.Page.Name
}

// statusItems converts pages into list items, computing "time ago" against now
func statusItems(pages []api.StatusPage, now time.Time, f *timefmt.Formatter, labels render.Labels) []list.Item {
	items := make([]list.Item, len(pages))
	for i, page := range pages {
		items[i] = StatusItem{
			Page:  page,
			Label: labels.StatusLabel(page.Status),
			Ago:   f.TimeAgo(page.LastCurrentlyScraped, now),
		}
	}
	return items
}

// StatusDelegate handles rendering of status items
type StatusDelegate struct{}

func NewStatusDelegate() StatusDelegate {
	return StatusDelegate{}
}

func (d StatusDelegate) Height() int                               { return 1 }
func (d StatusDelegate) Spacing() int                              { return 0 }
func (d StatusDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d StatusDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(StatusItem)
	if !ok {
		return
	}

	icon := lipgloss.NewStyle().Foreground(statusColor(i.Page.Status)).Render("●")
	label := lipgloss.NewStyle().Foreground(statusColor(i.Page.Status)).Width(9).Render(i.Label)
	name := fmt.Sprintf("%-24s", i.Page.DisplayName())
	ago := agoStyle.Render(i.Ago)

	str := fmt.Sprintf("%s %s %s %s", icon, name, label, ago)

	fn := itemStyle.Render
	if index == m.Index() {
		str = "> " + str
		fn = selectedItemStyle.Render
	}

	fmt.Fprint(w, fn(str))
}

// statusColor maps a status to its indicator color
func statusColor(s api.Status) lipgloss.Color {
	switch {
	case s.IsHealthy():
		return lipgloss.Color("2") // Green
	case s.IsFailing():
		return lipgloss.Color("1") // Red
	default:
		return lipgloss.Color("8") // Gray
	}
}

// Styles for list items
var (
	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("170"))

	agoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Faint(true)
)
