package render

import (
	"time"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/timefmt"
	"github.com/pacphi/statusboard/pkg/utils"
)

const (
	// DefaultDescriptionLimit is the number of runes shown before a description is cut
	DefaultDescriptionLimit = 120
	ellipsis                = "..."
)

// StatusRow is one line of the status table, already formatted
type StatusRow struct {
	Name           string     `json:"name" yaml:"name"`
	Status         api.Status `json:"status" yaml:"status"`
	StatusLabel    string     `json:"statusLabel" yaml:"status_label"`
	LastCheckedAgo string     `json:"lastCheckedAgo" yaml:"last_checked_ago"`
	LastChecked    time.Time  `json:"lastChecked" yaml:"last_checked"`
	URL            string     `json:"url" yaml:"url"`
	Detail         string     `json:"detail" yaml:"detail"`
}

// IncidentRow is one line of the incident table, already formatted
type IncidentRow struct {
	Title       string     `json:"title" yaml:"title"`
	Start       string     `json:"start" yaml:"start"`
	Impact      api.Impact `json:"impact" yaml:"impact"`
	Duration    string     `json:"duration" yaml:"duration"`
	Ongoing     bool       `json:"ongoing" yaml:"ongoing"`
	Description string     `json:"description" yaml:"description"`
	Link        string     `json:"link,omitempty" yaml:"link,omitempty"`
}

// StatusLabel returns the localized short label for a status
func (l Labels) StatusLabel(s api.Status) string {
	switch {
	case s.IsHealthy():
		return l.StatusUp
	case s.IsFailing():
		return l.StatusFailing
	default:
		return l.StatusUnknown
	}
}

// StatusRows formats pages for display. "Time ago" cells are relative to now.
func StatusRows(pages []api.StatusPage, now time.Time, f *timefmt.Formatter) []StatusRow {
	labels := LabelsFor(f.Language())
	rows := make([]StatusRow, 0, len(pages))

	for _, page := range pages {
		rows = append(rows, StatusRow{
			Name:           page.DisplayName(),
			Status:         api.ParseStatus(string(page.Status)),
			StatusLabel:    labels.StatusLabel(page.Status),
			LastCheckedAgo: f.TimeAgo(page.LastCurrentlyScraped, now),
			LastChecked:    page.LastCurrentlyScraped,
			URL:            page.URL,
			Detail:         DetailCommand(page.Name),
		})
	}
	return rows
}

// IncidentRows formats incidents for display. Ongoing incidents are measured up to now.
func IncidentRows(incidents []api.Incident, now time.Time, f *timefmt.Formatter, descriptionLimit int) []IncidentRow {
	labels := LabelsFor(f.Language())
	rows := make([]IncidentRow, 0, len(incidents))

	for _, incident := range incidents {
		duration := f.Duration(incident.StartTime, incident.End(now))
		ongoing := incident.IsOngoing(now)
		if ongoing {
			duration += " " + labels.Ongoing
		}

		description := incident.DescriptionText()
		if description == "" {
			description = labels.NoDescription
		} else {
			description = Excerpt(description, descriptionLimit)
		}

		rows = append(rows, IncidentRow{
			Title:       incident.Title,
			Start:       f.SimpleDate(incident.StartTime),
			Impact:      incident.Impact,
			Duration:    duration,
			Ongoing:     ongoing,
			Description: description,
			Link:        incident.DeepLink,
		})
	}
	return rows
}

// Excerpt cuts text to limit runes followed by "..."
func Excerpt(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultDescriptionLimit
	}
	return utils.Truncate(text, limit, ellipsis)
}

// DetailCommand is the command that opens the detail view of a status page
func DetailCommand(name string) string {
	return "statusboard status " + name
}
