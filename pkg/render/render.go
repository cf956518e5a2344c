// Package render turns status pages and incidents into tables, JSON, YAML, CSV or plain text.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/timefmt"
)

// Renderer writes dashboard views in one output format and language
type Renderer struct {
	format           config.OutputFormat
	formatter        *timefmt.Formatter
	labels           Labels
	descriptionLimit int
}

// New creates a renderer. Unknown formats fall back to a table.
func New(format config.OutputFormat, formatter *timefmt.Formatter, descriptionLimit int) *Renderer {
	if !format.IsValid() {
		format = config.FormatTable
	}
	if formatter == nil {
		formatter = timefmt.New(timefmt.LanguageCzech)
	}
	if descriptionLimit <= 0 {
		descriptionLimit = DefaultDescriptionLimit
	}

	return &Renderer{
		format:           format,
		formatter:        formatter,
		labels:           LabelsFor(formatter.Language()),
		descriptionLimit: descriptionLimit,
	}
}

// NewFromConfig creates a renderer from the display settings
func NewFromConfig(cfg *config.Config) *Renderer {
	lang, err := timefmt.ParseLanguage(cfg.Display.Language)
	if err != nil {
		lang = timefmt.LanguageCzech
	}
	return New(config.OutputFormat(cfg.Display.Format), timefmt.New(lang), cfg.Display.DescriptionLimit)
}

// Format returns the output format
func (r *Renderer) Format() config.OutputFormat {
	return r.format
}

// Labels returns the localized labels
func (r *Renderer) Labels() Labels {
	return r.labels
}

// Formatter returns the time formatter
func (r *Renderer) Formatter() *timefmt.Formatter {
	return r.formatter
}

// StatusTable writes the overview of all status pages
func (r *Renderer) StatusTable(w io.Writer, pages []api.StatusPage, now time.Time) error {
	rows := StatusRows(pages, now, r.formatter)

	switch r.format {
	case config.FormatJSON:
		return writeJSON(w, rows)
	case config.FormatYAML:
		return writeYAML(w, rows)
	case config.FormatCSV:
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{row.Name, row.StatusLabel, row.LastCheckedAgo, row.URL})
		}
		return writeCSV(w, []string{"name", "status", "last_checked_ago", "url"}, records)
	case config.FormatText:
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", row.Name, row.StatusLabel, row.LastCheckedAgo); err != nil {
				return err
			}
		}
		return nil
	default:
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", r.labels.Title, r.labels.Subtitle); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{r.labels.Name, r.labels.Status, r.labels.LastCheckedAgo, r.labels.Details})
		table.SetAutoWrapText(false)
		for _, row := range rows {
			table.Append([]string{row.Name, row.StatusLabel, row.LastCheckedAgo, row.Detail})
		}
		table.Render()
		return nil
	}
}

// SearchResults writes the status pages matching a search
func (r *Renderer) SearchResults(w io.Writer, query string, pages []api.StatusPage) error {
	type result struct {
		Name   string `json:"name" yaml:"name"`
		URL    string `json:"url" yaml:"url"`
		Detail string `json:"detail" yaml:"detail"`
	}

	results := make([]result, 0, len(pages))
	for _, page := range pages {
		results = append(results, result{Name: page.Name, URL: page.URL, Detail: DetailCommand(page.Name)})
	}

	switch r.format {
	case config.FormatJSON:
		return writeJSON(w, map[string]interface{}{"query": query, "statusPages": results})
	case config.FormatYAML:
		return writeYAML(w, map[string]interface{}{"query": query, "status_pages": results})
	case config.FormatCSV:
		records := make([][]string, 0, len(results))
		for _, res := range results {
			records = append(records, []string{res.Name, res.URL})
		}
		return writeCSV(w, []string{"name", "url"}, records)
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, r.labels.NoSearchResults)
		return err
	}

	if r.format == config.FormatText {
		for _, res := range results {
			if _, err := fmt.Fprintln(w, res.Name); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{r.labels.Name, "URL", r.labels.Details})
	table.SetAutoWrapText(false)
	for _, res := range results {
		table.Append([]string{res.Name, res.URL, res.Detail})
	}
	table.Render()
	return nil
}

// Suggestions writes the "did you mean" list shown when a status page is not found
func (r *Renderer) Suggestions(w io.Writer, name string, pages []api.StatusPage) error {
	if len(pages) == 0 {
		_, err := fmt.Fprintln(w, r.labels.NoSearchResults)
		return err
	}

	if _, err := fmt.Fprintf(w, r.labels.DidYouMean+"\n", name); err != nil {
		return err
	}
	for _, page := range pages {
		if _, err := fmt.Fprintf(w, "  - %s  (%s)\n", page.Name, DetailCommand(page.Name)); err != nil {
			return err
		}
	}
	return nil
}

// CompanyDetail writes the current status and incident history of one status page
func (r *Renderer) CompanyDetail(w io.Writer, detail *api.CompanyDetail, now time.Time) error {
	rows := IncidentRows(detail.Incidents, now, r.formatter, r.descriptionLimit)

	switch r.format {
	case config.FormatJSON:
		return writeJSON(w, r.detailDocument(detail, rows, now))
	case config.FormatYAML:
		return writeYAML(w, r.detailDocument(detail, rows, now))
	case config.FormatCSV:
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{row.Start, string(row.Impact), row.Duration, row.Description})
		}
		return writeCSV(w, []string{"start", "impact", "duration", "description"}, records)
	}

	var b strings.Builder
	page := detail.StatusPage

	fmt.Fprintf(&b, "%s - %s\n\n", page.DisplayName(), r.labels.ServiceStatus)

	if detail.Status.IsHealthy() || detail.Status.IsFailing() {
		fmt.Fprintf(&b, "%s: %s\n", r.labels.CurrentStatus, r.labels.StatusLabel(detail.Status))
		fmt.Fprintf(&b, r.labels.LastCheckFormat+"\n\n", page.Name, page.URL,
			r.formatter.TimeAgo(page.LastCurrentlyScraped, now))
	}

	if !detail.IsIndexed {
		fmt.Fprintf(&b, r.labels.NotIndexedTitle+"\n", page.Name)
		fmt.Fprintf(&b, r.labels.NotIndexedLink+"\n", page.URL)
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "%s\n", r.labels.Incidents)
	if len(rows) == 0 {
		fmt.Fprintf(&b, "%s\n", r.labels.NoIncidents)
		_, err := io.WriteString(w, b.String())
		return err
	}

	if r.format == config.FormatText {
		for _, row := range rows {
			fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", row.Start, row.Impact, row.Duration, row.Description)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{r.labels.Start, r.labels.Impact, r.labels.Duration, r.labels.Description})
	table.SetAutoWrapText(false)
	for _, row := range rows {
		table.Append([]string{row.Start, string(row.Impact), row.Duration, row.Description})
	}
	table.SetCaption(true, fmt.Sprintf(r.labels.Source, page.Name, page.URL))
	table.Render()
	return nil
}

type detailDocument struct {
	Name           string        `json:"name" yaml:"name"`
	URL            string        `json:"url" yaml:"url"`
	Status         api.Status    `json:"status" yaml:"status"`
	StatusLabel    string        `json:"statusLabel" yaml:"status_label"`
	IsIndexed      bool          `json:"isIndexed" yaml:"is_indexed"`
	LastCheckedAgo string        `json:"lastCheckedAgo" yaml:"last_checked_ago"`
	Incidents      []IncidentRow `json:"incidents" yaml:"incidents"`
}

func (r *Renderer) detailDocument(detail *api.CompanyDetail, rows []IncidentRow, now time.Time) detailDocument {
	return detailDocument{
		Name:           detail.StatusPage.Name,
		URL:            detail.StatusPage.URL,
		Status:         detail.Status,
		StatusLabel:    r.labels.StatusLabel(detail.Status),
		IsIndexed:      detail.IsIndexed,
		LastCheckedAgo: r.formatter.TimeAgo(detail.StatusPage.LastCurrentlyScraped, now),
		Incidents:      rows,
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}
