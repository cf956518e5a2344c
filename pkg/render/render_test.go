package render

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/timefmt"
)

var testNow = time.Date(2024, 1, 5, 12, 0, 0, 0, time.Local)

func testPages() []api.StatusPage {
	return []api.StatusPage{
		{Name: "payu", URL: "https://status.payu.com", Status: api.StatusUp, LastCurrentlyScraped: testNow.Add(-5 * time.Hour)},
		{Name: "csob", URL: "https://status.csob.cz", Status: api.StatusDegraded, LastCurrentlyScraped: testNow.Add(-61 * time.Second)},
		{Name: "rohlik", URL: "https://status.rohlik.cz", Status: api.StatusUnknown, LastCurrentlyScraped: testNow.Add(-time.Second)},
	}
}

func testDetail() *api.CompanyDetail {
	ended := testNow.Add(-90 * time.Minute)
	long := strings.Repeat("x", 130)

	return &api.CompanyDetail{
		StatusPage: api.StatusPage{
			Name:                 "payu",
			URL:                  "https://status.payu.com",
			IsIndexed:            true,
			LastCurrentlyScraped: testNow.Add(-2 * time.Minute),
		},
		Status:    api.StatusDegraded,
		IsIndexed: true,
		Incidents: []api.Incident{
			{Title: "Zpomalené API", StartTime: testNow.Add(-30 * time.Minute), Impact: api.ImpactMinor},
			{Title: "Výpadek", StartTime: time.Date(2024, 1, 5, 9, 3, 0, 0, time.Local), EndTime: &ended, Description: &long, Impact: api.ImpactMajor},
		},
	}
}

func newCzech(format config.OutputFormat) *Renderer {
	return New(format, timefmt.New(timefmt.LanguageCzech), 0)
}

func TestNew_Fallbacks(t *testing.T) {
	r := New("html", nil, -1)
	assert.Equal(t, config.FormatTable, r.Format())
	assert.Equal(t, timefmt.LanguageCzech, r.Formatter().Language())
	assert.Equal(t, "Název", r.Labels().Name)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Display.Language = "en"
	cfg.Display.Format = "json"

	r := NewFromConfig(cfg)
	assert.Equal(t, config.FormatJSON, r.Format())
	assert.Equal(t, "Name", r.Labels().Name)
}

func TestStatusRows(t *testing.T) {
	rows := StatusRows(testPages(), testNow, timefmt.New(timefmt.LanguageCzech))
	require.Len(t, rows, 3)

	assert.Equal(t, "Payu", rows[0].Name)
	assert.Equal(t, "OK", rows[0].StatusLabel)
	assert.Equal(t, "5 hodinami", rows[0].LastCheckedAgo)
	assert.Equal(t, "statusboard status payu", rows[0].Detail)

	assert.Equal(t, "CHYBA", rows[1].StatusLabel)
	assert.Equal(t, "1 minutou, 1 vteřinou", rows[1].LastCheckedAgo)

	assert.Equal(t, "NEZNÁMÝ", rows[2].StatusLabel)
	assert.Equal(t, "1 vteřinou", rows[2].LastCheckedAgo)
}

func TestIncidentRows(t *testing.T) {
	rows := IncidentRows(testDetail().Incidents, testNow, timefmt.New(timefmt.LanguageCzech), 120)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Ongoing)
	assert.Equal(t, "30 minut (probíhá)", rows[0].Duration)
	assert.Equal(t, "No description", rows[0].Description)

	assert.False(t, rows[1].Ongoing)
	assert.Equal(t, "2024-01-05 09:03", rows[1].Start)
	assert.Equal(t, "1 hodina, 27 minut", rows[1].Duration)
	assert.Equal(t, strings.Repeat("x", 120)+"...", rows[1].Description)
}

func TestIncidentRows_EndInFuture(t *testing.T) {
	end := testNow.Add(2 * time.Hour)
	incidents := []api.Incident{{StartTime: testNow.Add(-45 * time.Minute), EndTime: &end}}

	rows := IncidentRows(incidents, testNow, timefmt.New(timefmt.LanguageCzech), 120)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Ongoing)
	assert.Equal(t, "45 minut (probíhá)", rows[0].Duration)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "krátký popis", Excerpt("krátký popis", 0))
	assert.Equal(t, "Výp...", Excerpt("Výpadek", 3))
}

func TestStatusTable_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatTable).StatusTable(&buf, testPages(), testNow))

	out := buf.String()
	assert.Contains(t, out, "Externí služby")
	assert.Contains(t, out, "NÁZEV")
	assert.Contains(t, out, "POSLEDNÍ KONTROLA PŘED")
	assert.Contains(t, out, "Payu")
	assert.Contains(t, out, "CHYBA")
	assert.Contains(t, out, "5 hodinami")
}

func TestStatusTable_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatJSON).StatusTable(&buf, testPages(), testNow))

	var rows []StatusRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, api.StatusDegraded, rows[1].Status)
	assert.Equal(t, "https://status.csob.cz", rows[1].URL)
}

func TestStatusTable_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatYAML).StatusTable(&buf, testPages(), testNow))

	var rows []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Payu", rows[0]["name"])
	assert.Equal(t, "OK", rows[0]["status_label"])
}

func TestStatusTable_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatCSV).StatusTable(&buf, testPages(), testNow))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"name", "status", "last_checked_ago", "url"}, records[0])
	assert.Equal(t, []string{"Csob", "CHYBA", "1 minutou, 1 vteřinou", "https://status.csob.cz"}, records[2])
}

func TestStatusTable_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatText).StatusTable(&buf, testPages(), testNow))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Payu\tOK\t5 hodinami", lines[0])
}

func TestStatusTable_English(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.FormatText, timefmt.New(timefmt.LanguageEnglish), 0)
	require.NoError(t, r.StatusTable(&buf, testPages()[:1], testNow))

	assert.Equal(t, "Payu\tOK\t5 hours ago\n", buf.String())
}

func TestCompanyDetail_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatTable).CompanyDetail(&buf, testDetail(), testNow))

	out := buf.String()
	assert.Contains(t, out, "Payu - Stav služby")
	assert.Contains(t, out, "Aktuální stav: CHYBA")
	assert.Contains(t, out, "proběhla před 2 minutami.")
	assert.Contains(t, out, "Incidenty")
	assert.Contains(t, out, "ZAČÁTEK (UTC)")
	assert.Contains(t, out, "30 minut (probíhá)")
	assert.Contains(t, out, "2024-01-05 09:03")
	assert.Contains(t, out, "Zdroj: Oficiální payu status stránka nebo API")
}

func TestCompanyDetail_UnknownStatusHidesCurrentStatus(t *testing.T) {
	detail := testDetail()
	detail.Status = api.StatusUnknown

	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatText).CompanyDetail(&buf, detail, testNow))

	assert.NotContains(t, buf.String(), "Aktuální stav")
	assert.Contains(t, buf.String(), "Incidenty")
}

func TestCompanyDetail_NoIncidents(t *testing.T) {
	detail := testDetail()
	detail.Incidents = nil

	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatTable).CompanyDetail(&buf, detail, testNow))

	assert.Contains(t, buf.String(), "Incidenty\nŽádné incidenty neevidujeme\n")
}

func TestCompanyDetail_NotIndexed(t *testing.T) {
	detail := testDetail()
	detail.IsIndexed = false
	detail.Status = api.StatusUnknown
	detail.Incidents = nil

	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatTable).CompanyDetail(&buf, detail, testNow))

	out := buf.String()
	assert.Contains(t, out, "Incidents are not currently indexed for payu")
	assert.Contains(t, out, "You can view the official status page at: https://status.payu.com")
	assert.NotContains(t, out, "Incidenty")
}

func TestCompanyDetail_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatJSON).CompanyDetail(&buf, testDetail(), testNow))

	var doc detailDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "payu", doc.Name)
	assert.Equal(t, "CHYBA", doc.StatusLabel)
	assert.Equal(t, "2 minutami", doc.LastCheckedAgo)
	require.Len(t, doc.Incidents, 2)
	assert.True(t, doc.Incidents[0].Ongoing)
}

func TestSearchResults(t *testing.T) {
	var buf bytes.Buffer
	r := newCzech(config.FormatText)

	require.NoError(t, r.SearchResults(&buf, "pay", testPages()[:1]))
	assert.Equal(t, "payu\n", buf.String())

	buf.Reset()
	require.NoError(t, r.SearchResults(&buf, "zzz", nil))
	assert.Equal(t, "No company found.\n", buf.String())

	buf.Reset()
	require.NoError(t, newCzech(config.FormatJSON).SearchResults(&buf, "pay", testPages()[:1]))
	assert.Contains(t, buf.String(), `"query": "pay"`)
	assert.Contains(t, buf.String(), `"detail": "statusboard status payu"`)
}

func TestSuggestions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCzech(config.FormatTable).Suggestions(&buf, "pay", testPages()[:1]))

	assert.Equal(t, "Nenašli jsme \"pay\". Možná jste hledali:\n  - payu  (statusboard status payu)\n", buf.String())
}
