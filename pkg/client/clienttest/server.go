// Package clienttest serves a canned statusphere API for tests.
package clienttest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/pacphi/statusboard/pkg/api"
)

// Fixture is the data the fake API serves
type Fixture struct {
	Pages     []api.StatusPage
	Status    map[string]api.CurrentStatusResponse
	Incidents map[string][]api.Incident
	// FailStatus makes /currentStatus answer with the given HTTP code for a page URL
	FailStatus map[string]int
}

// Server is an httptest server speaking the statusphere API
type Server struct {
	*httptest.Server

	fixture  Fixture
	mu       sync.Mutex
	requests map[string]int
	queries  map[string][]string
}

// NewServer starts a fake API for fixture. Close it when done.
func NewServer(fixture Fixture) *Server {
	s := &Server{
		fixture:  fixture,
		requests: make(map[string]int),
		queries:  make(map[string][]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/statusPages", s.handleList)
	mux.HandleFunc("/api/v1/statusPages/search", s.handleSearch)
	mux.HandleFunc("/api/v1/statusPage", s.handleStatusPage)
	mux.HandleFunc("/api/v1/currentStatus", s.handleCurrentStatus)
	mux.HandleFunc("/api/v1/incidents", s.handleIncidents)

	s.Server = httptest.NewServer(mux)
	return s
}

// Requests returns how many times path was hit
func (s *Server) Requests(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

// Queries returns the raw query strings received for path, in arrival order
func (s *Server) Queries(path string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries[path]...)
}

func (s *Server) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.URL.Path]++
	s.queries[r.URL.Path] = append(s.queries[r.URL.Path], r.URL.RawQuery)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	writeJSON(w, http.StatusOK, api.StatusPagesResponse{StatusPages: s.fixture.Pages})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	query := strings.ToLower(r.URL.Query().Get("query"))

	matches := []api.StatusPage{}
	for _, page := range s.fixture.Pages {
		if strings.Contains(strings.ToLower(page.Name), query) || strings.Contains(strings.ToLower(page.URL), query) {
			matches = append(matches, page)
		}
	}
	writeJSON(w, http.StatusOK, api.StatusPagesResponse{StatusPages: matches})
}

func (s *Server) handleStatusPage(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	name := r.URL.Query().Get("statusPageName")
	for _, page := range s.fixture.Pages {
		if page.Name == name {
			writeJSON(w, http.StatusOK, api.StatusPageResponse{StatusPage: page})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "status page not known to statusphere"})
}

func (s *Server) handleCurrentStatus(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	url := r.URL.Query().Get("statusPageUrl")
	if url == "" {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "statusPageUrl is required"})
		return
	}
	if code, ok := s.fixture.FailStatus[url]; ok {
		writeJSON(w, code, api.ErrorResponse{Error: http.StatusText(code)})
		return
	}
	status, ok := s.fixture.Status[url]
	if !ok {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "status page not known to statusphere"})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleIncidents(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	url := r.URL.Query().Get("statusPageUrl")
	incidents := s.fixture.Incidents[url]
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit >= 0 && limit < len(incidents) {
		incidents = incidents[:limit]
	}
	if incidents == nil {
		incidents = []api.Incident{}
	}
	writeJSON(w, http.StatusOK, api.IncidentsResponse{Incidents: incidents})
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// Sample returns a small fixture with an up, a degraded, an unindexed and a broken page.
// Times are relative to now.
func Sample(now time.Time) Fixture {
	ended := now.Add(-90 * time.Minute)
	desc := "Platební brána nepřijímá karty"

	return Fixture{
		Pages: []api.StatusPage{
			{Name: "payu", URL: "https://status.payu.com", IsIndexed: true, LastCurrentlyScraped: now.Add(-5 * time.Minute)},
			{Name: "csob", URL: "https://status.csob.cz", IsIndexed: true, LastCurrentlyScraped: now.Add(-65 * time.Second)},
			{Name: "rohlik", URL: "https://status.rohlik.cz", IsIndexed: false, LastCurrentlyScraped: now.Add(-2 * time.Hour)},
			{Name: "broken", URL: "https://status.broken.example", IsIndexed: true, LastCurrentlyScraped: now.Add(-time.Second)},
		},
		Status: map[string]api.CurrentStatusResponse{
			"https://status.payu.com":  {Status: api.StatusUp, IsIndexed: true},
			"https://status.csob.cz":   {Status: api.StatusDegraded, IsIndexed: true},
			"https://status.rohlik.cz": {Status: api.StatusUnknown, IsIndexed: false},
		},
		FailStatus: map[string]int{
			"https://status.broken.example": http.StatusInternalServerError,
		},
		Incidents: map[string][]api.Incident{
			"https://status.payu.com": {
				{
					Title:         "Nedostupnost plateb",
					StartTime:     now.Add(-3 * time.Hour),
					EndTime:       &ended,
					Description:   &desc,
					Impact:        api.ImpactMajor,
					DeepLink:      "https://status.payu.com/incidents/1",
					StatusPageURL: "https://status.payu.com",
				},
				{
					Title:         "Zpomalené API",
					StartTime:     now.Add(-30 * time.Minute),
					Impact:        api.ImpactMinor,
					DeepLink:      "https://status.payu.com/incidents/2",
					StatusPageURL: "https://status.payu.com",
				},
			},
		},
	}
}
