package api

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Impact is the severity the upstream status page assigned to an incident
type Impact string

const (
	ImpactMinor       Impact = "minor"
	ImpactMajor       Impact = "major"
	ImpactCritical    Impact = "critical"
	ImpactMaintenance Impact = "maintenance"
	ImpactNone        Impact = "none"
)

var ErrInvalidImpact = errors.New("invalid impact")

// ParseImpact converts a raw impact string into an Impact
func ParseImpact(impact string) (Impact, error) {
	switch Impact(strings.ToLower(impact)) {
	case ImpactMinor:
		return ImpactMinor, nil
	case ImpactMajor:
		return ImpactMajor, nil
	case ImpactCritical:
		return ImpactCritical, nil
	case ImpactMaintenance:
		return ImpactMaintenance, nil
	case ImpactNone:
		return ImpactNone, nil
	default:
		return "", ErrInvalidImpact
	}
}

// Status is the current state of a status page as reported by /currentStatus
type Status string

const (
	StatusUp       Status = "UP"
	StatusDegraded Status = "DEGRADED"
	StatusDown     Status = "DOWN"
	StatusUnknown  Status = "UNKNOWN"
)

// ParseStatus normalizes a status string. Anything unrecognized is UNKNOWN.
func ParseStatus(s string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusUp:
		return StatusUp
	case StatusDegraded:
		return StatusDegraded
	case StatusDown:
		return StatusDown
	default:
		return StatusUnknown
	}
}

// IsHealthy reports whether the service is up
func (s Status) IsHealthy() bool {
	return ParseStatus(string(s)) == StatusUp
}

// IsFailing reports whether the service is down or degraded
func (s Status) IsFailing() bool {
	switch ParseStatus(string(s)) {
	case StatusDown, StatusDegraded:
		return true
	default:
		return false
	}
}

// Label returns the short text shown in the status column
func (s Status) Label() string {
	switch {
	case s.IsHealthy():
		return "OK"
	case s.IsFailing():
		return "CHYBA"
	default:
		return "NEZNÁMÝ"
	}
}

// StatusPage is a monitored company or service
type StatusPage struct {
	Name                    string    `json:"name" yaml:"name"`
	URL                     string    `json:"url" yaml:"url"`
	LastHistoricallyScraped time.Time `json:"lastHistoricallyScraped" yaml:"last_historically_scraped"`
	LastCurrentlyScraped    time.Time `json:"lastCurrentlyScraped" yaml:"last_currently_scraped"`
	IsIndexed               bool      `json:"isIndexed" yaml:"is_indexed"`
	Status                  Status    `json:"status,omitempty" yaml:"status,omitempty"`
}

// DisplayName returns the name with its first letter upper-cased
func (p StatusPage) DisplayName() string {
	r, size := utf8.DecodeRuneInString(p.Name)
	if r == utf8.RuneError {
		return p.Name
	}
	return string(unicode.ToUpper(r)) + p.Name[size:]
}

// IncidentEvent is a single update posted on an incident
type IncidentEvent struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Time        time.Time `json:"time" yaml:"time"`
}

// Incident is an outage or maintenance window on a status page
type Incident struct {
	Title         string          `json:"title" yaml:"title"`
	Components    []string        `json:"components" yaml:"components,omitempty"`
	Events        []IncidentEvent `json:"events" yaml:"events,omitempty"`
	StartTime     time.Time       `json:"startTime" yaml:"start_time"`
	EndTime       *time.Time      `json:"endTime" yaml:"end_time,omitempty"`
	Description   *string         `json:"description" yaml:"description,omitempty"`
	DeepLink      string          `json:"deepLink" yaml:"deep_link"`
	Impact        Impact          `json:"impact" yaml:"impact"`
	StatusPageURL string          `json:"statusPageUrl" yaml:"status_page_url"`
}

// IsOngoing reports whether the incident has no end time, or ends after now
func (i Incident) IsOngoing(now time.Time) bool {
	return i.EndTime == nil || i.EndTime.After(now)
}

// End returns the incident end time, or now for ongoing incidents
func (i Incident) End(now time.Time) time.Time {
	if i.IsOngoing(now) {
		return now
	}
	return *i.EndTime
}

// DescriptionText returns the description or an empty string
func (i Incident) DescriptionText() string {
	if i.Description == nil {
		return ""
	}
	return *i.Description
}

// StatusPagesResponse is returned by /api/v1/statusPages and /statusPages/search
type StatusPagesResponse struct {
	StatusPages []StatusPage `json:"statusPages"`
}

// StatusPageResponse is returned by /api/v1/statusPage
type StatusPageResponse struct {
	StatusPage StatusPage `json:"statusPage"`
}

// CurrentStatusResponse is returned by /api/v1/currentStatus
type CurrentStatusResponse struct {
	Status    Status `json:"status"`
	IsIndexed bool   `json:"isIndexed"`
}

// IncidentsResponse is returned by /api/v1/incidents
type IncidentsResponse struct {
	Incidents []Incident `json:"incidents"`
}

// ErrorResponse is the body the API sends with 4xx/5xx responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// CompanyDetail is everything the detail view shows for one status page
type CompanyDetail struct {
	StatusPage StatusPage `json:"statusPage" yaml:"status_page"`
	Status     Status     `json:"status" yaml:"status"`
	IsIndexed  bool       `json:"isIndexed" yaml:"is_indexed"`
	Incidents  []Incident `json:"incidents" yaml:"incidents"`
}
