package client

import (
	"context"
	"sort"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/utils"
)

// Service combines Source calls into the views the dashboard renders
type Service struct {
	source        Source
	executor      *utils.ParallelExecutor
	incidentLimit int
	searchLimit   int
	logger        *utils.Logger
}

// NewService wraps source. concurrency bounds the per-page status requests.
func NewService(source Source, concurrency, incidentLimit, searchLimit int) *Service {
	if incidentLimit <= 0 {
		incidentLimit = DefaultIncidentLimit
	}
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}

	return &Service{
		source:        source,
		executor:      utils.NewParallelExecutor(concurrency),
		incidentLimit: incidentLimit,
		searchLimit:   searchLimit,
		logger:        utils.GetGlobalLogger().WithComponent("service"),
	}
}

// ListWithStatus fetches every status page and then its current status.
// A page whose status cannot be fetched is reported as UNKNOWN.
func (s *Service) ListWithStatus(ctx context.Context) ([]api.StatusPage, error) {
	pages, err := s.source.ListStatusPages(ctx)
	if err != nil {
		return nil, err
	}

	return utils.Map(ctx, s.executor, pages, func(ctx context.Context, page api.StatusPage) (api.StatusPage, error) {
		current, err := s.source.GetCurrentStatus(ctx, page.URL)
		if err != nil {
			if ctx.Err() != nil {
				return page, ctx.Err()
			}
			s.logger.WithStatusPage(page.Name).WithError(err).Warn("Failed to fetch current status")
			page.Status = api.StatusUnknown
			return page, nil
		}

		page.Status = current.Status
		page.IsIndexed = current.IsIndexed
		return page, nil
	})
}

// Search returns at most the configured number of pages matching query
func (s *Service) Search(ctx context.Context, query string) ([]api.StatusPage, error) {
	return s.source.SearchStatusPages(ctx, query, s.searchLimit)
}

// GetCompanyDetail loads a status page with its current status and incident history.
// Incidents are only requested for indexed pages and come back newest first.
func (s *Service) GetCompanyDetail(ctx context.Context, name string) (*api.CompanyDetail, error) {
	page, err := s.source.GetStatusPage(ctx, name)
	if err != nil {
		return nil, err
	}

	detail := &api.CompanyDetail{
		StatusPage: *page,
		Status:     api.StatusUnknown,
		IsIndexed:  page.IsIndexed,
	}

	current, err := s.source.GetCurrentStatus(ctx, page.URL)
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil:
		s.logger.WithStatusPage(name).WithError(err).Warn("Failed to fetch current status")
	default:
		detail.Status = current.Status
		detail.IsIndexed = current.IsIndexed
	}

	if !detail.IsIndexed {
		return detail, nil
	}

	incidents, err := s.source.GetIncidents(ctx, page.URL, s.incidentLimit)
	if err != nil {
		return nil, err
	}
	SortIncidents(incidents)
	detail.Incidents = incidents

	return detail, nil
}

// SortIncidents orders incidents by start time, newest first
func SortIncidents(incidents []api.Incident) {
	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].StartTime.After(incidents[j].StartTime)
	})
}
