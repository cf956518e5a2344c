package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/client"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/notifications"
	"github.com/pacphi/statusboard/pkg/render"
	"github.com/pacphi/statusboard/pkg/utils"
)

// Executor orchestrates all dashboard operations
type Executor struct {
	config   *config.Config
	service  *client.Service
	renderer *render.Renderer
	notifier *notifications.Manager
	now      func() time.Time
	logger   *utils.Logger
}

// New creates an executor talking to the configured API
func New(cfg *config.Config) (*Executor, error) {
	c, err := client.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return NewWithSource(cfg, c), nil
}

// NewWithSource creates an executor reading from source
func NewWithSource(cfg *config.Config, source client.Source) *Executor {
	return &Executor{
		config:   cfg,
		service:  client.NewService(source, cfg.Behavior.Concurrency, cfg.Display.IncidentLimit, cfg.Display.SearchLimit),
		renderer: render.NewFromConfig(cfg),
		notifier: notifications.NewManager(cfg),
		now:      time.Now,
		logger:   utils.GetGlobalLogger().WithComponent("executor"),
	}
}

// SetNotifier replaces the notification manager
func (e *Executor) SetNotifier(m *notifications.Manager) {
	e.notifier = m
}

// SetClock overrides the clock used for "time ago" rendering
func (e *Executor) SetClock(now func() time.Time) {
	e.now = now
}

// ListStatuses writes the dashboard overview and returns the pages it rendered
func (e *Executor) ListStatuses(ctx context.Context, w io.Writer) ([]api.StatusPage, error) {
	pages, err := e.service.ListWithStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list status pages: %w", err)
	}
	return pages, e.renderer.StatusTable(w, pages, e.now())
}

// ShowCompany writes the detail view of one status page. When the page is
// unknown, similarly named pages are suggested and ErrNotFound is returned.
func (e *Executor) ShowCompany(ctx context.Context, w io.Writer, name string) error {
	detail, err := e.service.GetCompanyDetail(ctx, name)
	if err == nil {
		return e.renderer.CompanyDetail(w, detail, e.now())
	}
	if !errors.Is(err, client.ErrNotFound) {
		return err
	}

	e.logger.WithStatusPage(name).Debug("Status page not found, searching for suggestions")
	suggestions, searchErr := e.service.Search(ctx, name)
	if searchErr != nil {
		e.logger.WithError(searchErr).Warn("Failed to search for suggestions")
	}
	if renderErr := e.renderer.Suggestions(w, name, suggestions); renderErr != nil {
		return renderErr
	}
	return err
}

// Search writes the status pages matching query
func (e *Executor) Search(ctx context.Context, w io.Writer, query string) error {
	pages, err := e.service.Search(ctx, query)
	if err != nil {
		return err
	}
	return e.renderer.SearchResults(w, query, pages)
}

// Refresh fetches a fresh snapshot, notifies about transitions from prev and
// returns the new snapshot. Notification failures are logged, not returned.
func (e *Executor) Refresh(ctx context.Context, prev []api.StatusPage) ([]api.StatusPage, []notifications.StatusChange, error) {
	pages, err := e.service.ListWithStatus(ctx)
	if err != nil {
		return prev, nil, err
	}

	changes := notifications.DetectChanges(prev, pages, e.now())
	for _, change := range changes {
		e.logger.WithTransition(change.Page.Name, string(change.From), string(change.To)).Info("Status changed")
	}
	if err := e.notifier.SendStatusChanges(ctx, changes); err != nil {
		e.logger.WithError(err).Warn("Failed to deliver status change notifications")
	}

	return pages, changes, nil
}

// Service returns the underlying service
func (e *Executor) Service() *client.Service {
	return e.service
}

// Renderer returns the renderer
func (e *Executor) Renderer() *render.Renderer {
	return e.renderer
}

// Notifier returns the notification manager
func (e *Executor) Notifier() *notifications.Manager {
	return e.notifier
}

// GetConfig returns the configuration
func (e *Executor) GetConfig() *config.Config {
	return e.config
}

// Now returns the executor's current time
func (e *Executor) Now() time.Time {
	return e.now()
}
