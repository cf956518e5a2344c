package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/render"
)

// ViewMode represents the current view state
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewDetail
	ViewSearch
	ViewHelp
)

// DataSource is what the dashboard reads from. *client.Service implements it.
type DataSource interface {
	ListWithStatus(ctx context.Context) ([]api.StatusPage, error)
	GetCompanyDetail(ctx context.Context, name string) (*api.CompanyDetail, error)
	Search(ctx context.Context, query string) ([]api.StatusPage, error)
}

// Model represents the TUI application state
type Model struct {
	// Application state
	ctx          context.Context
	config       *config.Config
	source       DataSource
	renderer     *render.Renderer
	width        int
	height       int
	currentView  ViewMode
	previousView ViewMode
	helpReturn   ViewMode

	// Data
	pages         []api.StatusPage
	detail        *api.CompanyDetail
	searchResults []api.StatusPage
	searchQuery   string
	lastUpdate    time.Time
	now           time.Time

	// UI Components
	pageList    list.Model
	searchList  list.Model
	searchInput textinput.Model

	// Status
	loading bool
	error   error

	// Timers
	refreshEvery time.Duration
	tickEvery    time.Duration
	clock        func() time.Time
}

// Messages for the TUI
type RefreshDataMsg struct{}

type DataLoadedMsg struct {
	Pages []api.StatusPage
	Error error
}

type DetailLoadedMsg struct {
	Name   string
	Detail *api.CompanyDetail
	Error  error
}

type SearchResultsMsg struct {
	Query string
	Pages []api.StatusPage
	Error error
}

// TickMsg recomputes the "time ago" cells
type TickMsg time.Time

// New creates a new TUI model
func New(ctx context.Context, cfg *config.Config, source DataSource) Model {
	base := render.NewFromConfig(cfg)
	renderer := render.New(config.FormatTable, base.Formatter(), cfg.Display.DescriptionLimit)
	labels := renderer.Labels()

	pageList := list.New([]list.Item{}, NewStatusDelegate(), 0, 0)
	pageList.Title = labels.Title
	pageList.SetShowStatusBar(false)
	pageList.SetFilteringEnabled(false)
	pageList.SetShowHelp(false)

	searchList := list.New([]list.Item{}, NewStatusDelegate(), 0, 0)
	searchList.Title = "/"
	searchList.SetShowStatusBar(false)
	searchList.SetFilteringEnabled(false)
	searchList.SetShowHelp(false)

	searchInput := textinput.New()
	searchInput.Placeholder = "payu, csob, ..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 64

	return Model{
		ctx:          ctx,
		config:       cfg,
		source:       source,
		renderer:     renderer,
		currentView:  ViewDashboard,
		pageList:     pageList,
		searchList:   searchList,
		searchInput:  searchInput,
		refreshEvery: cfg.RefreshEvery(),
		tickEvery:    cfg.TickEvery(),
		clock:        time.Now,
		now:          time.Now(),
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return RefreshDataMsg{} },
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickEvery, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg {
		return RefreshDataMsg{}
	})
}

// CurrentView returns the active view
func (m Model) CurrentView() ViewMode {
	return m.currentView
}
