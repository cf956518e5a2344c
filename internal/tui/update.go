package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pacphi/statusboard/pkg/api"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		listHeight := max(m.height-headerHeight-footerHeight, 3)
		m.pageList.SetSize(m.width, listHeight)
		m.searchList.SetSize(m.width, max(listHeight-2, 3))
		m.searchInput.Width = max(m.width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case DataLoadedMsg:
		m.loading = false
		if msg.Error != nil {
			// Keep the previous results on screen
			m.error = msg.Error
		} else {
			m.error = nil
			m.pages = msg.Pages
			m.lastUpdate = m.clock()
			m.now = m.lastUpdate
			cmds = append(cmds, m.pageList.SetItems(m.items(m.pages)))
		}
		cmds = append(cmds, m.scheduleRefresh())
		return m, tea.Batch(cmds...)

	case DetailLoadedMsg:
		m.loading = false
		if msg.Error != nil {
			m.error = msg.Error
			return m, nil
		}
		m.error = nil
		m.detail = msg.Detail
		return m, nil

	case SearchResultsMsg:
		m.loading = false
		if msg.Query != m.searchQuery {
			return m, nil
		}
		if msg.Error != nil {
			m.error = msg.Error
			return m, nil
		}
		m.error = nil
		m.searchResults = msg.Pages
		return m, m.searchList.SetItems(m.items(m.searchResults))

	case TickMsg:
		m.now = m.clock()
		cmds = append(cmds,
			m.pageList.SetItems(m.items(m.pages)),
			m.searchList.SetItems(m.items(m.searchResults)),
			m.tick(),
		)
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Typing into the search box swallows every other key
	if m.currentView == ViewSearch && m.searchInput.Focused() {
		switch msg.String() {
		case "esc":
			m.searchInput.Blur()
			if len(m.searchResults) == 0 {
				m.currentView = ViewDashboard
			}
			return m, nil
		case "enter":
			m.searchQuery = m.searchInput.Value()
			m.searchInput.Blur()
			m.loading = true
			return m, m.runSearch(m.searchQuery)
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?", "h":
		if m.currentView == ViewHelp {
			m.currentView = m.helpReturn
		} else {
			m.helpReturn = m.currentView
			m.currentView = ViewHelp
		}
		return m, nil

	case "esc", "backspace":
		switch m.currentView {
		case ViewHelp:
			m.currentView = m.helpReturn
		case ViewDetail:
			m.detail = nil
			m.currentView = m.previousView
		default:
			m.currentView = ViewDashboard
		}
		m.error = nil
		return m, nil

	case "/":
		m.currentView = ViewSearch
		return m, m.searchInput.Focus()

	case "r":
		switch m.currentView {
		case ViewDetail:
			if m.detail != nil {
				m.loading = true
				return m, m.loadDetail(m.detail.StatusPage.Name)
			}
		case ViewSearch:
			if m.searchQuery != "" {
				m.loading = true
				return m, m.runSearch(m.searchQuery)
			}
		default:
			m.loading = true
			return m, m.loadData()
		}
		return m, nil

	case "enter":
		var selected list.Item
		switch m.currentView {
		case ViewDashboard:
			selected = m.pageList.SelectedItem()
		case ViewSearch:
			selected = m.searchList.SelectedItem()
		}
		item, ok := selected.(StatusItem)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail = nil
		m.loading = true
		return m, m.loadDetail(item.Page.Name)
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewDashboard:
		m.pageList, cmd = m.pageList.Update(msg)
	case ViewSearch:
		m.searchList, cmd = m.searchList.Update(msg)
	}
	return m, cmd
}

func (m Model) items(pages []api.StatusPage) []list.Item {
	return statusItems(pages, m.now, m.renderer.Formatter(), m.renderer.Labels())
}

func (m Model) loadData() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		pages, err := source.ListWithStatus(ctx)
		return DataLoadedMsg{Pages: pages, Error: err}
	}
}

func (m Model) loadDetail(name string) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		detail, err := source.GetCompanyDetail(ctx, name)
		return DetailLoadedMsg{Name: name, Detail: detail, Error: err}
	}
}

func (m Model) runSearch(query string) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		pages, err := source.Search(ctx, query)
		return SearchResultsMsg{Query: query, Pages: pages, Error: err}
	}
}
