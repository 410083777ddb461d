package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"smartctx/internal/adapters/tui/views"
	"smartctx/internal/application/compiler"
	"smartctx/internal/domain"
	"smartctx/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewDepths
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state   ViewState
	browser *views.BrowserModel
	depths  *views.DepthPickerModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application over a single context.
func NewApp(engine *compiler.Engine, source ports.ItemSource, store *compiler.DepthCacheStore, sc *domain.SmartContext, maxDepth int, ignore []string) *App {
	return &App{
		state:   ViewBrowser,
		browser: views.NewBrowserModel(engine, source, store, sc, ignore),
		depths:  views.NewDepthPickerModel(engine, store, sc, maxDepth),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.depths.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToDepthsMsg:
		a.state = ViewDepths
		return a, a.depths.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	// A compile finished anywhere: show the result in the browser
	case views.CompiledMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewDepths:
		_, cmd = a.depths.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewDepths:
		return a.depths.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
