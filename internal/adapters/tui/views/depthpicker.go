package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"smartctx/internal/adapters/tui/styles"
	"smartctx/internal/application/commands"
	"smartctx/internal/application/compiler"
	"smartctx/internal/domain"
)

// DepthKeyMap defines key bindings for the depth picker
type DepthKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var DepthKeys = DepthKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "compile"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

type depthsMsg struct {
	cache *domain.DepthCache
}

type depthsErrMsg struct {
	err error
}

// DepthPickerModel shows per-depth token estimates and compiles at the
// chosen depth. Estimates come from the depth cache, so reopening the
// picker for an unchanged context costs one depth-0 compile.
type DepthPickerModel struct {
	ViewState

	engine   *compiler.Engine
	store    *compiler.DepthCacheStore
	sc       *domain.SmartContext
	maxDepth int

	depths   []domain.DepthInfo
	cursor   int
	scanning bool
}

// NewDepthPickerModel creates a new depth picker model
func NewDepthPickerModel(engine *compiler.Engine, store *compiler.DepthCacheStore, sc *domain.SmartContext, maxDepth int) *DepthPickerModel {
	return &DepthPickerModel{
		engine:   engine,
		store:    store,
		sc:       sc,
		maxDepth: maxDepth,
	}
}

// Init kicks off the depth scan
func (m *DepthPickerModel) Init() tea.Cmd {
	m.scanning = true
	m.depths = nil
	m.cursor = 0
	return m.scanCmd()
}

func (m *DepthPickerModel) scanCmd() tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewDepthScanCommand(m.engine, m.store, m.sc, m.maxDepth)
		cache, err := cmd.Execute(context.Background())
		if err != nil {
			return depthsErrMsg{err: err}
		}
		return depthsMsg{cache: cache}
	}
}

// Update handles messages for the depth picker
func (m *DepthPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case depthsMsg:
		m.scanning = false
		m.depths = msg.cache.Depths
		return m, nil

	case depthsErrMsg:
		m.scanning = false
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DepthKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, DepthKeys.Down):
			if m.cursor < len(m.depths)-1 {
				m.cursor++
			}

		case key.Matches(msg, DepthKeys.Select):
			if m.cursor < len(m.depths) && m.depths[m.cursor].Calculated {
				return m, m.compileCmd(m.depths[m.cursor].Depth)
			}

		case key.Matches(msg, DepthKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		}
	}

	return m, nil
}

func (m *DepthPickerModel) compileCmd(depth int) tea.Cmd {
	return func() tea.Msg {
		opts := compiler.Options{
			LinkDepth:      depth,
			IncludeInlinks: m.sc.Settings.IncludeInlinks,
		}
		result, err := commands.NewCompileCommand(m.engine, m.sc, opts).Execute(context.Background())
		if err != nil {
			return CompileErrMsg{Err: err}
		}
		if err := clipboard.WriteAll(result.Context); err != nil {
			return CompileErrMsg{Err: err}
		}
		return CompiledMsg{
			Depth:     depth,
			ItemCount: result.Stats.ItemCount,
			LinkCount: result.Stats.LinkCount,
			Tokens:    domain.TokenEstimate(result.Stats.CharCount),
		}
	}
}

// View renders the depth picker
func (m *DepthPickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Pick a link depth"))
	b.WriteString("\n")

	if m.scanning {
		b.WriteString(styles.MutedText.Render("Scanning depths..."))
		b.WriteString("\n")
	}

	for i, info := range m.depths {
		style := styles.DepthCalculated
		if !info.Calculated {
			style = styles.DepthSkipped
		}
		if i == m.cursor {
			style = styles.ItemSelected
		}
		b.WriteString(style.Render(info.Label))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render(m.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render(fmt.Sprintf("enter compile & copy • esc back • ceiling ~%d tokens", compiler.TokenCeiling)))

	return styles.App.Render(b.String())
}
