package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"smartctx/internal/adapters/tui/styles"
	"smartctx/internal/application/commands"
	"smartctx/internal/application/compiler"
	"smartctx/internal/domain"
	"smartctx/internal/ports"
)

// BrowserKeyMap defines key bindings for the item browser
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Remove  key.Binding
	Exclude key.Binding
	Depths  key.Binding
	Compile key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add file/folder"),
	),
	Remove: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "remove"),
	),
	Exclude: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "toggle exclude"),
	),
	Depths: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "pick depth"),
	),
	Compile: key.NewBinding(
		key.WithKeys("c", "enter"),
		key.WithHelp("c", "compile to clipboard"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the item browser: the context's item set plus an input
// line for adding references.
type BrowserModel struct {
	ViewState

	engine *compiler.Engine
	source ports.ItemSource
	store  *compiler.DepthCacheStore
	sc     *domain.SmartContext
	ignore []string

	input  textinput.Model
	adding bool
	cursor int
}

// NewBrowserModel creates a new item browser model
func NewBrowserModel(engine *compiler.Engine, source ports.ItemSource, store *compiler.DepthCacheStore, sc *domain.SmartContext, ignore []string) *BrowserModel {
	input := textinput.New()
	input.Placeholder = "notes/plan.md or projects/"

	return &BrowserModel{
		engine: engine,
		source: source,
		store:  store,
		sc:     sc,
		ignore: ignore,
		input:  input,
	}
}

// Init initializes the browser view
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser view
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case CompiledMsg:
		m.SetMessage(fmt.Sprintf("Compiled depth %d (%d items, %d links, ~%d tokens) — copied to clipboard",
			msg.Depth, msg.ItemCount, msg.LinkCount, msg.Tokens), false)
		return m, nil

	case CompileErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil

	case "enter":
		ref := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		if ref == "" {
			return m, nil
		}

		cmd := commands.NewAddItemsCommand(m.source, m.sc, []string{ref}, m.ignore)
		added, err := cmd.Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return m, nil
		}
		m.store.Invalidate(m.sc.Key)
		m.SetMessage(fmt.Sprintf("Added %d items", len(added)), false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *BrowserModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.sc.Keys()

	switch {
	case key.Matches(msg, BrowserKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, BrowserKeys.Down):
		if m.cursor < len(keys)-1 {
			m.cursor++
		}

	case key.Matches(msg, BrowserKeys.Add):
		m.adding = true
		m.ClearMessage()
		return m, m.input.Focus()

	case key.Matches(msg, BrowserKeys.Remove):
		if m.cursor < len(keys) {
			m.sc.RemoveItem(keys[m.cursor])
			m.store.Invalidate(m.sc.Key)
			if m.cursor >= len(m.sc.Keys()) && m.cursor > 0 {
				m.cursor--
			}
		}

	case key.Matches(msg, BrowserKeys.Exclude):
		if m.cursor < len(keys) {
			item := m.sc.Items[keys[m.cursor]]
			m.sc.SetExcluded(item.Key, !item.Excluded)
			m.store.Invalidate(m.sc.Key)
		}

	case key.Matches(msg, BrowserKeys.Depths):
		return m, func() tea.Msg { return SwitchToDepthsMsg{} }

	case key.Matches(msg, BrowserKeys.Compile):
		return m, m.compileCmd(m.sc.Settings.LinkDepth)

	case key.Matches(msg, BrowserKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BrowserKeys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// compileCmd compiles the context at a depth and puts the result on the
// clipboard.
func (m *BrowserModel) compileCmd(depth int) tea.Cmd {
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

// View renders the browser view
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Smart Context — " + m.sc.Key))
	b.WriteString("\n")

	keys := m.sc.Keys()
	if len(keys) == 0 {
		b.WriteString(styles.MutedText.Render("No items. Press 'a' to add a file or folder."))
		b.WriteString("\n")
	}

	for i, k := range keys {
		item := m.sc.Items[k]
		line := fmt.Sprintf("%s  (depth %d)", item.Key, item.Depth)

		style := styles.ItemRoot
		switch {
		case item.Excluded:
			style = styles.ItemExcluded
		case item.IsInlink:
			style = styles.ItemInlink
		case item.IsLink:
			style = styles.ItemLinked
		}
		if i == m.cursor && !m.adding {
			style = styles.ItemSelected
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString("\n")
		b.WriteString(styles.InputLabel.Render("Add reference"))
		b.WriteString("\n")
		b.WriteString(styles.InputField.Render(m.input.View()))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("a add • r remove • x exclude • d depths • c compile • ? help • q quit"))

	return styles.App.Render(b.String())
}
