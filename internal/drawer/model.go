package drawer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/ryan-rushton/drawer/internal/apps"
	"github.com/ryan-rushton/drawer/internal/logging"
	"github.com/ryan-rushton/drawer/internal/messages"
	"github.com/ryan-rushton/drawer/internal/source"
	"github.com/ryan-rushton/drawer/internal/state"
	"github.com/ryan-rushton/drawer/internal/styles"
)

type viewState int

const (
	stateBrowse viewState = iota
	stateLaunching
)

type appsLoadedMsg struct {
	snapshot apps.Snapshot
}

type launchResultMsg struct {
	record apps.Record
	err    error
}

// changeMsg carries a change published by the holder.
type changeMsg state.Change

// Options wires the drawer to its app source.
type Options struct {
	Source source.Source
	Holder *state.Holder
	Logger *slog.Logger
}

// Model is the app drawer screen: a search box over a filtered app list.
type Model struct {
	state       viewState
	loading     bool
	src         source.Source
	holder      *state.Holder
	changes     <-chan state.Change
	unsubscribe func()
	shown       []apps.Record
	empty       bool
	logger      *slog.Logger
	input       textinput.Model
	spinner     spinner.Model
	cursor      int
	offset      int
	selectedID  string
	launching   apps.Record
	status      string
	errSplash   string
	width       int
	height      int
}

func New(o Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Search apps"
	ti.Prompt = "/ "
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()

	holder := o.Holder
	if holder == nil {
		holder = state.New()
	}
	logger := o.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	changes, unsubscribe := holder.Subscribe()

	return Model{
		state:       stateBrowse,
		loading:     true,
		src:         o.Source,
		holder:      holder,
		changes:     changes,
		unsubscribe: unsubscribe,
		empty:       true,
		logger:      logger,
		input:       ti,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Subtitle)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadApps(), m.waitForChange(), m.spinner.Tick, textinput.Blink)
}

// waitForChange blocks until the holder publishes a change. It yields nil
// once the subscription is closed.
func (m Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return changeMsg(c)
	}
}

// quit stops the change subscription and ends the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.unsubscribe()
	return m, tea.Quit
}

// loadApps runs the blocking source query off the UI goroutine.
func (m Model) loadApps() tea.Cmd {
	src, logger := m.src, m.logger
	return func() tea.Msg {
		return appsLoadedMsg{snapshot: apps.Load(context.Background(), src, logger)}
	}
}

func (m Model) launch(r apps.Record) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		return launchResultMsg{record: r, err: src.Launch(context.Background(), r.PackageID)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Error splash intercepts all key presses and clears itself.
	if m.errSplash != "" {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.errSplash = ""
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-14)
		m.clampOffset()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case appsLoadedMsg:
		m.loading = false
		m.holder.Publish(msg.snapshot)
		return m, nil

	case changeMsg:
		m.shown = msg.Displayed
		m.empty = msg.Empty
		m.syncCursor()
		return m, m.waitForChange()

	case launchResultMsg:
		m.state = stateBrowse
		if msg.err != nil {
			m.logger.Error("launch failed", "id", msg.record.PackageID, "err", msg.err)
			m.errSplash = msg.err.Error()
			return m, nil
		}
		m.logger.Info("launched", "id", msg.record.PackageID)
		m.status = "Launched " + msg.record.Name
		launched := messages.LaunchedMsg{ID: msg.record.PackageID, Name: msg.record.Name}
		return m, func() tea.Msg { return launched }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.state == stateLaunching {
		return m, nil
	}
	m.status = ""

	switch msg.String() {
	case "esc":
		if m.input.Value() == "" {
			return m.quit()
		}
		m.input.SetValue("")
		m.holder.Search("")
		return m, nil
	case "up", "ctrl+p":
		m.move(-1)
		return m, nil
	case "down", "ctrl+n":
		m.move(1)
		return m, nil
	case "pgup":
		m.move(-m.listHeight())
		return m, nil
	case "pgdown":
		m.move(m.listHeight())
		return m, nil
	case "ctrl+r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.loadApps(), m.spinner.Tick)
	case "enter":
		if len(m.shown) == 0 || m.cursor >= len(m.shown) {
			return m, nil
		}
		m.launching = m.shown[m.cursor]
		m.state = stateLaunching
		return m, m.launch(m.launching)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.holder.Search(after)
	}
	return m, cmd
}

// syncCursor keeps the cursor on the selected app when it is still shown,
// otherwise clamps it into range.
func (m *Model) syncCursor() {
	shown := m.shown
	if m.selectedID != "" {
		for i, r := range shown {
			if r.PackageID == m.selectedID {
				m.cursor = i
				m.clampOffset()
				return
			}
		}
	}
	m.cursor = min(m.cursor, len(shown)-1)
	m.cursor = max(m.cursor, 0)
	m.selectedID = ""
	if len(shown) > 0 {
		m.selectedID = shown[m.cursor].PackageID
	}
	m.clampOffset()
}

func (m *Model) move(delta int) {
	shown := m.shown
	if len(shown) == 0 {
		return
	}
	m.cursor = max(0, min(m.cursor+delta, len(shown)-1))
	m.selectedID = shown[m.cursor].PackageID
	m.clampOffset()
}

func (m *Model) clampOffset() {
	rows := m.listHeight()
	total := len(m.shown)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, total-rows))
}

const (
	defaultRows = 12
	chromeRows  = 12
)

func (m Model) listHeight() int {
	if m.height == 0 {
		return defaultRows
	}
	return max(3, m.height-chromeRows)
}

// columnWidths splits the inner width between the name and package ID.
func (m Model) columnWidths() (name, id int) {
	if m.width == 0 {
		return 32, 40
	}
	inner := m.width - 14
	name = max(10, inner/2)
	id = max(0, inner-name)
	return name, id
}

func badge(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

func (m Model) View() string {
	// Error splash takes over the whole view; any key will clear it.
	if m.errSplash != "" {
		content := styles.Title.Render("Launch failed") + "\n\n"
		content += styles.Err.Render(m.errSplash) + "\n"
		content += "\n" + styles.Help.Render("any key to dismiss")
		return styles.Box.
			BorderForeground(styles.Red).
			Render(content)
	}

	shown := m.shown
	all := m.holder.All()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Apps"))
	if m.holder.Loaded() {
		b.WriteString("  " + styles.Dimmed.Render(fmt.Sprintf("%d of %d", len(shown), len(all))))
	}
	if m.loading && m.holder.Loaded() {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n" + m.input.View() + "\n\n")

	switch {
	case m.loading && !m.holder.Loaded():
		b.WriteString(m.spinner.View() + " " + styles.Dimmed.Render("Loading apps..."))
	case m.empty:
		if strings.TrimSpace(m.input.Value()) != "" {
			b.WriteString(styles.Dimmed.Render(fmt.Sprintf("No apps match %q.", m.input.Value())))
		} else {
			b.WriteString(styles.Dimmed.Render("No apps found."))
		}
	default:
		b.WriteString(m.renderRows(shown))
	}

	switch {
	case m.state == stateLaunching:
		b.WriteString("\n\n" + styles.Dimmed.Render("Launching "+m.launching.Name+"..."))
	case m.status != "":
		b.WriteString("\n\n" + styles.Success.Render("✓") + " " + m.status)
	}

	b.WriteString("\n\n" + styles.Help.Render("↑↓ navigate  enter launch  ctrl+r reload  esc clear/quit"))
	return styles.Box.Render(b.String())
}

func (m Model) renderRows(shown []apps.Record) string {
	nameW, idW := m.columnWidths()
	end := min(len(shown), m.offset+m.listHeight())

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		r := shown[i]
		cursor := "  "
		icon := styles.Badge.Render(badge(r.Name))
		name := runewidth.FillRight(runewidth.Truncate(r.Name, nameW, "…"), nameW)
		if i == m.cursor {
			cursor = styles.Selected.Render("> ")
			icon = styles.SelectedBadge.Render(badge(r.Name))
			name = styles.Selected.Render(name)
		}

		line := cursor + icon + " " + name
		if idW > 0 {
			line += "  " + styles.PackageID.Render(runewidth.Truncate(r.PackageID, idW, "…"))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
