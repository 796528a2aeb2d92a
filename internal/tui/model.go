package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/mediafeed/internal/feed"
	"github.com/idilsaglam/mediafeed/internal/model"
	"github.com/idilsaglam/mediafeed/internal/ui"
)

const (
	defaultWidth, defaultHeight = 80, 24

	// header, search box, status line, help line
	chromeLines = 4
	// panel border + horizontal padding
	panelCols  = 4
	panelLines = 2
	cardGap    = 1
)

// Options tune the screen.
type Options struct {
	Layout ui.Layout
	// Items from the end of the list at which moving the cursor asks for
	// more. Zero disables the trigger.
	LoadMoreThreshold int
}

// Model is the feed screen. It renders what the controller publishes and
// forwards gestures to it; it never edits the list itself.
type Model struct {
	ctrl      *feed.Controller
	cards     ui.CardRenderer
	layout    ui.Layout
	threshold int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	search  textinput.Model

	// last state received from the controller
	items       []model.FeedItem
	refreshing  bool
	loadingMore bool

	itemsCh      <-chan []model.FeedItem
	refreshingCh <-chan bool
	loadingCh    <-chan bool
	stop         context.CancelFunc

	cursor    int
	top       int // first visible row
	width     int
	height    int
	searching bool
	status    string
}

// New builds the screen for ctrl. The caller keeps ownership of ctrl.
func New(ctrl *feed.Controller, opt Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.Current().Accent

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search posts..."
	ti.CharLimit = 200

	return Model{
		ctrl:         ctrl,
		cards:        ui.NewCardRenderer(),
		layout:       opt.Layout,
		threshold:    opt.LoadMoreThreshold,
		keys:         defaultKeyMap(),
		help:         help.New(),
		spinner:      s,
		search:       ti,
		items:        ctrl.Items(),
		refreshing:   ctrl.Refreshing(),
		loadingMore:  ctrl.LoadingMore(),
		itemsCh:      ctrl.ObserveItems().Watch(ctx),
		refreshingCh: ctrl.ObserveRefreshing().Watch(ctx),
		loadingCh:    ctrl.ObserveLoadingMore().Watch(ctx),
		stop:         cancel,
		width:        defaultWidth,
		height:       defaultHeight,
	}
}

// Run starts the screen on the alternate screen and blocks until the user
// quits.
func Run(ctrl *feed.Controller, opt Options) error {
	m := New(ctrl, opt)
	defer m.stop()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run feed screen: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitItems(m.itemsCh),
		waitRefreshing(m.refreshingCh),
		waitLoadingMore(m.loadingCh),
	)
}

// Each wait command blocks on one watch channel and is re-issued after
// every message, so completions fired from timer goroutines reach Update
// without blocking the controller.
func waitItems(ch <-chan []model.FeedItem) tea.Cmd {
	return func() tea.Msg {
		items, ok := <-ch
		if !ok {
			return nil
		}
		return itemsMsg{items: items}
	}
}

func waitRefreshing(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		on, ok := <-ch
		if !ok {
			return nil
		}
		return refreshingMsg{on: on}
	}
}

func waitLoadingMore(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		on, ok := <-ch
		if !ok {
			return nil
		}
		return loadingMoreMsg{on: on}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		m.maybeLoadMore()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case itemsMsg:
		// A like applies the controller's list directly, so a message read
		// before it may already be outdated. The newer list is queued behind.
		if !sameList(msg.items, m.ctrl.Items()) {
			return m, waitItems(m.itemsCh)
		}
		m.setItems(msg.items)
		m.maybeLoadMore()
		return m, waitItems(m.itemsCh)

	case refreshingMsg:
		m.refreshing = msg.on
		return m, waitRefreshing(m.refreshingCh)

	case loadingMoreMsg:
		m.loadingMore = msg.on
		return m, waitLoadingMore(m.loadingCh)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.layout.Columns()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.items))
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.items))
	case key.Matches(msg, m.keys.Like):
		if m.ctrl.ToggleLike(m.cursor) {
			m.setItems(m.ctrl.Items())
		}
	case key.Matches(msg, m.keys.Refresh):
		m.ctrl.Refresh()
		m.refreshing = m.ctrl.Refreshing()
		m.status = ""
	case key.Matches(msg, m.keys.Layout):
		m.layout = m.layout.Toggle()
		m.ensureCursorVisible()
		m.maybeLoadMore()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue("")
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Queries are accepted but not wired to any filtering.
		q := strings.TrimSpace(m.search.Value())
		if q != "" {
			log.WithField("query", q).Info("Search submitted")
			m.status = fmt.Sprintf("searched %q (filtering not available)", q)
		}
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.SetValue("")
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// sameList reports whether a and b are the same published slice. The
// controller never edits a slice in place, so identity is enough.
func sameList(a, b []model.FeedItem) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func (m *Model) setItems(items []model.FeedItem) {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.items)-1 {
		m.cursor = len(m.items) - 1
	}
	m.ensureCursorVisible()
	m.maybeLoadMore()
}

// maybeLoadMore asks for the next page once the last visible card is
// within threshold items of the end. Repeated calls are harmless: the
// controller ignores them while a page is pending.
func (m *Model) maybeLoadMore() {
	if m.threshold <= 0 || len(m.items) == 0 {
		return
	}
	if m.lastVisible() >= len(m.items)-m.threshold {
		m.ctrl.LoadMore()
		m.loadingMore = m.ctrl.LoadingMore()
	}
}

func (m Model) visibleRows() int {
	rows := (m.height - panelLines - chromeLines) / m.layout.CardHeight()
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) lastVisible() int {
	last := (m.top+m.visibleRows())*m.layout.Columns() - 1
	if last > len(m.items)-1 {
		last = len(m.items) - 1
	}
	return last
}

func (m *Model) ensureCursorVisible() {
	row := m.cursor / m.layout.Columns()
	if row < m.top {
		m.top = row
	}
	if rows := m.visibleRows(); row >= m.top+rows {
		m.top = row - rows + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

func (m Model) View() string {
	t := ui.Current()
	width := m.width - panelCols
	cols := m.layout.Columns()

	liked := lo.CountBy(m.items, func(it model.FeedItem) bool { return it.IsLiked })
	header := fmt.Sprintf("%s  %s  %s %d  %s %d",
		t.Title.Render("Feed"),
		t.Muted.Render("["+m.layout.String()+"]"),
		t.Accent.Render("items"), len(m.items),
		t.Liked.Render(t.HeartOn), liked,
	)
	if m.refreshing {
		header += "  " + m.spinner.View() + t.Muted.Render(" refreshing")
	}

	searchLine := t.Muted.Render("/ search")
	if m.searching {
		searchLine = m.search.View()
	}

	first := m.top * cols
	last := m.lastVisible()
	var cards []string
	if first <= last {
		cw := ui.CardWidth(width, m.layout, cardGap)
		cards = make([]string, 0, last-first+1)
		for i := first; i <= last; i++ {
			cards = append(cards, m.cards.Render(m.items[i], cw, m.layout, i == m.cursor))
		}
	}
	grid := ui.Grid(cards, cols, cardGap)
	if len(cards) == 0 {
		grid = t.Muted.Render("no posts")
	}

	status := t.Muted.Render(m.status)
	if m.loadingMore {
		status = m.spinner.View() + t.Muted.Render(" loading more")
	}

	return ui.Panel([]string{header, searchLine, grid, status, m.help.View(m.keys)})
}
