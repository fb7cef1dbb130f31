package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/mdtabs/internal/locale"
	"github.com/kyaoi/mdtabs/internal/pager"
	"github.com/kyaoi/mdtabs/internal/pages"
	"github.com/kyaoi/mdtabs/internal/segment"
)

const (
	statusHeight    = 1
	minContentWidth = 20
	mouseWheelDelta = 3
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	statusStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
)

type frameMsg time.Time

// Model implements the Bubble Tea program hosting the segmented pager.
type Model struct {
	coord     *pager.Coordinator
	strip     *segment.Strip
	stripView *stripView
	pagerView *pagerView

	pages     []pages.Page
	viewports []viewport.Model
	rendered  []string
	renderer  *glamour.TermRenderer

	headerPath string
	message    string
	status     string
	msgs       *locale.Messages
	log        *slog.Logger
	now        func() time.Time

	showHelp   bool
	pendingKey string
	ticking    bool
	ready      bool
	width      int
	height     int
	err        error

	searchInput   textinput.Model
	searchActive  bool
	searchQuery   string
	searchMatches []int
	searchIndex   int

	watcher   *fsnotify.Watcher
	watchDir  string
	watchChan chan tea.Msg
}

// NewModel constructs the pager model with the provided initial state.
func NewModel(state State) *Model {
	m := &Model{
		pages:       append([]pages.Page(nil), state.Pages...),
		headerPath:  state.HeaderPath,
		message:     state.Message,
		msgs:        state.Messages,
		log:         state.Logger,
		now:         time.Now,
		watchDir:    state.WatchDir,
		searchIndex: -1,
	}
	if m.msgs == nil {
		m.msgs = locale.New("en")
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	clock := func() time.Time { return m.now() }

	m.strip = segment.New(pages.Items(m.pages), state.Fill, state.Style)
	m.stripView = newStripView(m.strip, clock)
	m.pagerView = newPagerView(len(m.pages), state.Style.AnimationDuration, clock)
	m.coord = pager.New(m.strip, m.stripView, m.pagerView,
		pager.WithLogger(m.log),
		pager.WithSettledObserver(func(i int) {
			m.onSettled(i)
			if state.OnSettled != nil {
				state.OnSettled(i)
			}
		}),
	)

	m.viewports = make([]viewport.Model, len(m.pages))
	m.rendered = make([]string, len(m.pages))
	for i := range m.viewports {
		vp := viewport.New(0, 0)
		vp.Style = lipgloss.NewStyle().Padding(0, 1)
		vp.MouseWheelEnabled = false
		m.viewports[i] = vp
	}

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.CursorEnd()
	searchInput.Blur()
	m.searchInput = searchInput

	m.coord.Start()
	m.flush()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.startWatching(m.watchDir)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		helpOverlay := helpBoxStyle.Render(m.helpText())
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpOverlay)
		}
		return helpOverlay
	}

	if len(m.pages) == 0 {
		return m.message
	}

	body := lipgloss.JoinVertical(lipgloss.Left, m.stripView.View(), m.contentView())

	switch {
	case m.searchActive:
		body = lipgloss.JoinVertical(lipgloss.Left, body, statusStyle.Render(m.searchInput.View()))
	case m.err != nil:
		body = lipgloss.JoinVertical(lipgloss.Left, body, errorStyle.Render(m.err.Error()))
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, body, statusStyle.Render(m.statusLine()))
	}
	return body
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case frameMsg:
		m.ticking = false
		now := m.now()
		m.stripView.advance(now)
		m.pagerView.advance(now)
		m.flush()
	case fileEventMsg:
		cmd = m.handleFileEvent(msg)
	case fileWatchErrMsg:
		m.err = msg.err
		cmd = m.waitForFileEvent()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}
	return m, tea.Batch(cmd, m.scheduleFrame())
}

func (m *Model) scheduleFrame() tea.Cmd {
	if m.ticking || !(m.stripView.animating() || m.pagerView.animating()) {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// flush forwards everything the pager view reported to the coordinator. The
// coordinator may request a new jump while handling them, so loop until the
// queue stays empty.
func (m *Model) flush() {
	for {
		evs := m.pagerView.drain()
		if len(evs) == 0 {
			return
		}
		for _, ev := range evs {
			switch e := ev.(type) {
			case dragBeganEvent:
				m.coord.DragBegan(e.offset)
			case dragMovedEvent:
				m.coord.DragOffsetChanged(e.offset)
			case dragEndedEvent:
				m.coord.DragEnded()
			case pageCompletedEvent:
				m.coord.PageTransitionCompleted(e.index)
			}
		}
	}
}

func (m *Model) tap(i int) {
	if m.coord.UserTappedItem(i) {
		m.status = ""
	}
	m.flush()
}

func (m *Model) onSettled(i int) {
	m.status = ""
	if m.searchQuery != "" {
		m.onContentChanged()
	}
	m.log.Info("page settled", "index", i, "title", m.pages[i].Title)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.searchActive {
		switch msg.Type {
		case tea.KeyEnter:
			query := strings.TrimSpace(m.searchInput.Value())
			m.exitSearchMode()
			if query == "" {
				m.clearSearch()
				return nil
			}
			m.performSearch(query)
			return nil
		case tea.KeyEsc, tea.KeyCtrlC:
			m.exitSearchMode()
			return nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return cmd
	}

	k := msg.String()
	if k != "g" {
		m.pendingKey = ""
	}

	if m.showHelp {
		m.pendingKey = ""
		switch k {
		case "q", "?", "esc":
			m.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return nil
	case k == "/":
		return m.enterSearchMode()
	case k == "n" && len(m.searchMatches) > 0:
		m.nextSearchMatch()
		return nil
	case k == "N" && len(m.searchMatches) > 0:
		m.previousSearchMatch()
		return nil
	case key.Matches(msg, keys.Prev):
		m.tap(m.strip.Selected() - 1)
		return nil
	case key.Matches(msg, keys.Next):
		m.tap(m.strip.Selected() + 1)
		return nil
	}
	if n, ok := tabNumber(k); ok {
		m.tap(n)
		return nil
	}

	vp := m.activeViewport()
	if vp == nil {
		return nil
	}
	switch {
	case key.Matches(msg, keys.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, keys.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, keys.HalfDown):
		vp.HalfPageDown()
	case key.Matches(msg, keys.HalfUp):
		vp.HalfPageUp()
	case key.Matches(msg, keys.Top):
		if m.pendingKey == "g" {
			vp.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
	case key.Matches(msg, keys.Bottom):
		vp.GotoBottom()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	stripHeight := m.stripView.height()
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Y < stripHeight {
				if i := m.strip.HitTest(float64(msg.X)); i >= 0 {
					m.tap(i)
				}
				return
			}
			if msg.Y < stripHeight+m.contentHeight() {
				m.pagerView.press(msg.X)
			}
		case tea.MouseButtonWheelDown:
			if vp := m.activeViewport(); vp != nil {
				vp.ScrollDown(mouseWheelDelta)
			}
		case tea.MouseButtonWheelUp:
			if vp := m.activeViewport(); vp != nil {
				vp.ScrollUp(mouseWheelDelta)
			}
		}
	case tea.MouseActionMotion:
		m.pagerView.motion(msg.X)
	case tea.MouseActionRelease:
		m.pagerView.release(msg.X)
	}
	m.flush()
}

func (m *Model) activeViewport() *viewport.Model {
	i := m.coord.Current()
	if i < 0 || i >= len(m.viewports) {
		return nil
	}
	return &m.viewports[i]
}

func (m *Model) contentHeight() int {
	return max(m.height-m.stripView.height()-statusHeight, 1)
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	width = max(width, minContentWidth)
	m.width = width
	m.height = height
	m.ready = true

	m.stripView.resize(width)
	m.pagerView.resize(width)
	m.coord.SetViewportWidth(float64(width))
	m.flush()

	contentHeight := m.contentHeight()
	for i := range m.viewports {
		m.viewports[i].Width = width
		m.viewports[i].Height = contentHeight
	}
	if len(m.viewports) == 0 {
		return
	}

	wrapWidth := max(width-m.viewports[0].Style.GetHorizontalFrameSize(), 0)
	renderer, err := newRenderer(wrapWidth)
	if err != nil {
		m.err = err
		return
	}
	m.renderer = renderer
	for i := range m.pages {
		offset := m.viewports[i].YOffset
		m.renderPage(i)
		m.viewports[i].SetYOffset(offset)
	}
	m.onContentChanged()
}

func (m *Model) renderPage(i int) {
	if m.renderer == nil {
		return
	}
	rendered, err := m.renderer.Render(m.pages[i].Body)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.rendered[i] = rendered
	m.viewports[i].SetContent(rendered)
}

// contentView draws the pager at its current offset: the tail of the page
// under column 0 followed by the head of the next one.
func (m *Model) contentView() string {
	h := m.contentHeight()
	w := m.width
	page, col := m.pagerView.pageAt()

	left := m.pageLines(page, h)
	var right []string
	if col > 0 {
		right = m.pageLines(page+1, h)
	}

	lines := make([]string, h)
	for r := range lines {
		line := cutPad(left[r], col, w)
		if col > 0 {
			line += cutPad(right[r], 0, col)
		}
		lines[r] = line
	}
	return strings.Join(lines, "\n")
}

func (m *Model) pageLines(i, h int) []string {
	lines := make([]string, h)
	if i < 0 || i >= len(m.viewports) {
		return lines
	}
	view := strings.Split(m.viewports[i].View(), "\n")
	copy(lines, view)
	return lines
}

// cutPad returns cells [from, to) of s, padded to exactly to-from cells.
func cutPad(s string, from, to int) string {
	piece := ansi.Cut(s, from, to)
	if w := ansi.StringWidth(piece); w < to-from {
		piece += strings.Repeat(" ", to-from-w)
	}
	return piece
}

func (m *Model) statusLine() string {
	if m.searchQuery != "" {
		if s := m.searchStatusLine(); s != "" {
			return s
		}
	}
	if m.status != "" {
		return m.status
	}
	i := m.strip.Selected()
	if i < 0 {
		return m.headerPath
	}
	line := m.msgs.T("PageStatus", map[string]any{
		"Title": m.pages[i].Title,
		"Index": i + 1,
		"Count": len(m.pages),
	})
	if m.headerPath != "" {
		line = m.headerPath + "  " + line
	}
	return line
}

func (m *Model) helpText() string {
	ids := []string{"HelpTitle", "HelpTabs", "HelpNumber", "HelpClick", "HelpScroll", "HelpHalfPage", "HelpTopBottom", "HelpSearch", "HelpQuit"}
	lines := make([]string, len(ids))
	for i, id := range ids {
		lines[i] = m.msgs.T(id, nil)
	}
	return strings.Join(lines, "\n")
}

func newRenderer(width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(styles.TokyoNightStyle)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	} else {
		opts = append(opts, glamour.WithWordWrap(0))
	}
	return glamour.NewTermRenderer(opts...)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func (m *Model) enterSearchMode() tea.Cmd {
	m.searchActive = true
	m.pendingKey = ""
	if m.searchQuery != "" {
		m.searchInput.SetValue(m.searchQuery)
		m.searchInput.CursorEnd()
	} else {
		m.searchInput.SetValue("")
	}
	return m.searchInput.Focus()
}

func (m *Model) exitSearchMode() {
	m.searchActive = false
	m.searchInput.Blur()
}

func (m *Model) clearSearch() {
	m.searchQuery = ""
	m.searchMatches = nil
	m.searchIndex = -1
	m.err = nil
}

func (m *Model) searchStatusLine() string {
	total := len(m.searchMatches)
	if total == 0 || m.searchIndex < 0 {
		return fmt.Sprintf("/%s (0/0)", m.searchQuery)
	}
	return fmt.Sprintf("/%s (%d/%d)", m.searchQuery, m.searchIndex+1, total)
}

func (m *Model) activeRendered() string {
	i := m.coord.Current()
	if i < 0 || i >= len(m.rendered) {
		return ""
	}
	return m.rendered[i]
}

func (m *Model) performSearch(query string) {
	m.searchQuery = strings.TrimSpace(query)
	m.searchIndex = 0
	m.onContentChanged()
}

func (m *Model) nextSearchMatch() {
	if len(m.searchMatches) == 0 {
		return
	}
	m.searchIndex = (m.searchIndex + 1) % len(m.searchMatches)
	m.gotoSearchMatch()
}

func (m *Model) previousSearchMatch() {
	if len(m.searchMatches) == 0 {
		return
	}
	if m.searchIndex <= 0 {
		m.searchIndex = len(m.searchMatches) - 1
	} else {
		m.searchIndex--
	}
	m.gotoSearchMatch()
}

func (m *Model) gotoSearchMatch() {
	vp := m.activeViewport()
	if vp == nil || len(m.searchMatches) == 0 || m.searchIndex < 0 {
		return
	}
	vp.SetYOffset(m.searchMatches[m.searchIndex])
}

// onContentChanged reruns the active search against the settled page.
func (m *Model) onContentChanged() {
	if m.searchQuery == "" {
		return
	}
	m.searchMatches = findSearchMatches(m.activeRendered(), m.searchQuery)
	if len(m.searchMatches) == 0 {
		m.searchIndex = -1
		return
	}
	if m.searchIndex < 0 || m.searchIndex >= len(m.searchMatches) {
		m.searchIndex = 0
	}
	m.gotoSearchMatch()
}

func findSearchMatches(content, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" || content == "" {
		return nil
	}

	stripped := ansi.Strip(content)
	lowerContent := strings.ToLower(stripped)
	lowerQuery := strings.ToLower(query)

	var matches []int
	offset := 0
	for {
		pos := strings.Index(lowerContent[offset:], lowerQuery)
		if pos == -1 {
			break
		}
		absolute := offset + pos
		line := strings.Count(lowerContent[:absolute], "\n")
		if len(matches) == 0 || matches[len(matches)-1] != line {
			matches = append(matches, line)
		}
		offset = absolute + len(lowerQuery)
	}
	return matches
}
