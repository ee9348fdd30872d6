package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/vidyasagar/tframe/internal/browser"
	"github.com/vidyasagar/tframe/internal/frame"
	"github.com/vidyasagar/tframe/internal/storage"
	"github.com/vidyasagar/tframe/internal/ui"
)

// InvalidURLMessage is shown when the address cannot be normalized.
const InvalidURLMessage = "Please enter a valid URL"

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeInsert       // address field focused
	ModeHistory      // history dropdown open
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeHistory:
		return "HISTORY"
	default:
		return "NORMAL"
	}
}

// Options configures a Model.
type Options struct {
	// Homepage seeds the history; defaults to browser.DefaultHomepage.
	Homepage string
	// StartURL, when set, is navigated to on top of the homepage. An invalid
	// StartURL leaves the homepage current and shows InvalidURLMessage.
	StartURL string
	// Surface renders framed pages. Required.
	Surface frame.Surface
	// FrameOptions configure the presenter (sandbox, timeout).
	FrameOptions []frame.Option
	// Cookies is the persisted cookie blob; an in-memory store is used when nil.
	Cookies *storage.CookieStore
	Logger  logrus.FieldLogger
}

// Model is the top-level bubbletea model for tframe.
type Model struct {
	// UI components
	toolbar   ui.Toolbar
	urlBar    ui.URLBar
	dropdown  ui.Dropdown
	frameView ui.FrameView
	statusBar ui.StatusBar

	// State
	nav       *browser.Navigator
	presenter *frame.Presenter
	cookies   *storage.CookieStore
	logger    logrus.FieldLogger

	keys       KeyMap
	mode       Mode
	width      int
	height     int
	lastGKey   bool   // for "gg" detection
	linkDigits string // typed link number awaiting enter
	notice     string // shown once the first load starts
	ready      bool
}

// maxLinkDigits bounds the typed link number.
const maxLinkDigits = 4

// New creates a new tframe Model. The first frame load starts once the
// terminal size is known.
func New(opts Options) (Model, error) {
	if opts.Surface == nil {
		return Model{}, fmt.Errorf("no frame surface configured")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	home := opts.Homepage
	if home == "" {
		home = browser.DefaultHomepage
	}
	nav, err := browser.NewNavigator(home)
	if err != nil {
		return Model{}, err
	}
	var startErr error
	if opts.StartURL != "" {
		_, startErr = nav.Navigate(opts.StartURL)
	}

	cookies := opts.Cookies
	if cookies == nil {
		cookies, err = storage.LoadCookieStore(storage.NewMemoryKV(), logger)
		if err != nil {
			return Model{}, err
		}
	}

	frameOpts := append([]frame.Option{frame.WithLogger(logger)}, opts.FrameOptions...)

	m := Model{
		toolbar:   ui.NewToolbar(),
		urlBar:    ui.NewURLBar(),
		dropdown:  ui.NewDropdown(ui.ToolbarHeight),
		frameView: ui.NewFrameView(),
		statusBar: ui.NewStatusBar(),
		nav:       nav,
		presenter: frame.NewPresenter(opts.Surface, frameOpts...),
		cookies:   cookies,
		logger:    logger.WithField("component", "app"),
		keys:      DefaultKeyMap(),
		mode:      ModeNormal,
	}
	m.urlBar.SetValue(nav.Current())
	if startErr != nil {
		m.logger.WithError(startErr).WithField("input", opts.StartURL).Warn("start url rejected")
		m.notice = InvalidURLMessage
	}
	m.syncChrome()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("tframe")
}

// Close cancels any in-flight frame load.
func (m Model) Close() {
	m.presenter.Close()
}

// Navigation returns the current navigation state.
func (m Model) Navigation() browser.NavigationState {
	return m.nav.State()
}

// FrameState returns the load state of the frame.
func (m Model) FrameState() frame.LoadState {
	return m.presenter.State()
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := !m.ready
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		if first {
			cmd := m.loadCurrent()
			if m.notice != "" {
				m.statusBar.SetMessage(m.notice, true)
				m.notice = ""
			}
			return m, cmd
		}
		return m, nil

	case frame.LoadedMsg, frame.TimeoutMsg:
		if m.presenter.Handle(msg) {
			m.syncFrame()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, m.updateComponents(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading tframe..."
	}

	// Layout:
	// [toolbar]
	// [history dropdown] (if open)
	// [frame]
	// [status bar + footer note]

	sections := []string{m.toolbar.View(m.urlBar.View())}
	if m.dropdown.IsOpen() {
		sections = append(sections, m.dropdown.View())
	}
	sections = append(sections, m.frameView.View())

	sb := m.statusBar
	if m.presenter.State().Phase == frame.Loaded {
		sb.SetScrollInfo(m.frameView.ScrollInfo())
	}
	sections = append(sections, sb.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	addr := m.toolbar.SetWidth(m.width)
	m.urlBar.SetWidth(addr)
	m.dropdown.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)

	frameHeight := m.height - ui.ToolbarHeight - m.dropdown.Height() - ui.StatusHeight
	if frameHeight < 1 {
		frameHeight = 1
	}
	m.frameView.SetSize(m.width, frameHeight)
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeInsert:
		return m.handleInsertMode(msg)
	case ModeHistory:
		return m.handleHistoryMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys in normal (browsing) mode.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.GotoTop) {
		m.lastGKey = false
	}

	if d, ok := linkDigit(msg); ok {
		if len(m.linkDigits) < maxLinkDigits {
			m.linkDigits += d
		}
		m.statusBar.SetMessage("Follow link "+m.linkDigits, false)
		return m, nil
	}
	if m.linkDigits != "" {
		digits := m.linkDigits
		m.linkDigits = ""
		m.statusBar.SetMessage("", false)
		switch {
		case key.Matches(msg, m.keys.FollowLink):
			n, _ := strconv.Atoi(digits)
			return m, m.followLink(n)
		case key.Matches(msg, m.keys.Cancel):
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusAddress):
		return m, m.focusAddress()

	case key.Matches(msg, m.keys.Back):
		return m, m.back()

	case key.Matches(msg, m.keys.Forward):
		return m, m.forward()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadCurrent()

	case key.Matches(msg, m.keys.ClearCookies):
		m.clearCookies()

	case key.Matches(msg, m.keys.HistoryToggle):
		m.toggleDropdown()

	case key.Matches(msg, m.keys.ScrollDown):
		m.frameView.LineDown(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.frameView.LineUp(1)

	case key.Matches(msg, m.keys.HalfPageDown):
		m.frameView.HalfPageDown()

	case key.Matches(msg, m.keys.HalfPageUp):
		m.frameView.HalfPageUp()

	case key.Matches(msg, m.keys.GotoTop):
		if m.lastGKey {
			m.frameView.GotoTop()
			m.lastGKey = false
		} else {
			m.lastGKey = true
		}

	case key.Matches(msg, m.keys.GotoBottom):
		m.frameView.GotoBottom()
	}
	return m, nil
}

// handleInsertMode processes keys when the address field is focused.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.blurAddress()
		return m, nil

	case tea.KeyEnter:
		cmd, ok := m.navigate(m.urlBar.Value())
		if ok {
			m.urlBar.Blur()
			m.setMode(ModeNormal)
		}
		return m, cmd
	}

	ub, cmd := m.urlBar.Update(msg)
	m.urlBar = *ub
	return m, cmd
}

// handleHistoryMode processes keys while the dropdown is open.
func (m Model) handleHistoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ScrollDown):
		m.dropdown.CursorDown()

	case key.Matches(msg, m.keys.ScrollUp):
		m.dropdown.CursorUp()

	case key.Matches(msg, m.keys.Select):
		entry, ok := m.dropdown.Selected()
		m.closeDropdown()
		if ok {
			return m, m.visit(entry)
		}

	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.HistoryToggle), key.Matches(msg, m.keys.Quit):
		m.closeDropdown()
	}
	return m, nil
}

// handleMouseMsg routes pointer presses to toolbar buttons and the dropdown.
// A left press anywhere outside the open dropdown and its toggle closes the
// dropdown before being handled as usual.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, m.updateComponents(msg)
	}

	if m.dropdown.IsOpen() {
		if entry, ok := m.dropdown.EntryAt(msg.X, msg.Y); ok {
			m.closeDropdown()
			return m, m.visit(entry)
		}
		if m.dropdown.Region().Contains(msg.X, msg.Y) {
			return m, nil
		}
		if !m.toolbar.Region(ui.ButtonDropdown).Contains(msg.X, msg.Y) {
			m.closeDropdown()
		}
	}

	switch m.toolbar.HitTest(msg.X, msg.Y) {
	case ui.ButtonBack:
		return m, m.back()
	case ui.ButtonForward:
		return m, m.forward()
	case ui.ButtonRefresh:
		return m, m.loadCurrent()
	case ui.ButtonClearCookies:
		m.clearCookies()
	case ui.ButtonAddress:
		if m.mode != ModeInsert {
			return m, m.focusAddress()
		}
	case ui.ButtonDropdown:
		m.toggleDropdown()
	default:
		if m.mode == ModeInsert {
			m.blurAddress()
		}
	}
	return m, nil
}

// navigate normalizes raw and, on success, records it and starts a new
// frame generation. On failure the notice is shown and nothing else changes.
func (m *Model) navigate(raw string) (tea.Cmd, bool) {
	url, err := m.nav.Navigate(raw)
	if err != nil {
		m.logger.WithError(err).WithField("input", raw).Debug("navigation rejected")
		m.statusBar.SetMessage(InvalidURLMessage, true)
		return nil, false
	}
	m.logger.WithField("url", url).Debug("navigate")
	m.urlBar.SetValue(url)
	return m.loadCurrent(), true
}

// visit shows a history entry. Entries are already normalized, so they are
// recorded as they are.
func (m *Model) visit(url string) tea.Cmd {
	m.nav.Visit(url)
	m.logger.WithField("url", url).Debug("navigate")
	m.urlBar.SetValue(url)
	return m.loadCurrent()
}

func (m *Model) back() tea.Cmd {
	url, ok := m.nav.Back()
	if !ok {
		return nil
	}
	m.logger.WithField("url", url).Debug("back")
	m.urlBar.SetValue(url)
	return m.loadCurrent()
}

func (m *Model) forward() tea.Cmd {
	url, ok := m.nav.Forward()
	if !ok {
		return nil
	}
	m.logger.WithField("url", url).Debug("forward")
	m.urlBar.SetValue(url)
	return m.loadCurrent()
}

// loadCurrent starts a new frame generation for the current URL. Refresh
// uses it directly, so history is left untouched.
func (m *Model) loadCurrent() tea.Cmd {
	return m.startLoad(m.nav.Current())
}

// followLink opens link n of the framed page inside the frame. Like a click
// inside an iframe it leaves the address field and history alone.
func (m *Model) followLink(n int) tea.Cmd {
	content := m.presenter.Content()
	if content == nil {
		m.statusBar.SetMessage(fmt.Sprintf("No link %d on this page", n), true)
		return nil
	}
	target, err := content.ResolveLink(n)
	if err != nil {
		m.logger.WithError(err).Debug("follow link rejected")
		if errors.Is(err, frame.ErrNoSuchLink) {
			m.statusBar.SetMessage(fmt.Sprintf("No link %d on this page", n), true)
		} else {
			m.statusBar.SetMessage(fmt.Sprintf("Link %d cannot be opened in the frame", n), true)
		}
		return nil
	}
	m.logger.WithField("url", target).Debug("follow link")
	return m.startLoad(target)
}

func (m *Model) startLoad(url string) tea.Cmd {
	load := m.presenter.Load(url, m.width)
	spin := m.frameView.ShowLoading()
	m.statusBar.SetLoading(true)
	m.statusBar.SetTitle("")
	m.statusBar.SetMessage("", false)
	m.syncChrome()
	return tea.Batch(load, spin)
}

func (m *Model) clearCookies() {
	if err := m.cookies.Clear(); err != nil {
		m.statusBar.SetMessage("Clearing cookies failed: "+err.Error(), true)
	} else {
		m.statusBar.SetMessage("Cookies cleared", false)
	}
	m.syncChrome()
}

func (m *Model) focusAddress() tea.Cmd {
	if m.dropdown.IsOpen() {
		m.closeDropdown()
	}
	m.setMode(ModeInsert)
	m.statusBar.SetMessage("", false)
	return m.urlBar.Focus()
}

// blurAddress leaves the address field, discarding unsubmitted edits.
func (m *Model) blurAddress() {
	m.urlBar.Blur()
	m.urlBar.SetValue(m.nav.Current())
	m.statusBar.SetMessage("", false)
	m.setMode(ModeNormal)
}

func (m *Model) toggleDropdown() {
	m.dropdown.Toggle()
	switch {
	case m.dropdown.IsOpen():
		if m.mode == ModeInsert {
			m.urlBar.Blur()
			m.urlBar.SetValue(m.nav.Current())
		}
		m.setMode(ModeHistory)
	case m.mode == ModeHistory:
		m.setMode(ModeNormal)
	}
	m.syncChrome()
	m.layout()
}

func (m *Model) closeDropdown() {
	m.dropdown.Close()
	if m.mode == ModeHistory {
		m.setMode(ModeNormal)
	}
	m.syncChrome()
	m.layout()
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.statusBar.SetMode(mode.String())
}

// syncChrome refreshes the toolbar, dropdown and status bar from state.
func (m *Model) syncChrome() {
	state := m.nav.State()
	m.toolbar.SetNavigation(m.nav.CanGoBack(), m.nav.CanGoForward())
	m.toolbar.SetDropdownOpen(m.dropdown.IsOpen())
	m.dropdown.SetEntries(state.History, state.Cursor)
	m.statusBar.SetCookieCount(m.cookies.Len())
}

// syncFrame shows the presenter's state in the frame view.
func (m *Model) syncFrame() {
	state := m.presenter.State()
	switch state.Phase {
	case frame.Loaded:
		content := m.presenter.Content()
		m.frameView.ShowContent(content.Body)
		m.statusBar.SetTitle(content.Title)
		m.statusBar.SetLoading(false)
	case frame.Errored:
		m.frameView.ShowError(state.Message)
		m.statusBar.SetTitle("")
		m.statusBar.SetLoading(false)
	}
}

// updateComponents forwards messages to sub-components.
func (m *Model) updateComponents(msg tea.Msg) tea.Cmd {
	fv, cmd := m.frameView.Update(msg)
	m.frameView = *fv
	return cmd
}

// linkDigit returns the digit typed by msg, if it is a single plain digit.
func linkDigit(msg tea.KeyMsg) (string, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return "", false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' {
		return "", false
	}
	return string(r), true
}
