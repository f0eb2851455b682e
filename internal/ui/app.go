package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/globe/internal/countries"
	"github.com/five82/globe/internal/loader"
	"github.com/five82/globe/internal/prefs"
	"github.com/five82/globe/internal/state"
)

// Loader is the part of loader.Loader the screen drives.
type Loader interface {
	Events() <-chan loader.Event
	Retry(ctx context.Context)
}

// pane identifies which side of the split has focus.
type pane int

const (
	paneList pane = iota
	paneDetail
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Loader       Loader
	OpenSettings func() error
	Logger       *zap.Logger
	ThemeName    string
	PrefsPath    string
}

// detail is the country opened in the detail pane with its neighbours.
type detail struct {
	country countries.Country
	borders []countries.Country
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx          context.Context
	store        *state.Store
	loader       Loader
	openSettings func() error
	logger       *zap.Logger
	prefsPath    string
	keys         keyMap

	theme   Theme
	width   int
	height  int
	ready   bool
	focused pane

	snapshot    state.Snapshot
	loading     bool
	offline     bool
	selectedRow int

	detail         *detail
	detailViewport viewport.Model

	modal    *errorModal
	notice   string
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	openSettings := opts.OpenSettings
	if openSettings == nil {
		openSettings = func() error { return nil }
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:          ctx,
		store:        opts.Store,
		loader:       opts.Loader,
		openSettings: openSettings,
		logger:       logger,
		prefsPath:    prefsPath,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.ThemeName),
		loading:      true,
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		m.loading = m.snapshot.Empty()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.ctx, m.loader)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.updateDetailViewport()
		return m, nil

	case loaderEventMsg:
		m.handleLoaderEvent(loader.Event(msg))
		return m, waitForEvent(m.ctx, m.loader)

	case settingsMsg:
		if msg.err != nil {
			m.logger.Warn("open network settings failed", zap.Error(msg.err))
			m.notice = "Could not open network settings: " + msg.err.Error()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m *Model) handleLoaderEvent(ev loader.Event) {
	m.loading = false
	switch ev.Kind {
	case loader.EventLoaded:
		m.offline = false
		m.modal = nil
		m.notice = ""
		m.refreshSnapshot()
		m.logger.Debug("list ready", zap.Int("count", ev.Count), zap.Stringer("source", ev.Source))
		return
	case loader.EventOffline:
		m.offline = true
	}
	if modal, ok := newErrorModal(ev); ok {
		m.modal = &modal
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		action, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		switch action {
		case actionRetry:
			m.loading = true
			return m, retryCmd(m.ctx, m.loader)
		case actionOpenSettings:
			return m, openSettingsCmd(m.openSettings)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Sort):
		if cmd, ok := commandForKey(msg.String()); ok {
			m.runCommand(cmd)
		}
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.focused == paneList && m.detail != nil {
			m.focused = paneDetail
		} else {
			m.focused = paneList
		}
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.focused = paneList
		m.notice = ""
		return m, nil
	}

	if m.focused == paneDetail {
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	}
	return m.handleListKey(msg)
}

// handleListKey moves the selection or opens the selected country.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Countries)
	if count == 0 {
		return m, nil
	}
	page := max(m.listRows()-1, 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedRow = min(m.selectedRow+1, count-1)
	case key.Matches(msg, m.keys.Up):
		m.selectedRow = max(m.selectedRow-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow = min(m.selectedRow+page, count-1)
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow = max(m.selectedRow-page, 0)
	case key.Matches(msg, m.keys.Open):
		m.openSelected()
	}
	return m, nil
}

// runCommand applies a sort command and keeps the selected country selected.
func (m *Model) runCommand(cmd command) {
	if m.snapshot.Empty() {
		return
	}
	selected, hasSelection := m.selectedCountry()
	dispatch(m.store, cmd)
	m.refreshSnapshot()
	if hasSelection {
		if idx := countries.Index(m.snapshot.Countries, selected.AlphaCode); idx >= 0 {
			m.selectedRow = idx
		}
	}
	if m.detail != nil {
		m.detail.borders = countries.Bordering(m.snapshot.Countries, m.detail.country)
		m.updateDetailViewport()
	}
}

// openSelected computes the neighbours of the selected country and focuses
// the detail pane.
func (m *Model) openSelected() {
	selected, ok := m.selectedCountry()
	if !ok {
		return
	}
	m.detail = &detail{
		country: selected,
		borders: countries.Bordering(m.snapshot.Countries, selected),
	}
	m.focused = paneDetail
	m.updateDetailViewport()
	m.detailViewport.GotoTop()
}

func (m Model) selectedCountry() (countries.Country, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Countries) {
		return countries.Country{}, false
	}
	return m.snapshot.Countries[m.selectedRow], true
}

func (m *Model) refreshSnapshot() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
	if m.selectedRow >= len(m.snapshot.Countries) {
		m.selectedRow = max(len(m.snapshot.Countries)-1, 0)
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath != "" {
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save preferences failed", zap.Error(err))
		}
	}
	m.updateDetailViewport()
}

// renderMain renders header, command bar and the two panes.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderPanes())
	return b.String()
}

// Messages

type loaderEventMsg loader.Event

type settingsMsg struct{ err error }

// Commands

// waitForEvent blocks until the loader reports an outcome. The model re-arms
// it after every event.
func waitForEvent(ctx context.Context, l Loader) tea.Cmd {
	if l == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case ev := <-l.Events():
			return loaderEventMsg(ev)
		case <-ctx.Done():
			return nil
		}
	}
}

func retryCmd(ctx context.Context, l Loader) tea.Cmd {
	if l == nil {
		return nil
	}
	return func() tea.Msg {
		l.Retry(ctx)
		return nil
	}
}

func openSettingsCmd(open func() error) tea.Cmd {
	return func() tea.Msg {
		return settingsMsg{err: open()}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
