package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"terminal_assist/internal/browse"
	"terminal_assist/internal/clipboard"
	"terminal_assist/internal/config"
	"terminal_assist/internal/keymap"
	"terminal_assist/internal/library"
	"terminal_assist/internal/prefs"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Copy feedback
const (
	copiedStatus     = "Copied!"
	copyFailedStatus = "Copy failed"

	autoCloseDelay   = 1500 * time.Millisecond
	statusResetDelay = 2 * time.Second
)

var errNoSource = errors.New("no command library source configured")

// ViewState represents what the shell is currently showing
type ViewState int

const (
	StateLoading  ViewState = iota // Fetching the library
	StateFailed                    // Load failed; only quit works
	StateLauncher                  // Overlay collapsed
	StateOpen                      // Overlay open, detail panel shown when selected
)

// ModelOptions configures a new Model
type ModelOptions struct {
	Config    *config.Config
	Source    library.Source
	Keys      *keymap.Table
	Prefs     *prefs.Store
	Clipboard clipboard.Writer

	// Filter is applied as soon as the library loads; a non-empty filter
	// opens the overlay straight away.
	Filter browse.FilterState
}

// Model represents the application state
type Model struct {
	// Collaborators
	cfg     *config.Config
	source  library.Source
	watcher *library.Watcher
	keys    *keymap.Table
	prefs   *prefs.Store
	clip    clipboard.Writer

	// Core state
	state     ViewState
	session   browse.Session
	initial   browse.FilterState
	autoClose bool

	// Copy feedback; copySeq invalidates timers from earlier copies
	copyStatus string
	copySeq    int

	// UI components
	search   textinput.Model
	list     list.Model
	delegate *recordDelegate
	detail   viewport.Model
	spinner  spinner.Model
	help     help.Model

	// UI dimensions
	width  int
	height int

	// Error state
	err error
}

// NewModel creates a new Model with initialized state
func NewModel(opts ModelOptions) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	keys := opts.Keys
	if keys == nil {
		keys = keymap.Default()
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.Memory()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{OSC52Fallback: cfg.OSC52}
	}

	ApplyTheme(cfg.Theme)

	delegate := newRecordDelegate(cfg)

	m := Model{
		cfg:       cfg,
		source:    opts.Source,
		keys:      keys,
		prefs:     store,
		clip:      clip,
		state:     StateLoading,
		session:   browse.NewSession(nil),
		initial:   opts.Filter,
		autoClose: store.AutoClose(),
		delegate:  delegate,
		detail:    viewport.New(0, 0),
		help:      help.New(),
	}

	m.search = textinput.New()
	m.search.Placeholder = "Search commands..."
	m.search.Prompt = "/ "
	m.search.SetValue(opts.Filter.Query)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = TitleStyle()

	// Initialize list component with delegate
	m.list = list.New([]list.Item{}, delegate, 0, 0)
	m.list.SetShowTitle(false)
	m.list.SetShowHelp(false)
	m.list.SetShowStatusBar(false)
	m.list.SetShowPagination(false)
	m.list.SetFilteringEnabled(false)
	m.list.DisableQuitKeybindings()

	if cfg.Watch {
		m.watcher = newSourceWatcher(opts.Source)
	}

	return m
}

// newSourceWatcher watches local sources; remote sources are never watched
func newSourceWatcher(src library.Source) *library.Watcher {
	fs, ok := src.(*library.FileSource)
	if !ok {
		slog.Info("watch ignored for non-file source", "source", src)
		return nil
	}
	w, err := library.NewWatcher(fs.Path)
	if err != nil {
		slog.Warn("failed to watch source", "path", fs.Path, "error", err)
		return nil
	}
	w.Start()
	return w
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadLibraryCmd(false),
		m.spinner.Tick,
		m.watchSourceCmd(),
	)
}

// Close releases the source watcher
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Stop()
}

// Message types
type (
	libraryLoadedMsg struct {
		lib    *library.Library
		reload bool
	}
	loadErrorMsg struct {
		err    error
		reload bool
	}
	sourceChangedMsg library.WatchEvent
	watchErrMsg      struct{ error }
	copyDoneMsg      struct {
		seq int
		err error
	}
	copyResetMsg struct{ seq int }
	autoCloseMsg struct{ seq int }
)

// loadLibraryCmd fetches and parses the library off the UI goroutine
func (m Model) loadLibraryCmd(reload bool) tea.Cmd {
	src, timeout := m.source, m.cfg.Timeout
	return func() tea.Msg {
		if src == nil {
			return loadErrorMsg{err: &library.NetworkError{Source: "(none)", Err: errNoSource}, reload: reload}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		lib, err := library.Load(ctx, src)
		if err != nil {
			return loadErrorMsg{err: err, reload: reload}
		}
		return libraryLoadedMsg{lib: lib, reload: reload}
	}
}

// watchSourceCmd returns a command that waits for source file events
func (m Model) watchSourceCmd() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case event := <-w.Events:
			return sourceChangedMsg(event)
		case err := <-w.Errors:
			return watchErrMsg{err}
		}
	}
}

// copyCmd writes text to the clipboard and reports the outcome for seq
func (m Model) copyCmd(seq int, text string) tea.Cmd {
	clip := m.clip
	return func() tea.Msg {
		return copyDoneMsg{seq: seq, err: clip.WriteText(text)}
	}
}

// context reports which key context is active
func (m Model) context() keymap.Context {
	switch {
	case m.state != StateOpen:
		return keymap.ContextLauncher
	case m.session.SelectedIndex() != browse.NoSelection:
		return keymap.ContextDetail
	default:
		return keymap.ContextOverlay
	}
}

// syncList rebuilds the list items from the session's filtered view
func (m Model) syncList() Model {
	records := m.session.Visible()
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = recordItem{record: r}
	}
	m.list.SetItems(items)
	m.list.Select(0)
	return m.syncSelection()
}

// syncSelection mirrors the session selection into the list
func (m Model) syncSelection() Model {
	sel := m.session.SelectedIndex()
	m.delegate.SetSelected(sel)
	if sel != browse.NoSelection {
		m.list.Select(sel)
	}
	return m.updateListSizes()
}

// updateListSizes updates list dimensions based on terminal size
func (m Model) updateListSizes() Model {
	// Reserve space for header (1), search (2), status bar (1), help (2), margins (2)
	listHeight := m.height - 8
	if listHeight < 3 {
		listHeight = 3
	}
	listWidth := m.width - 4
	if listWidth < 20 {
		listWidth = 20
	}

	// List width is reduced when the detail panel is open
	if m.detailOpen() {
		listWidth = int(float64(listWidth) * 0.5)
	}

	m.delegate.SetWidth(listWidth)
	m.list.SetSize(listWidth, listHeight)
	m.search.Width = max(m.width-8, 10)

	return m.refreshDetail()
}

// detailOpen reports whether the detail panel is visible
func (m Model) detailOpen() bool {
	return m.state == StateOpen && m.session.SelectedIndex() != browse.NoSelection
}

// State returns the current view state
func (m Model) State() ViewState { return m.state }

// Session returns the current browsing session
func (m Model) Session() browse.Session { return m.session }

// AutoClose reports whether the overlay closes after a successful copy
func (m Model) AutoClose() bool { return m.autoClose }

// CopyStatus returns the inline copy feedback, if any
func (m Model) CopyStatus() string { return m.copyStatus }

// Err returns the load error shown in the failed state
func (m Model) Err() error { return m.err }
