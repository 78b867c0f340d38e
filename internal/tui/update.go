package tui

import (
	"log/slog"
	"time"

	"terminal_assist/internal/browse"
	"terminal_assist/internal/keymap"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m.updateListSizes(), nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case libraryLoadedMsg:
		return m.handleLoaded(msg)

	case loadErrorMsg:
		if msg.reload && m.state != StateFailed {
			// Keep browsing the library we already have
			slog.Warn("library reload failed", "source", m.source, "error", msg.err)
			return m, nil
		}
		slog.Error("library load failed", "source", m.source, "error", msg.err)
		m.state = StateFailed
		m.err = msg.err
		return m, nil

	case sourceChangedMsg:
		slog.Debug("source changed", "path", msg.Path, "op", msg.Op)
		return m, tea.Batch(m.loadLibraryCmd(true), m.watchSourceCmd())

	case watchErrMsg:
		slog.Warn("source watch error", "error", msg.error)
		return m, m.watchSourceCmd()

	case copyDoneMsg:
		if msg.seq != m.copySeq {
			return m, nil
		}
		if msg.err != nil {
			slog.Warn("copy failed", "error", msg.err)
			m.copyStatus = copyFailedStatus
			return m, nil
		}
		m.copyStatus = copiedStatus
		seq := m.copySeq
		if m.autoClose {
			return m, tea.Tick(autoCloseDelay, func(time.Time) tea.Msg { return autoCloseMsg{seq: seq} })
		}
		return m, tea.Tick(statusResetDelay, func(time.Time) tea.Msg { return copyResetMsg{seq: seq} })

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copyStatus = ""
		}
		return m, nil

	case autoCloseMsg:
		if msg.seq != m.copySeq || m.state != StateOpen {
			return m, nil
		}
		return m.collapse(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleLoaded installs a freshly loaded library
func (m Model) handleLoaded(msg libraryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.reload && (m.state == StateLauncher || m.state == StateOpen) {
		m.session = m.session.WithLibrary(msg.lib)
		m.search.SetValue(m.session.Filter().Query)
		m = m.resetCopyStatus()
		return m.syncList(), nil
	}

	m.session = browse.NewSession(msg.lib).WithFilter(m.initial).WithLibrary(msg.lib)
	m.err = nil
	m.state = StateLauncher
	var cmd tea.Cmd
	if !m.initial.IsZero() {
		m, cmd = m.open()
	}
	return m.syncList(), cmd
}

// handleKey dispatches a key press through the command table
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, ok := m.keys.Resolve(m.context(), msg)

	// Nothing is mounted while loading or after a failed load
	if m.state == StateLoading || m.state == StateFailed {
		if ok && action == keymap.ActionQuit {
			return m, tea.Quit
		}
		return m, nil
	}

	if !ok {
		if m.state != StateOpen {
			return m, nil
		}
		return m.updateSearch(msg)
	}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit

	case keymap.ActionToggleOverlay:
		if m.state == StateOpen {
			return m.collapse(), nil
		}
		return m.open()

	case keymap.ActionOpen:
		return m.open()

	case keymap.ActionNext:
		return m.withSession(m.session.Next()), nil

	case keymap.ActionPrevious:
		return m.withSession(m.session.Previous()), nil

	case keymap.ActionCopy:
		record, selected := m.session.Selected()
		if !selected {
			return m, nil
		}
		m.copySeq++
		m.copyStatus = ""
		return m, m.copyCmd(m.copySeq, record.Command)

	case keymap.ActionClose:
		if m.session.SelectedIndex() != browse.NoSelection {
			return m.withSession(m.session.Deselect()), nil
		}
		return m.collapse(), nil

	case keymap.ActionNextPlatform, keymap.ActionPrevPlatform:
		delta := 1
		if action == keymap.ActionPrevPlatform {
			delta = -1
		}
		next := browse.CycleOption(m.session.Library().Platforms(), m.session.Filter().Platform, delta)
		return m.withFilteredSession(m.session.WithPlatform(next)), nil

	case keymap.ActionNextCategory, keymap.ActionPrevCategory:
		delta := 1
		if action == keymap.ActionPrevCategory {
			delta = -1
		}
		next := browse.CycleOption(m.session.Library().Categories(), m.session.Filter().Category, delta)
		return m.withFilteredSession(m.session.WithCategory(next)), nil

	case keymap.ActionScrollDown:
		m.detail.ScrollDown(max(m.detail.Height/2, 1))
		return m, nil

	case keymap.ActionScrollUp:
		m.detail.ScrollUp(max(m.detail.Height/2, 1))
		return m, nil

	case keymap.ActionToggleAutoClose:
		m.autoClose = !m.autoClose
		if err := m.prefs.SetAutoClose(m.autoClose); err != nil {
			// The toggle still applies for this run
			slog.Warn("failed to save auto-close preference", "error", err)
		}
		return m, nil

	case keymap.ActionResetFilters:
		m.search.SetValue("")
		return m.withFilteredSession(m.session.WithFilter(browse.FilterState{})), nil
	}

	return m, nil
}

// updateSearch forwards a key to the search box and refilters on change
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if query := m.search.Value(); query != before {
		m = m.withFilteredSession(m.session.WithQuery(query))
	}
	return m, cmd
}

// open expands the overlay and focuses the search box
func (m Model) open() (Model, tea.Cmd) {
	m.state = StateOpen
	cmd := m.search.Focus()
	return m.updateListSizes(), cmd
}

// collapse hides the overlay, keeping the filter for the next open
func (m Model) collapse() Model {
	m.state = StateLauncher
	m.search.Blur()
	m.session = m.session.Deselect()
	m = m.resetCopyStatus()
	return m.syncSelection()
}

// withSession applies a selection change
func (m Model) withSession(s browse.Session) Model {
	if s.SelectedIndex() != m.session.SelectedIndex() {
		m = m.resetCopyStatus()
		m.detail.GotoTop()
	}
	m.session = s
	return m.syncSelection()
}

// withFilteredSession applies a filter change and rebuilds the list
func (m Model) withFilteredSession(s browse.Session) Model {
	m.session = s
	m = m.resetCopyStatus()
	m.detail.GotoTop()
	return m.syncList()
}

// resetCopyStatus clears copy feedback and invalidates pending timers
func (m Model) resetCopyStatus() Model {
	m.copyStatus = ""
	m.copySeq++
	return m
}
