package tui

import (
	"errors"
	"fmt"
	"strings"

	"terminal_assist/internal/keymap"
	"terminal_assist/internal/library"

	"github.com/charmbracelet/lipgloss"
)

const appTitle = "Terminal Assist"

// View renders the UI based on the model state
func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return m.renderLoading()
	case StateFailed:
		return m.renderFailure()
	case StateLauncher:
		return m.renderLauncher()
	}

	var b strings.Builder

	// Header with title and library size
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(SearchStyle(max(m.width-4, 20)).Render(m.search.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	// Main content area; the detail panel sits beside the list
	var content string
	switch {
	case m.session.Len() == 0:
		content = MutedStyle().Padding(1, 2).Render("No commands match the current filters")
	case m.detailOpen():
		listView := lipgloss.NewStyle().Width(m.list.Width()).Render(m.list.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, listView, "  ", m.renderDetailPanel())
	default:
		content = m.list.View()
	}
	b.WriteString(content)

	// Help footer
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderLoading renders the spinner shown while the library is fetched
func (m Model) renderLoading() string {
	return fmt.Sprintf("\n  %s Loading commands from %s...\n", m.spinner.View(), m.sourceName())
}

// renderFailure renders the single load-failure notification
func (m Model) renderFailure() string {
	heading := "Could not load commands"
	var netErr *library.NetworkError
	var parseErr *library.ParseError
	switch {
	case errors.As(m.err, &netErr):
		heading = "Network error: could not reach the command library"
	case errors.As(m.err, &parseErr):
		heading = "The command library is not valid JSON"
	}

	body := DangerHeaderStyle().Render(heading) + "\n\n" +
		MutedStyle().Render(fmt.Sprintf("%v", m.err)) + "\n\n" +
		m.renderHelp()

	return NotificationStyle(max(min(m.width-4, 72), 30)).Render(body)
}

// renderLauncher renders the collapsed launcher
func (m Model) renderLauncher() string {
	title := TitleStyle().Render(appTitle)
	status := StatusStyle().Render(fmt.Sprintf("%d commands ready", m.session.Library().Len()))
	return LauncherStyle().Render(title+"  "+status) + "\n" + m.renderHelp()
}

// renderHeader renders the top header bar
func (m Model) renderHeader() string {
	title := TitleStyle().Render(appTitle)
	status := StatusStyle().Render(fmt.Sprintf("%d commands ready", m.session.Library().Len()))

	// Calculate spacing
	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(status) - 4
	if spacing < 1 {
		spacing = 1
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", spacing), status)
}

// renderStatusBar shows the filtered count, facet selectors and auto-close toggle
func (m Model) renderStatusBar() string {
	f := m.session.Filter()

	count := StatusStyle().Render(fmt.Sprintf("%d commands", m.session.Len()))
	platform := SelectorStyle(f.Platform != "").Render("Platform: " + orAll(f.Platform))
	category := SelectorStyle(f.Category != "").Render("Category: " + orAll(f.Category))

	check := "[ ]"
	if m.autoClose {
		check = "[x]"
	}
	autoClose := StatusStyle().Render(check + " Auto-close after copy")

	return lipgloss.JoinHorizontal(lipgloss.Top, count, "  ", platform, " ", category, "  ", autoClose)
}

// renderHelp renders the help footer for the active key context
func (m Model) renderHelp() string {
	bindings := m.keys.Help(m.context())
	if m.state == StateLoading || m.state == StateFailed {
		bindings = nil
		if quit, ok := m.keys.Binding(keymap.ContextLauncher, keymap.ActionQuit); ok {
			bindings = append(bindings, quit)
		}
	}
	return HelpStyle().Render(m.help.ShortHelpView(bindings))
}

// sourceName describes the configured source for messages
func (m Model) sourceName() string {
	if m.source == nil {
		return "(no source)"
	}
	return m.source.String()
}

func orAll(v string) string {
	if v == "" {
		return "All"
	}
	return v
}
