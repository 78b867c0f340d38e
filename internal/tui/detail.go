package tui

import (
	"strings"
	"unicode/utf8"

	"terminal_assist/internal/library"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Detail panel chrome: left border plus padding, header with its rule,
// and the copy line with a blank line above it.
const (
	detailFrameWidth  = 2
	detailChromeLines = 4
)

// detailSize returns the panel's outer width and height for the current layout
func (m Model) detailSize() (int, int) {
	return max(m.width-m.list.Width()-6, 20), max(m.height-8, 3)
}

// refreshDetail renders the selected record into the scrollable body
func (m Model) refreshDetail() Model {
	width, height := m.detailSize()
	m.detail.Width = width - detailFrameWidth
	m.detail.Height = max(height-detailChromeLines, 1)

	record, ok := m.session.Selected()
	if !ok {
		m.detail.SetContent("")
		return m
	}
	m.detail.SetContent(formatRecordDetail(record, m.detail.Width))
	return m
}

// renderDetailPanel renders the selected command's detail side panel
func (m Model) renderDetailPanel() string {
	width, height := m.detailSize()
	inner := width - detailFrameWidth

	var b strings.Builder

	record, ok := m.session.Selected()
	if !ok {
		b.WriteString(MutedStyle().Render("Select a command to see its details"))
		return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
	}

	// Panel header
	b.WriteString(DetailHeaderStyle(inner).Render(truncate(record.Name, max(inner-3, 1))))
	b.WriteString("\n")

	b.WriteString(m.detail.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderCopyLine())

	return DetailPanelStyle().Render(b.String())
}

// renderCopyLine shows the copy key, scroll position and the latest copy outcome
func (m Model) renderCopyLine() string {
	hint := HelpStyle().Render("enter: copy command")
	if !m.detail.AtTop() || !m.detail.AtBottom() {
		hint += HelpStyle().Render(" | pgdn/pgup: scroll")
	}
	switch m.copyStatus {
	case copiedStatus:
		return hint + "  " + SuccessStyle().Render(m.copyStatus)
	case copyFailedStatus:
		return hint + "  " + DangerHeaderStyle().Render(m.copyStatus)
	default:
		return hint
	}
}

// formatRecordDetail renders a record's fields with risk warnings.
// Code blocks are wrapped, never cut, so the whole command stays readable.
func formatRecordDetail(r library.Record, width int) string {
	var b strings.Builder

	if r.Description != "" {
		b.WriteString(wrapText(r.Description, width))
		b.WriteString("\n\n")
	}

	// Metadata
	b.WriteString(LabelStyle().Render("Platform: "))
	b.WriteString(r.Platform)
	if r.Technique != "" {
		b.WriteString("  ")
		b.WriteString(LabelStyle().Render("Technique: "))
		b.WriteString(r.Technique)
	}
	b.WriteString("\n")
	b.WriteString(MutedStyle().Render(r.Category))
	b.WriteString("\n\n")

	// Security analysis
	if warnings := library.RiskWarnings(r.Command); len(warnings) > 0 {
		b.WriteString(DangerHeaderStyle().Render("! Risk Warnings"))
		b.WriteString("\n")
		for _, w := range warnings {
			b.WriteString(DangerStyle().Render("  - " + w))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Command field
	b.WriteString(LabelStyle().Render("Command:"))
	b.WriteString("\n")
	b.WriteString(codeBlock(r.Command, width))
	b.WriteString("\n")

	if r.Example != "" {
		b.WriteString("\n")
		b.WriteString(LabelStyle().Render("Example:"))
		b.WriteString("\n")
		b.WriteString(codeBlock(r.Example, width))
		b.WriteString("\n")
	}

	if r.Output != "" {
		b.WriteString("\n")
		b.WriteString(LabelStyle().Render("Sample output:"))
		b.WriteString("\n")
		b.WriteString(codeBlock(r.Output, width))
		b.WriteString("\n")
	}

	return b.String()
}

// codeBlock renders text in a code block of the given outer width
func codeBlock(text string, width int) string {
	// CodeBlockStyle pads one column on each side
	return CodeBlockStyle(width).Render(wrapCode(text, width-2))
}

// wrapText wraps text at word boundaries to fit within width
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		lineLen := 0
		for _, word := range strings.Fields(line) {
			wordLen := runewidth.StringWidth(word)
			if lineLen+wordLen+1 > width && lineLen > 0 {
				result.WriteString("\n")
				lineLen = 0
			}
			if lineLen > 0 {
				result.WriteString(" ")
				lineLen++
			}
			// Very long words are broken across lines
			for wordLen > width {
				var head string
				head, word = splitAtWidth(word, width)
				result.WriteString(head)
				result.WriteString("\n")
				wordLen = runewidth.StringWidth(word)
			}
			result.WriteString(word)
			lineLen += wordLen
		}
	}

	return result.String()
}

// wrapCode wraps each line of code to width, breaking at the last space
// that fits and splitting long tokens. Unlike wrapText it keeps the
// spacing inside each line.
func wrapCode(text string, width int) string {
	text = strings.ReplaceAll(strings.TrimRight(text, "\n"), "\t", "  ")
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		for runewidth.StringWidth(line) > width {
			head := runewidth.Truncate(line, width, "")
			if cut := strings.LastIndexByte(head, ' '); cut > 0 {
				out = append(out, head[:cut])
				line = line[cut+1:]
				continue
			}
			head, line = splitAtWidth(line, width)
			out = append(out, head)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// splitAtWidth cuts s after at most width display columns, always
// consuming at least one rune
func splitAtWidth(s string, width int) (string, string) {
	head := runewidth.Truncate(s, width, "")
	if head == "" {
		_, size := utf8.DecodeRuneInString(s)
		head = s[:size]
	}
	return head, s[len(head):]
}
