package tui

import (
	"fmt"
	"io"
	"strings"

	"terminal_assist/internal/config"
	"terminal_assist/internal/library"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// descriptionLimit is how many characters of a description the list shows
const descriptionLimit = 100

// recordItem wraps a Record for the list component
type recordItem struct {
	record library.Record
}

func (i recordItem) FilterValue() string { return i.record.Name }
func (i recordItem) Title() string       { return i.record.Name }
func (i recordItem) Description() string { return truncate(i.record.Description, descriptionLimit) }

// recordDelegate renders command records.
// The highlighted row follows the session selection, not the list cursor,
// so nothing is highlighted until the user navigates.
type recordDelegate struct {
	width    int
	selected int
	cfg      *config.Config
}

func newRecordDelegate(cfg *config.Config) *recordDelegate {
	return &recordDelegate{selected: -1, cfg: cfg}
}

// SetWidth updates the width available for rendering
func (d *recordDelegate) SetWidth(width int) { d.width = width }

// SetSelected sets the highlighted row, or -1 for none
func (d *recordDelegate) SetSelected(index int) { d.selected = index }

func (d *recordDelegate) Height() int                             { return 2 }
func (d *recordDelegate) Spacing() int                            { return 1 }
func (d *recordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d *recordDelegate) Render(w io.Writer, _ list.Model, index int, item list.Item) {
	i, ok := item.(recordItem)
	if !ok {
		return
	}
	r := i.record

	nameStyle := NormalItemStyle()
	marker := "  "
	if index == d.selected {
		nameStyle = SelectedItemStyle()
		marker = SuccessStyle().Render("> ")
	}

	badges := []string{BadgeStyle(hex(flavor.Sky())).Render(r.Platform)}
	if r.Technique != "" {
		var group *config.TechniqueGroup
		if d.cfg != nil {
			group = d.cfg.GetTechniqueGroup(r.Technique)
		}
		badges = append(badges, TechniqueStyle(group).Render(r.Technique))
	}
	if exe := library.Executable(r.Command); exe != "" {
		badges = append(badges, BadgeStyle(warningColor()).Render(exe))
	}

	// Rows start with a 2-column marker or indent, and truncate appends
	// 3 columns of ellipsis.
	title := nameStyle.Render(r.Name) + " " + strings.Join(badges, "")
	if d.width > 0 && lipgloss.Width(title)+2 > d.width {
		title = nameStyle.Render(truncate(r.Name, max(d.width-7, 4)))
	}

	desc := truncate(r.Description, descriptionLimit)
	if d.width > 10 {
		desc = truncate(desc, d.width-7)
	}

	fmt.Fprintf(w, "%s%s\n  %s", marker, title, MutedStyle().Render(desc))
}

// ============================================================================
// Helper Functions
// ============================================================================

// truncate shortens a string to maxLen runes, appending an ellipsis when cut
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen]) + "..."
}
