package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"terminal_assist/internal/config"
)

// flavor is the active catppuccin palette
var flavor catppuccin.Flavor = catppuccin.Mocha

// ApplyTheme selects the catppuccin flavor by name; unknown names keep mocha
func ApplyTheme(name string) {
	switch name {
	case "latte":
		flavor = catppuccin.Latte
	case "frappe":
		flavor = catppuccin.Frappe
	case "macchiato":
		flavor = catppuccin.Macchiato
	default:
		flavor = catppuccin.Mocha
	}
}

func hex(c catppuccin.Color) lipgloss.Color { return lipgloss.Color(c.Hex) }

// Color palette
func primaryColor() lipgloss.Color   { return hex(flavor.Mauve()) }
func secondaryColor() lipgloss.Color { return hex(flavor.Green()) }
func warningColor() lipgloss.Color   { return hex(flavor.Yellow()) }
func dangerColor() lipgloss.Color    { return hex(flavor.Red()) }
func mutedColor() lipgloss.Color     { return hex(flavor.Overlay1()) }
func fgColor() lipgloss.Color        { return hex(flavor.Text()) }
func surfaceColor() lipgloss.Color   { return hex(flavor.Surface0()) }
func baseColor() lipgloss.Color      { return hex(flavor.Base()) }

// ColorByName resolves a catppuccin color name such as "red" or "overlay1"
func ColorByName(name string) lipgloss.Color {
	switch name {
	case "rosewater":
		return hex(flavor.Rosewater())
	case "flamingo":
		return hex(flavor.Flamingo())
	case "pink":
		return hex(flavor.Pink())
	case "mauve":
		return hex(flavor.Mauve())
	case "red":
		return hex(flavor.Red())
	case "maroon":
		return hex(flavor.Maroon())
	case "peach":
		return hex(flavor.Peach())
	case "yellow":
		return hex(flavor.Yellow())
	case "green":
		return hex(flavor.Green())
	case "teal":
		return hex(flavor.Teal())
	case "sky":
		return hex(flavor.Sky())
	case "sapphire":
		return hex(flavor.Sapphire())
	case "blue":
		return hex(flavor.Blue())
	case "lavender":
		return hex(flavor.Lavender())
	case "subtext1":
		return hex(flavor.Subtext1())
	case "subtext0":
		return hex(flavor.Subtext0())
	case "overlay2":
		return hex(flavor.Overlay2())
	case "overlay0":
		return hex(flavor.Overlay0())
	default:
		return mutedColor()
	}
}

// Header styles

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(primaryColor())
}

func StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(mutedColor())
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(dangerColor()).
		Bold(true).
		Padding(1)
}

// NotificationStyle frames the load failure message
func NotificationStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dangerColor()).
		Padding(1, 2).
		Width(width)
}

// LauncherStyle frames the collapsed launcher
func LauncherStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor()).
		Padding(0, 2)
}

// Filter bar styles

func SearchStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(surfaceColor()).
		Width(width)
}

func SelectorStyle(active bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return s.Background(primaryColor()).Foreground(baseColor()).Bold(true)
	}
	return s.Foreground(mutedColor())
}

// List item styles

func SelectedItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(surfaceColor()).
		Foreground(fgColor()).
		Bold(true)
}

func NormalItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fgColor())
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(mutedColor())
}

func BadgeStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color).Padding(0, 1)
}

// TechniqueStyle styles a technique badge by its configured group
func TechniqueStyle(group *config.TechniqueGroup) lipgloss.Style {
	if group == nil {
		return BadgeStyle(mutedColor())
	}
	s := BadgeStyle(ColorByName(group.Color))
	if group.Bold {
		s = s.Bold(true)
	}
	return s
}

// Detail panel styles

func DetailHeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor()).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(surfaceColor()).
		Width(width)
}

func DetailPanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(surfaceColor()).
		PaddingLeft(1)
}

func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(hex(flavor.Blue()))
}

func CodeBlockStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(hex(flavor.Mantle())).
		Foreground(hex(flavor.Peach())).
		Padding(0, 1).
		Width(width)
}

func DangerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(dangerColor())
}

func DangerHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(dangerColor()).Bold(true)
}

func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(warningColor())
}

func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(secondaryColor()).Bold(true)
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(mutedColor())
}
