// Package common holds pieces shared by every pane: the color theme and a
// few layout helpers.
package common

import "github.com/charmbracelet/lipgloss"

// Theme is the palette the panes render with. Two palettes exist, selected
// by the theme setting.
type Theme struct {
	Accent       lipgloss.Color
	Text         lipgloss.Color
	Dim          lipgloss.Color
	Danger       lipgloss.Color
	UserBubbleBg lipgloss.Color
	BotBubbleBg  lipgloss.Color
	Border       lipgloss.Color
	SelectionBg  lipgloss.Color
}

// DarkTheme is the default palette.
func DarkTheme() Theme {
	return Theme{
		Accent:       lipgloss.Color("63"),
		Text:         lipgloss.Color("252"),
		Dim:          lipgloss.Color("240"),
		Danger:       lipgloss.Color("196"),
		UserBubbleBg: lipgloss.Color("238"),
		BotBubbleBg:  lipgloss.Color("236"),
		Border:       lipgloss.Color("240"),
		SelectionBg:  lipgloss.Color("236"),
	}
}

// LightTheme is the alternate palette.
func LightTheme() Theme {
	return Theme{
		Accent:       lipgloss.Color("27"),
		Text:         lipgloss.Color("235"),
		Dim:          lipgloss.Color("245"),
		Danger:       lipgloss.Color("124"),
		UserBubbleBg: lipgloss.Color("254"),
		BotBubbleBg:  lipgloss.Color("253"),
		Border:       lipgloss.Color("250"),
		SelectionBg:  lipgloss.Color("252"),
	}
}

// ThemeFor maps a theme setting value to its palette.
func ThemeFor(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}
