// Package modals provides the centered overlay boxes used across the app:
// yes/no confirmation, error display, and a scrollable information box.
package modals

import (
	"strings"

	"docchat/src/components/common"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmationModal is a reusable yes/no modal for confirmations and notices
type ConfirmationModal struct {
	Title    string
	Prompt   string
	Selected int // 0 = Yes, 1 = No
	Width    int
	Height   int
}

// Toggle flips the selection between Yes and No.
func (m *ConfirmationModal) Toggle() {
	m.Selected = 1 - m.Selected
}

// Confirmed reports whether Yes is selected.
func (m ConfirmationModal) Confirmed() bool {
	return m.Selected == 0
}

func (m ConfirmationModal) View(th common.Theme) string {
	boxWidth := 40
	options := []string{"Yes", "No"}
	var renderedOptions []string
	for i, opt := range options {
		style := lipgloss.NewStyle().Foreground(th.Text).Width(8).Align(lipgloss.Center)
		if i == m.Selected {
			style = style.Bold(true).Foreground(th.Danger).Background(th.SelectionBg)
		}
		renderedOptions = append(renderedOptions, style.Render(opt))
	}
	optionsLine := lipgloss.JoinHorizontal(lipgloss.Center, renderedOptions...)
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Danger).Render(m.Title)
	content := lipgloss.NewStyle().Width(boxWidth).Align(lipgloss.Center).
		Render(title + "\n\n" + m.Prompt + "\n\n" + optionsLine)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Danger).
		Padding(1, 2).
		Width(boxWidth + 4).
		Align(lipgloss.Center).
		Render(content)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}

// ErrorModal is a reusable modal for displaying errors
type ErrorModal struct {
	Message string
	Width   int
	Height  int
}

func (m ErrorModal) View(th common.Theme) string {
	errorStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(1, 2).
		Foreground(th.Danger).
		Width(min(m.Width-10, 70))
	box := errorStyle.Render(m.Message + "\n\nESC or Enter to close")
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}

// InformationModal is a reusable modal for help/about/message screens
type InformationModal struct {
	Title   string
	Content string
	Width   int
	Height  int
}

func (m InformationModal) View(th common.Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render(m.Title)
	lines := strings.Split(m.Content, "\n")
	normal := lipgloss.NewStyle().Foreground(th.Text).Render
	var renderedLines []string
	for _, line := range lines {
		renderedLines = append(renderedLines, normal(line))
	}
	content := strings.Join(renderedLines, "\n")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(1, 2).
		Width(min(m.Width-10, 76)).
		Render(title + "\n\n" + content)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
