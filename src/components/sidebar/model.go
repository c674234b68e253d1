// components/sidebar/model.go - sidebar pane: navigation rows plus the
// thread list, newest first.

package sidebar

import (
	"strings"

	"docchat/src/components/common"
	"docchat/src/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EventType identifies what the user picked in the sidebar.
type EventType int

const (
	EventNone EventType = iota
	EventSelectChat
	EventNewChat
	EventDeleteChat
	EventOpenSettings
	EventOpenAbout
)

// Event is the sidebar's answer to a key press the app must act on.
type Event struct {
	Type   EventType
	ChatID string
}

// Fixed navigation rows above the chat list.
var navRows = []string{"Chat", "Settings", "About"}

// Model manages the persistent sidebar next to the content pane.
type Model struct {
	Index  int // selected row across nav rows, chat rows and the new-chat row
	Width  int
	Height int
}

// New returns a sidebar with the first row selected.
func New() Model {
	return Model{Index: 0, Width: 26}
}

// rowCount is nav rows + one row per chat + the new-chat row.
func (m Model) rowCount(chats []*models.Chat) int {
	return len(navRows) + len(chats) + 1
}

// Update handles key navigation. chats is the current thread list, newest
// first, so row order matches display order.
func (m Model) Update(msg tea.KeyMsg, chats []*models.Chat) (Model, Event) {
	count := m.rowCount(chats)
	switch msg.String() {
	case "up":
		if m.Index == 0 {
			m.Index = count - 1
		} else {
			m.Index--
		}
	case "down":
		if m.Index == count-1 {
			m.Index = 0
		} else {
			m.Index++
		}
	case "enter":
		switch {
		case m.Index == 0:
			return m, Event{Type: EventSelectChat} // re-open current chat pane
		case m.Index == 1:
			return m, Event{Type: EventOpenSettings}
		case m.Index == 2:
			return m, Event{Type: EventOpenAbout}
		case m.Index == count-1:
			return m, Event{Type: EventNewChat}
		default:
			return m, Event{Type: EventSelectChat, ChatID: chats[m.Index-len(navRows)].ID}
		}
	case "d", "delete", "backspace":
		if m.Index >= len(navRows) && m.Index < count-1 {
			return m, Event{Type: EventDeleteChat, ChatID: chats[m.Index-len(navRows)].ID}
		}
	}
	return m, Event{}
}

// ClampIndex keeps the selection valid after the chat list shrinks.
func (m Model) ClampIndex(chats []*models.Chat) Model {
	if count := m.rowCount(chats); m.Index >= count {
		m.Index = count - 1
	}
	return m
}

// View renders the sidebar. activeID highlights the active chat; focused
// controls whether the selection marker is drawn.
func (m Model) View(chats []*models.Chat, activeID string, focused bool, th common.Theme) string {
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	rowStyle := lipgloss.NewStyle().Foreground(th.Text)
	dimStyle := lipgloss.NewStyle().Foreground(th.Dim)
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Text).Background(th.SelectionBg)

	marker := func(row int) string {
		if focused && row == m.Index {
			return "> "
		}
		return "  "
	}
	styleFor := func(row int, base lipgloss.Style) lipgloss.Style {
		if focused && row == m.Index {
			return selectedStyle
		}
		return base
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, nav := range navRows {
		b.WriteString(marker(i) + styleFor(i, rowStyle).Render(nav) + "\n")
	}
	b.WriteString("\n")
	b.WriteString("  " + headStyle.Render("Chats") + "\n")
	b.WriteString("  " + dimStyle.Render(strings.Repeat("-", m.Width-4)) + "\n")
	if len(chats) == 0 {
		b.WriteString("  " + dimStyle.Render("(no chats yet)") + "\n")
	}
	for i, c := range chats {
		row := len(navRows) + i
		title := c.Title
		if maxw := m.Width - 6; maxw > 0 {
			if r := []rune(title); len(r) > maxw {
				title = string(r[:maxw]) + "…"
			}
		}
		style := rowStyle
		if c.ID == activeID {
			style = activeStyle
		}
		b.WriteString(marker(row) + styleFor(row, style).Render(title) + "\n")
	}
	b.WriteString("\n")
	newRow := m.rowCount(chats) - 1
	b.WriteString(marker(newRow) + styleFor(newRow, rowStyle).Render("[+] New Chat") + "\n")
	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render("d to delete a chat") + "\n")

	return lipgloss.NewStyle().
		Width(m.Width).
		Height(m.Height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(th.Border).
		Render(b.String())
}
