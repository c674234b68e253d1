// components/chat/model.go - the center pane: transcript plus input row.
// The pane owns presentation state only (selection, scrolling, the input
// buffer); chat data lives in the session store and is passed in per frame.

package chat

import (
	"strings"

	"docchat/src/models"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// EventType identifies what the pane wants the app to do.
type EventType int

const (
	EventNone EventType = iota
	EventAsk            // Text is the question
	EventUpload         // Text is the file path
	EventNewChat
	EventQuit
	EventHelp
	EventOpenMessage // Index is the message to show in a modal
)

// Event is the pane's answer to a key press the app must act on.
type Event struct {
	Type  EventType
	Text  string
	Index int
}

// Model is the chat pane state.
type Model struct {
	Input      Input
	Selected   int // selected message index, -1 when none
	ScrollPos  int // first visible message index
	Width      int
	Height     int
	BlinkOn    bool
	statusNote string
}

// New returns an empty chat pane.
func New() Model {
	return Model{Selected: -1, BlinkOn: true}
}

// visibleCount estimates how many messages fit in the transcript area.
func (m Model) visibleCount() int {
	// Bubbles take several rows each; keep the window conservative.
	n := (m.Height - 8) / 5
	if n < 1 {
		n = 1
	}
	return n
}

// PinToEnd scrolls so the newest message is visible and selected.
func (m Model) PinToEnd(c *models.Chat) Model {
	if c == nil || len(c.Messages) == 0 {
		m.ScrollPos = 0
		m.Selected = -1
		return m
	}
	last := len(c.Messages) - 1
	m.Selected = last
	m.ScrollPos = last - m.visibleCount() + 1
	if m.ScrollPos < 0 {
		m.ScrollPos = 0
	}
	return m
}

// Update handles keys while the chat pane is focused. loading suppresses
// submission, matching the reference UI's disabled Ask button.
func (m Model) Update(msg tea.KeyMsg, c *models.Chat, loading bool) (Model, Event) {
	switch msg.String() {
	case "enter":
		if loading || strings.TrimSpace(m.Input.Buffer) == "" {
			return m, Event{}
		}
		text := m.Input.Buffer
		if strings.HasPrefix(text, ":") {
			m.Input.Reset()
			return m.handleCommand(text)
		}
		// The buffer is not cleared here: when the ask is rejected (no
		// document bound yet) the question stays in the box. The app
		// resets the input once the question is actually sent.
		return m, Event{Type: EventAsk, Text: text}
	case "up":
		if m.Input.Buffer == "" && c != nil && len(c.Messages) > 0 {
			if m.Selected == -1 {
				m.Selected = len(c.Messages) - 1
			} else if m.Selected > 0 {
				m.Selected--
			}
			if m.Selected < m.ScrollPos {
				m.ScrollPos = m.Selected
			}
			return m, Event{}
		}
	case "down":
		if m.Input.Buffer == "" && c != nil && len(c.Messages) > 0 {
			if m.Selected >= 0 && m.Selected < len(c.Messages)-1 {
				m.Selected++
			}
			if m.Selected >= m.ScrollPos+m.visibleCount() {
				m.ScrollPos = m.Selected - m.visibleCount() + 1
			}
			return m, Event{}
		}
	case "ctrl+c":
		if m.Selected >= 0 && c != nil && m.Selected < len(c.Messages) {
			sel := c.Messages[m.Selected]
			if !sel.IsFile() {
				safe := strings.ReplaceAll(sel.Text, "\x00", "")
				clipboard.WriteAll(safe)
				m.statusNote = "Copied message to clipboard"
			}
			return m, Event{}
		}
	case "ctrl+o":
		if m.Selected >= 0 && c != nil && m.Selected < len(c.Messages) {
			return m, Event{Type: EventOpenMessage, Index: m.Selected}
		}
	}
	if m.Input.HandleKey(msg) {
		m.Selected = -1
		return m, Event{}
	}
	return m, Event{}
}

// handleCommand processes vim-like ":" commands.
func (m Model) handleCommand(cmd string) (Model, Event) {
	switch {
	case cmd == ":q":
		return m, Event{Type: EventQuit}
	case cmd == ":n":
		return m, Event{Type: EventNewChat}
	case cmd == ":h":
		return m, Event{Type: EventHelp}
	case strings.HasPrefix(cmd, ":u "):
		path := strings.TrimSpace(strings.TrimPrefix(cmd, ":u "))
		if path != "" {
			return m, Event{Type: EventUpload, Text: path}
		}
	}
	m.statusNote = "Unknown command: " + cmd
	return m, Event{}
}

// StatusNote returns and clears the pane's one-shot status note.
func (m *Model) StatusNote() string {
	note := m.statusNote
	m.statusNote = ""
	return note
}
