// components/chat/input.go - the input row shared by the chat and upload
// panes: a plain buffer with a cursor, clipboard paste, and ":" commands.

package chat

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Input is a single-line text buffer with a cursor.
type Input struct {
	Buffer string
	Cursor int
}

// HandleKey mutates the buffer for editing keys and reports whether the key
// was consumed.
func (in *Input) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "left":
		if in.Cursor > 0 {
			in.Cursor--
		}
		return true
	case "right":
		if in.Cursor < len(in.Buffer) {
			in.Cursor++
		}
		return true
	case "home":
		in.Cursor = 0
		return true
	case "end":
		in.Cursor = len(in.Buffer)
		return true
	case "backspace":
		if in.Cursor > 0 && len(in.Buffer) > 0 {
			in.Buffer = in.Buffer[:in.Cursor-1] + in.Buffer[in.Cursor:]
			in.Cursor--
		}
		return true
	case "delete":
		if in.Cursor < len(in.Buffer) && len(in.Buffer) > 0 {
			in.Buffer = in.Buffer[:in.Cursor] + in.Buffer[in.Cursor+1:]
		}
		return true
	case "ctrl+v":
		paste, err := clipboard.ReadAll()
		if err == nil && paste != "" {
			paste = strings.ReplaceAll(paste, "\n", " ")
			in.Buffer = in.Buffer[:in.Cursor] + paste + in.Buffer[in.Cursor:]
			in.Cursor += len(paste)
		}
		return true
	case "ctrl+x":
		if in.Buffer != "" {
			safe := strings.ReplaceAll(in.Buffer, "\x00", "")
			clipboard.WriteAll(safe)
			in.Reset()
		}
		return true
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		s := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			s = " "
		}
		in.Buffer = in.Buffer[:in.Cursor] + s + in.Buffer[in.Cursor:]
		in.Cursor += len(s)
		return true
	}
	return false
}

// Reset clears the buffer.
func (in *Input) Reset() {
	in.Buffer = ""
	in.Cursor = 0
}

// Rendered returns the buffer with the cursor marker inserted.
func (in Input) Rendered(blinkOn bool) string {
	cursor := "|"
	if !blinkOn {
		cursor = " "
	}
	if in.Cursor >= 0 && in.Cursor <= len(in.Buffer) {
		return in.Buffer[:in.Cursor] + cursor + in.Buffer[in.Cursor:]
	}
	return in.Buffer + cursor
}
