// components/chat/view.go - transcript rendering: bubbles, file cards,
// sources, and the input box.

package chat

import (
	"fmt"
	"strings"

	"docchat/src/components/common"
	"docchat/src/models"
	"docchat/src/settings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"
)

// collapseThreshold is the rune count past which autoSummarize folds a bot
// answer in the transcript. The full text stays reachable via ctrl+o.
const collapseThreshold = 600

// View renders the transcript and input row for the given chat.
func (m Model) View(c *models.Chat, st settings.Settings, th common.Theme, loading bool, spinner string) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	dimStyle := lipgloss.NewStyle().Foreground(th.Dim)

	title := models.PlaceholderTitle
	docNote := "no document bound"
	count := 0
	if c != nil {
		title = c.Title
		count = len(c.Messages)
		if c.DocID != "" {
			docNote = "doc " + c.DocID
		}
	}
	header := titleStyle.Render(title) + dimStyle.Render(fmt.Sprintf("  |  %s  |  %d messages", docNote, count))

	transcript := m.renderMessages(c, st, th)

	inputLabel := "Ask a question..."
	if loading {
		inputLabel = spinner + " waiting for answer..."
	}
	input := m.renderInput(inputLabel, th, st.CompactMode, loading)

	bodyHeight := m.Height - lipgloss.Height(header) - lipgloss.Height(input) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.NewStyle().Height(bodyHeight).Width(m.Width).Render(transcript)

	return header + "\n" + body + "\n" + input
}

func (m Model) renderMessages(c *models.Chat, st settings.Settings, th common.Theme) string {
	if c == nil || len(c.Messages) == 0 {
		return lipgloss.NewStyle().Foreground(th.Dim).Padding(1, 2).
			Render("No messages yet. Upload a document with :u <path>, then ask away.")
	}

	vpad := 1
	if st.CompactMode {
		vpad = 0
	}

	start := m.ScrollPos
	if start < 0 {
		start = 0
	}
	end := start + m.visibleCount()
	if end > len(c.Messages) {
		end = len(c.Messages)
	}

	var parts []string
	if start > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(th.Dim).Render(
			fmt.Sprintf("  ... %d earlier messages", start)))
	}
	for i := start; i < end; i++ {
		msg := c.Messages[i]
		selected := i == m.Selected
		if msg.IsFile() {
			parts = append(parts, m.renderFileCard(*msg.File, th, selected, vpad))
			continue
		}
		parts = append(parts, m.renderBubble(msg, st, th, selected, vpad))
	}
	if end < len(c.Messages) {
		parts = append(parts, lipgloss.NewStyle().Foreground(th.Dim).Render(
			fmt.Sprintf("  ... %d later messages", len(c.Messages)-end)))
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderBubble(msg models.Message, st settings.Settings, th common.Theme, selected bool, vpad int) string {
	bubbleWidth := m.Width / 2
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	text := msg.Text
	if st.AutoSummarize && msg.Role == models.RoleBot {
		if r := []rune(text); len(r) > collapseThreshold {
			text = string(r[:collapseThreshold]) + "... (ctrl+o for full answer)"
		}
	}
	wrapped := wordwrap.WrapString(text, uint(bubbleWidth-8))

	label := "You"
	align := lipgloss.Right
	bg := th.UserBubbleBg
	if msg.Role == models.RoleBot {
		label = "Bot"
		align = lipgloss.Left
		bg = th.BotBubbleBg
	}
	if st.ShowTimestamps && !msg.SentAt.IsZero() {
		label += " " + msg.SentAt.Format("15:04")
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	if selected {
		labelStyle = labelStyle.Underline(true)
	}
	bubbleStyle := lipgloss.NewStyle().
		Background(bg).
		Foreground(th.Text).
		Padding(vpad, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border)
	if selected {
		bubbleStyle = bubbleStyle.BorderForeground(th.Accent)
	}

	bubble := bubbleStyle.Width(bubbleWidth).Render(wrapped)
	if msg.Role == models.RoleBot && st.ShowSources && len(msg.Sources) > 0 {
		bubble += "\n" + m.renderSources(msg.Sources, th, bubbleWidth)
	}

	block := labelStyle.Render(label) + "\n" + bubble
	return lipgloss.PlaceHorizontal(m.Width, align, block)
}

func (m Model) renderSources(sources []models.Source, th common.Theme, width int) string {
	style := lipgloss.NewStyle().Foreground(th.Dim).Width(width)
	var b strings.Builder
	b.WriteString("Sources:")
	for _, s := range sources {
		preview := s.Text
		if r := []rune(preview); len(r) > 80 {
			preview = string(r[:80]) + "..."
		}
		preview = strings.ReplaceAll(preview, "\n", " ")
		b.WriteString(fmt.Sprintf("\n  [%d] chunk %d (distance %.2f): %s", s.Rank, s.ChunkIndex, s.Distance, preview))
	}
	return style.Render(b.String())
}

func (m Model) renderFileCard(f models.FileAttachment, th common.Theme, selected bool, vpad int) string {
	status := "Indexing..."
	statusColor := th.Dim
	switch {
	case f.Indexed:
		status = "Indexed"
		statusColor = th.Accent
	case f.IndexFailed:
		status = "Index failed"
		statusColor = th.Danger
	}

	border := th.Border
	if selected {
		border = th.Accent
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(vpad, 2)

	name := lipgloss.NewStyle().Bold(true).Foreground(th.Text).Render("📄 " + f.Filename)
	meta := lipgloss.NewStyle().Foreground(th.Dim).Render(f.DisplaySize)
	state := lipgloss.NewStyle().Foreground(statusColor).Render(status)
	card := cardStyle.Render(name + "\n" + meta + "  " + state)
	return lipgloss.PlaceHorizontal(m.Width, lipgloss.Right, card)
}

func (m Model) renderInput(placeholder string, th common.Theme, compact, loading bool) string {
	vpad := 1
	if compact {
		vpad = 0
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(vpad, 2).
		Width(m.Width - 2)

	content := m.Input.Rendered(m.BlinkOn && !loading)
	if m.Input.Buffer == "" {
		content = lipgloss.NewStyle().Foreground(th.Dim).Render(placeholder) + " " + content
	}
	return style.Render(content)
}
