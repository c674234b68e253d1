// app/view.go - top-level layout: navbar, sidebar, content pane, status
// line, and modal overlays.

package app

import (
	"strings"

	"docchat/src/components/common"
	"docchat/src/settings"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
)

const helpContent = `Keys
  tab          switch focus between sidebar and content
  esc          back / unfocus
  up/down      move selection
  enter        confirm / send question
  ctrl+q       quit

Chat
  :u <path>    upload a document into this chat
  :n           start a new chat
  :h           this help
  :q           quit
  ctrl+c       copy the selected message
  ctrl+o       open the selected message in full

Settings
  left/right   change the selected value`

const aboutContent = `docchat is a terminal client for a document question-answering
service. Upload a PDF, DOCX or TXT file, wait for it to be indexed,
and ask questions about its content. Answers cite the document
chunks they were drawn from.

Chats live only for this session; preferences persist across runs.`

func (m Model) View() string {
	if m.quitting {
		return "Goodbye.\n"
	}

	th := common.ThemeFor(m.settings.Current().Theme)

	switch m.modal {
	case modalConfirmDelete:
		return m.confirm.View(th)
	case modalError:
		return m.errorModal.View(th)
	case modalInfo:
		return m.infoModal.View(th)
	}

	navbar := m.renderNavbar(th)
	side := m.sidebar.View(m.session.Chats(), m.session.ActiveID(), m.focus == focusSidebar, th)
	content := m.renderContent(th)
	statusLine := m.renderStatus(th)

	body := lipgloss.JoinHorizontal(lipgloss.Top, side, content)
	return navbar + "\n" + body + "\n" + statusLine
}

func (m Model) renderNavbar(th common.Theme) string {
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	dimStyle := lipgloss.NewStyle().Foreground(th.Dim)

	health := dimStyle.Render("○ backend offline")
	if m.backendUp {
		health = lipgloss.NewStyle().Foreground(th.Accent).Render("● backend connected")
	}

	paneName := map[pane]string{
		paneUpload:   "Upload",
		paneChat:     "Chat",
		paneSettings: "Settings",
		paneAbout:    "About",
	}[m.pane]

	left := nameStyle.Render(" DocChat") + dimStyle.Render("  |  "+paneName)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(health) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + health
}

func (m Model) renderContent(th common.Theme) string {
	st := m.settings.Current()
	contentWidth := m.width - m.sidebar.Width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}
	contentHeight := m.height - 3

	style := lipgloss.NewStyle().Width(contentWidth).Height(contentHeight).Padding(0, 1)

	switch m.pane {
	case paneSettings:
		return style.Render(m.settingsPane.View(st, th))
	case paneAbout:
		title := lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render("About")
		body := lipgloss.NewStyle().Foreground(th.Text).Render(aboutContent)
		return style.Render(title + "\n\n" + body)
	case paneUpload:
		return style.Render(m.renderUploadLanding(st, th, contentWidth))
	default:
		return style.Render(m.chatPane.View(m.session.Active(), st, th, m.loading, spinnerChar(m.spinner)))
	}
}

// renderUploadLanding is the empty-state pane: banner, hint, and a path
// input for the first upload.
func (m Model) renderUploadLanding(st settings.Settings, th common.Theme, width int) string {
	banner := figure.NewFigure("DOC CHAT", "", true).String()
	bannerStyle := lipgloss.NewStyle().Foreground(th.Accent)
	hintStyle := lipgloss.NewStyle().Foreground(th.Dim)

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 1).
		Width(width - 6)
	inputContent := m.chatPane.Input.Rendered(m.chatPane.BlinkOn && !m.loading)
	if m.chatPane.Input.Buffer == "" {
		inputContent = hintStyle.Render("path to a .pdf, .docx or .txt file") + " " + inputContent
	}

	status := "Enter a file path and press enter to upload."
	if m.loading {
		status = spinnerChar(m.spinner) + " " + m.status
	}

	parts := []string{
		bannerStyle.Render(banner),
		hintStyle.Render("Ask questions about your documents."),
		"",
		inputStyle.Render(inputContent),
		hintStyle.Render(status),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderStatus(th common.Theme) string {
	statusStyle := lipgloss.NewStyle().Foreground(th.Dim)
	text := m.status
	if m.loading {
		text = spinnerChar(m.spinner) + " " + text
	}
	hints := "tab: focus  |  :h help  |  ctrl+q quit"
	gap := m.width - lipgloss.Width(text) - lipgloss.Width(hints) - 3
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Render(" " + text + strings.Repeat(" ", gap) + hints)
}
