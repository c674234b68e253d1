// Package app wires the panes, the stores and the API client into one
// bubbletea program. All session mutation happens here, on the update loop;
// network calls run as commands and fold their results back in as typed
// messages tagged with the chat ID captured when the call was dispatched.
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docchat/src/api"
	"docchat/src/components/chat"
	"docchat/src/components/modals"
	"docchat/src/components/settingsform"
	"docchat/src/components/sidebar"
	"docchat/src/models"
	"docchat/src/session"
	"docchat/src/settings"

	tea "github.com/charmbracelet/bubbletea"
)

const uploadFirstPrompt = "Please upload a document first, then ask your question."

// pane identifies what the content area shows.
type pane int

const (
	paneUpload pane = iota
	paneChat
	paneSettings
	paneAbout
)

// focusArea identifies which side of the layout receives keys.
type focusArea int

const (
	focusSidebar focusArea = iota
	focusContent
)

// modalKind identifies the overlay currently blocking input, if any.
type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalError
	modalInfo
)

// Async result messages. Each carries the chat ID captured at dispatch so
// late responses land in the chat that issued them.
type uploadResultMsg struct {
	chatID      string
	filename    string
	displaySize string
	result      api.UploadResult
	err         error
}

type indexResultMsg struct {
	chatID string
	docID  string
	err    error
}

type askResultMsg struct {
	chatID string
	result api.AskResult
	err    error
}

type healthResultMsg struct{ err error }

type spinnerTickMsg struct{}

type blinkTickMsg struct{}

// Model is the root application model.
type Model struct {
	logger   *slog.Logger
	session  *session.Store
	settings *settings.Store
	client   *api.Client

	sidebar      sidebar.Model
	chatPane     chat.Model
	settingsPane settingsform.Model

	pane   pane
	focus  focusArea
	width  int
	height int

	loading   bool
	spinner   int
	status    string
	backendUp bool

	modal         modalKind
	confirm       modals.ConfirmationModal
	pendingDelete string
	errorModal    modals.ErrorModal
	infoModal     modals.InformationModal

	quitting bool
}

// New builds the root model from its collaborators.
func New(sess *session.Store, st *settings.Store, client *api.Client, logger *slog.Logger) Model {
	return Model{
		logger:       logger,
		session:      sess,
		settings:     st,
		client:       client,
		sidebar:      sidebar.New(),
		chatPane:     chat.New(),
		settingsPane: settingsform.New(),
		pane:         paneUpload,
		focus:        focusContent,
		width:        80,
		height:       24,
		status:       "Ready",
		backendUp:    false,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.healthCmd(), spinnerTick(), blinkTick())
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func blinkTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return blinkTickMsg{}
	})
}

func spinnerChar(index int) string {
	spinnerChars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinnerChars[index%len(spinnerChars)]
}

// =====================================================================================
// Commands
// =====================================================================================

func (m Model) healthCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return healthResultMsg{err: client.Health(context.Background())}
	}
}

func (m Model) uploadCmd(chatID, path, filename, displaySize string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadResultMsg{chatID: chatID, filename: filename, displaySize: displaySize, err: err}
		}
		defer f.Close()
		result, err := client.Upload(context.Background(), filename, f)
		return uploadResultMsg{chatID: chatID, filename: filename, displaySize: displaySize, result: result, err: err}
	}
}

func (m Model) indexCmd(chatID, docID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return indexResultMsg{chatID: chatID, docID: docID, err: client.Index(context.Background(), docID)}
	}
}

func (m Model) askCmd(chatID, docID, question string, topK int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Ask(context.Background(), docID, question, topK)
		return askResultMsg{chatID: chatID, result: result, err: err}
	}
}

// =====================================================================================
// Update
// =====================================================================================

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sidebar.Height = m.height - 3
		m.chatPane.Width = m.width - m.sidebar.Width - 2
		m.chatPane.Height = m.height - 3
		return m, nil

	case spinnerTickMsg:
		if m.loading {
			m.spinner = (m.spinner + 1) % 10
			return m, spinnerTick()
		}
		return m, nil

	case blinkTickMsg:
		m.chatPane.BlinkOn = !m.chatPane.BlinkOn
		return m, blinkTick()

	case healthResultMsg:
		m.backendUp = msg.err == nil
		if msg.err != nil {
			m.logger.Warn("backend health probe failed", "error", msg.err)
		}
		return m, nil

	case uploadResultMsg:
		return m.onUploadResult(msg)

	case indexResultMsg:
		return m.onIndexResult(msg)

	case askResultMsg:
		return m.onAskResult(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+q" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.modal != modalNone {
		return m.onModalKey(msg)
	}

	switch msg.String() {
	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusContent
		} else {
			m.focus = focusSidebar
		}
		return m, nil
	case "esc":
		switch {
		case m.focus == focusSidebar:
			m.focus = focusContent
		case m.pane == paneSettings || m.pane == paneAbout:
			m.pane = m.contentPane()
		default:
			m.focus = focusSidebar
		}
		return m, nil
	}

	if m.focus == focusSidebar {
		var ev sidebar.Event
		m.sidebar, ev = m.sidebar.Update(msg, m.session.Chats())
		return m.onSidebarEvent(ev)
	}

	switch m.pane {
	case paneSettings:
		var patch settings.Patch
		var reset bool
		m.settingsPane, patch, reset = m.settingsPane.Update(msg, m.settings.Current())
		var err error
		if reset {
			err = m.settings.Reset()
		} else if patch != (settings.Patch{}) {
			err = m.settings.Update(patch)
		}
		if err != nil {
			m.logger.Error("failed to persist settings", "error", err)
			m.status = "Settings not saved: " + err.Error()
		}
		return m, nil
	case paneAbout:
		return m, nil
	case paneUpload:
		return m.onUploadPaneKey(msg)
	default:
		var ev chat.Event
		m.chatPane, ev = m.chatPane.Update(msg, m.session.Active(), m.loading)
		if note := m.chatPane.StatusNote(); note != "" {
			m.status = note
		}
		return m.onChatEvent(ev)
	}
}

func (m Model) onModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "left", "right", "up", "down":
			m.confirm.Toggle()
		case "enter":
			m.modal = modalNone
			if m.confirm.Confirmed() {
				wasActive := m.session.ActiveID() == m.pendingDelete
				m.session.Delete(m.pendingDelete)
				m.sidebar = m.sidebar.ClampIndex(m.session.Chats())
				if wasActive {
					m.pane = paneUpload
				}
				m.status = "Chat deleted"
			}
			m.pendingDelete = ""
		case "esc":
			m.modal = modalNone
			m.pendingDelete = ""
		}
	case modalError, modalInfo:
		switch msg.String() {
		case "esc", "enter", "ctrl+c":
			m.modal = modalNone
		}
	}
	return m, nil
}

func (m Model) onSidebarEvent(ev sidebar.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case sidebar.EventSelectChat:
		if ev.ChatID != "" {
			m.session.Select(ev.ChatID)
			m.chatPane = m.chatPane.PinToEnd(m.session.Active())
		}
		m.pane = m.contentPane()
		m.focus = focusContent
	case sidebar.EventNewChat:
		m.session.NewChat()
		m.pane = paneUpload
		m.focus = focusContent
		m.chatPane.Input.Reset()
	case sidebar.EventDeleteChat:
		m.pendingDelete = ev.ChatID
		m.confirm = modals.ConfirmationModal{
			Title:    "Delete Chat",
			Prompt:   "Delete this chat and its messages?",
			Selected: 1, // default No
			Width:    m.width,
			Height:   m.height,
		}
		m.modal = modalConfirmDelete
	case sidebar.EventOpenSettings:
		m.pane = paneSettings
		m.focus = focusContent
	case sidebar.EventOpenAbout:
		m.pane = paneAbout
		m.focus = focusContent
	}
	return m, nil
}

// contentPane picks the chat pane or the upload landing, depending on
// whether the active chat has anything to show.
func (m Model) contentPane() pane {
	if c := m.session.Active(); c != nil && len(c.Messages) > 0 {
		return paneChat
	}
	return paneUpload
}

func (m Model) onUploadPaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		path := strings.TrimSpace(m.chatPane.Input.Buffer)
		if path == "" || m.loading {
			return m, nil
		}
		m.chatPane.Input.Reset()
		return m.startUpload(path)
	}
	m.chatPane.Input.HandleKey(msg)
	return m, nil
}

func (m Model) onChatEvent(ev chat.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case chat.EventQuit:
		m.quitting = true
		return m, tea.Quit
	case chat.EventNewChat:
		m.session.NewChat()
		m.pane = paneUpload
	case chat.EventHelp:
		m.infoModal = modals.InformationModal{
			Title:   "Help",
			Content: helpContent,
			Width:   m.width,
			Height:  m.height,
		}
		m.modal = modalInfo
	case chat.EventOpenMessage:
		if c := m.session.Active(); c != nil && ev.Index >= 0 && ev.Index < len(c.Messages) {
			sel := c.Messages[ev.Index]
			if !sel.IsFile() {
				m.infoModal = modals.InformationModal{
					Title:   "Message",
					Content: sel.Text,
					Width:   m.width,
					Height:  m.height,
				}
				m.modal = modalInfo
			}
		}
	case chat.EventUpload:
		return m.startUpload(ev.Text)
	case chat.EventAsk:
		return m.startAsk(ev.Text)
	}
	return m, nil
}

func (m Model) startUpload(path string) (tea.Model, tea.Cmd) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		m.errorModal = modals.ErrorModal{
			Message: "Cannot read file: " + path,
			Width:   m.width,
			Height:  m.height,
		}
		m.modal = modalError
		return m, nil
	}

	// Make sure a chat exists before dispatch so the in-flight result has a
	// stable target even if the user switches chats meanwhile.
	chatID := m.session.ActiveID()
	if m.session.Get(chatID) == nil {
		chatID = m.session.NewChat()
	}

	filename := filepath.Base(path)
	m.loading = true
	m.status = "Uploading " + filename + "..."
	m.logger.Info("uploading document", "file", filename, "chat", chatID)
	return m, tea.Batch(
		m.uploadCmd(chatID, path, filename, models.FormatFileSize(info.Size())),
		spinnerTick(),
	)
}

func (m Model) startAsk(text string) (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(text)
	if question == "" {
		return m, nil
	}

	// Document check comes first: the question stays in the input box when
	// it fails, like the reference client.
	active := m.session.Active()
	docID := ""
	if active != nil {
		docID = active.DocID
	}
	if docID == "" {
		m.session.Append(models.NewBotText(uploadFirstPrompt))
		m.pane = paneChat
		m.chatPane = m.chatPane.PinToEnd(m.session.Active())
		return m, nil
	}

	chatID := m.session.Append(models.NewUserText(question))
	m.chatPane.Input.Reset()
	m.loading = true
	m.status = "Waiting for answer..."
	if m.settings.Current().AutoScroll {
		m.chatPane = m.chatPane.PinToEnd(m.session.Active())
	}
	return m, tea.Batch(
		m.askCmd(chatID, docID, question, m.settings.Current().TopK),
		spinnerTick(),
	)
}

func (m Model) onUploadResult(msg uploadResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loading = false
		m.status = "Upload failed"
		m.logger.Error("upload failed", "file", msg.filename, "error", msg.err)
		m.session.AppendTo(msg.chatID, models.NewBotText("Upload failed: "+msg.err.Error()))
		m.afterMutation(msg.chatID)
		return m, nil
	}

	m.session.BindDocument(msg.chatID, msg.result.DocID)
	m.session.AppendTo(msg.chatID, models.NewUserFile(models.FileAttachment{
		Filename:    msg.filename,
		DisplaySize: msg.displaySize,
		DocID:       msg.result.DocID,
	}))
	m.status = "Indexing " + msg.filename + "..."
	m.logger.Info("document uploaded", "file", msg.filename, "doc", msg.result.DocID)
	m.afterMutation(msg.chatID)
	if m.session.ActiveID() == msg.chatID {
		m.pane = paneChat
	}
	// The chain stays sequential: indexing starts only after the upload
	// resolved and the attachment message exists.
	return m, m.indexCmd(msg.chatID, msg.result.DocID)
}

func (m Model) onIndexResult(msg indexResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.session.MarkFileIndexFailed(msg.chatID)
		m.status = "Indexing failed"
		m.logger.Warn("indexing failed", "doc", msg.docID, "error", msg.err)
	} else {
		m.session.MarkFileIndexed(msg.chatID)
		m.status = "Document indexed"
		m.logger.Info("document indexed", "doc", msg.docID)
	}
	m.afterMutation(msg.chatID)
	return m, nil
}

func (m Model) onAskResult(msg askResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		var be *api.BackendError
		if errors.As(msg.err, &be) {
			m.session.AppendTo(msg.chatID, models.NewBotText("Error: "+be.Message))
		} else {
			m.session.AppendTo(msg.chatID, models.NewBotText("Ask failed. Check that the backend is reachable."))
		}
		m.status = "Ask failed"
		m.logger.Error("ask failed", "chat", msg.chatID, "error", msg.err)
	} else {
		m.session.AppendTo(msg.chatID, models.NewBotAnswer(msg.result.Answer, msg.result.Sources))
		m.status = "Ready"
	}
	m.afterMutation(msg.chatID)
	return m, nil
}

// afterMutation re-pins the transcript when the mutated chat is the one on
// screen and auto-scroll is enabled.
func (m *Model) afterMutation(chatID string) {
	if m.session.ActiveID() == chatID && m.settings.Current().AutoScroll {
		m.chatPane = m.chatPane.PinToEnd(m.session.Active())
	}
}
