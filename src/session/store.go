// Package session owns the in-memory chat session state: the ordered list of
// conversation threads and the currently active thread. All mutation is
// expected to happen on the application's update loop; the store performs no
// I/O and none of its operations can fail.
package session

import (
	"strings"
	"time"

	"docchat/src/models"

	"github.com/google/uuid"
)

// maxTitleLen is the cut-off for titles derived from the first user message.
const maxTitleLen = 28

// Store holds every chat of the current session, newest first, plus the
// active chat ID ("" when no chat is active). Chat history is not persisted;
// the store dies with the process.
type Store struct {
	chats    []*models.Chat
	activeID string
	newID    func() string
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{
		newID: func() string { return uuid.NewString() },
	}
}

// Chats returns the chat list, newest first. The slice is shared; callers
// must treat it as read-only.
func (s *Store) Chats() []*models.Chat {
	return s.chats
}

// Len returns the number of chats.
func (s *Store) Len() int {
	return len(s.chats)
}

// ActiveID returns the active chat ID, or "" if none is active.
func (s *Store) ActiveID() string {
	return s.activeID
}

// Active returns the active chat, or nil if none is active or the active ID
// does not resolve to a chat.
func (s *Store) Active() *models.Chat {
	return s.Get(s.activeID)
}

// Get returns the chat with the given ID, or nil.
func (s *Store) Get(id string) *models.Chat {
	for _, c := range s.chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// NewChat creates a chat with a fresh ID and the placeholder title, prepends
// it to the list, makes it active and returns its ID.
func (s *Store) NewChat() string {
	id := s.newID()
	c := &models.Chat{
		ID:        id,
		Title:     models.PlaceholderTitle,
		CreatedAt: time.Now(),
	}
	s.chats = append([]*models.Chat{c}, s.chats...)
	s.activeID = id
	return id
}

// Select makes id the active chat. The ID is accepted unconditionally, like
// the reference UI: selecting an unknown ID just yields an empty transcript
// until the next mutation.
func (s *Store) Select(id string) {
	s.activeID = id
}

// Delete removes the chat with the given ID. If it was active, the active
// pointer is cleared (the view falls back to the upload landing pane rather
// than jumping to another chat). Unknown IDs are a no-op.
func (s *Store) Delete(id string) {
	for i, c := range s.chats {
		if c.ID == id {
			s.chats = append(s.chats[:i], s.chats[i+1:]...)
			if s.activeID == id {
				s.activeID = ""
			}
			return
		}
	}
}

// Append adds msg to the active chat, creating a new chat first when none is
// active. It returns the ID of the chat the message landed in.
func (s *Store) Append(msg models.Message) string {
	id := s.activeID
	if s.Get(id) == nil {
		id = s.NewChat()
	}
	s.AppendTo(id, msg)
	return id
}

// AppendTo adds msg to the chat with the given ID. Results of in-flight
// requests are folded back in through this method so they land in the chat
// that issued them, not whichever chat is active when they arrive. Unknown
// IDs are a no-op.
func (s *Store) AppendTo(id string, msg models.Message) {
	c := s.Get(id)
	if c == nil {
		return
	}
	c.Messages = append(c.Messages, msg)

	// First non-empty user text message names the chat, exactly once.
	if c.HasPlaceholderTitle() && msg.Role == models.RoleUser && !msg.IsFile() {
		if t := deriveTitle(msg.Text); t != "" {
			c.Title = t
		}
	}
}

// BindDocument points the chat at an uploaded document, overwriting any
// previous binding. Unknown IDs are a no-op.
func (s *Store) BindDocument(id, docID string) {
	if c := s.Get(id); c != nil {
		c.DocID = docID
	}
}

// MarkFileIndexed flags the most recently appended file message of the chat
// as indexed. Older unindexed attachments are left untouched; this mirrors
// the reference client, which only ever resolves the newest attachment.
// No-op when the chat does not exist or holds no file message.
func (s *Store) MarkFileIndexed(id string) {
	c := s.Get(id)
	if c == nil {
		return
	}
	if i := c.LastFileMessage(); i >= 0 {
		c.Messages[i].File.Indexed = true
	}
}

// MarkFileIndexFailed flags the most recently appended file message as
// failed, so the card can show "Index failed" instead of spinning forever.
// An attachment that already reached Indexed stays indexed.
func (s *Store) MarkFileIndexFailed(id string) {
	c := s.Get(id)
	if c == nil {
		return
	}
	if i := c.LastFileMessage(); i >= 0 && !c.Messages[i].File.Indexed {
		c.Messages[i].File.IndexFailed = true
	}
}

// deriveTitle collapses whitespace runs, trims, and cuts the result to
// maxTitleLen characters plus an ellipsis. Returns "" for blank input, in
// which case the placeholder title stays.
func deriveTitle(text string) string {
	t := strings.Join(strings.Fields(text), " ")
	if t == "" {
		return ""
	}
	if r := []rune(t); len(r) > maxTitleLen {
		return string(r[:maxTitleLen]) + "..."
	}
	return t
}
