package models

import "time"

// PlaceholderTitle is the title every new chat starts with. It is replaced
// at most once, by the first non-empty user text message in the chat.
const PlaceholderTitle = "New Chat"

// Chat represents one conversation thread, bound to at most one uploaded
// document. Messages are append-only in arrival order.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DocID     string    `json:"doc_id,omitempty"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// HasPlaceholderTitle reports whether the chat title has not yet been
// derived from a user message.
func (c *Chat) HasPlaceholderTitle() bool {
	return c.Title == "" || c.Title == PlaceholderTitle
}

// LastFileMessage returns the index of the most recently appended file
// message, or -1 if the chat has none.
func (c *Chat) LastFileMessage() int {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].IsFile() {
			return i
		}
	}
	return -1
}
