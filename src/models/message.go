// message.go - Defines the Message struct for representing chat messages across the application.
// A message is either plain text or a file attachment; bot answers may carry sources.

package models

import "time"

// Message roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Source is one retrieved document chunk cited by an answer.
type Source struct {
	Rank       int     `json:"rank"`
	ChunkIndex int     `json:"chunk_index"`
	Distance   float64 `json:"distance"`
	Text       string  `json:"text"`
}

// FileAttachment describes an uploaded document shown as a chat message.
// Indexed flips false->true exactly once, when the backend finishes
// preparing the document. IndexFailed is set instead when indexing fails.
type FileAttachment struct {
	Filename    string `json:"filename"`
	DisplaySize string `json:"size"`
	DocID       string `json:"doc_id"`
	Indexed     bool   `json:"indexed"`
	IndexFailed bool   `json:"index_failed,omitempty"`
}

// Message represents a chat message. Text messages leave File nil;
// file messages leave Text empty.
type Message struct {
	Role    string          `json:"role"`
	Text    string          `json:"text,omitempty"`
	File    *FileAttachment `json:"file,omitempty"`
	Sources []Source        `json:"sources,omitempty"`
	SentAt  time.Time       `json:"sent_at"`
}

// IsFile reports whether the message is a file attachment.
func (m Message) IsFile() bool {
	return m.File != nil
}

// NewUserText builds a user text message.
func NewUserText(text string) Message {
	return Message{Role: RoleUser, Text: text, SentAt: time.Now()}
}

// NewUserFile builds a user message carrying a file attachment.
func NewUserFile(att FileAttachment) Message {
	return Message{Role: RoleUser, File: &att, SentAt: time.Now()}
}

// NewBotText builds a plain bot message.
func NewBotText(text string) Message {
	return Message{Role: RoleBot, Text: text, SentAt: time.Now()}
}

// NewBotAnswer builds a bot message with citation sources.
func NewBotAnswer(text string, sources []Source) Message {
	return Message{Role: RoleBot, Text: text, Sources: sources, SentAt: time.Now()}
}
