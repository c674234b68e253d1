package session

import (
	"strings"
	"testing"

	"docchat/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChat_UniqueIDsPrepended(t *testing.T) {
	s := NewStore()

	ids := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id := s.NewChat()
		assert.False(t, ids[id], "duplicate chat ID %s", id)
		ids[id] = true
		assert.Equal(t, id, s.Chats()[0].ID, "new chat should be first")
		assert.Equal(t, id, s.ActiveID())
	}
	assert.Equal(t, 20, s.Len())
}

func TestNewChat_StartsEmptyWithPlaceholder(t *testing.T) {
	s := NewStore()
	id := s.NewChat()

	c := s.Get(id)
	require.NotNil(t, c)
	assert.Equal(t, models.PlaceholderTitle, c.Title)
	assert.Empty(t, c.DocID)
	assert.Empty(t, c.Messages)
}

func TestAppend_LazyChatCreation(t *testing.T) {
	s := NewStore()

	id := s.Append(models.NewUserText("hello"))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, id, s.ActiveID())

	c := s.Get(id)
	require.NotNil(t, c)
	require.Len(t, c.Messages, 1)
	assert.Equal(t, "hello", c.Messages[0].Text)
}

func TestAppend_TitleDerivedOnce(t *testing.T) {
	s := NewStore()

	id := s.Append(models.NewUserText("  hello   world  "))
	assert.Equal(t, "hello world", s.Get(id).Title)

	s.Append(models.NewUserText("second message"))
	assert.Equal(t, "hello world", s.Get(id).Title, "title must not re-derive")
}

func TestAppend_TitleTruncatedAt28(t *testing.T) {
	s := NewStore()

	long := strings.Repeat("a", 40)
	id := s.Append(models.NewUserText(long))

	title := s.Get(id).Title
	assert.Equal(t, strings.Repeat("a", 28)+"...", title)
	assert.Len(t, title, 31)
}

func TestAppend_BlankTextKeepsPlaceholder(t *testing.T) {
	s := NewStore()

	id := s.Append(models.NewUserText("   \t  "))
	assert.Equal(t, models.PlaceholderTitle, s.Get(id).Title)

	// Next real message still gets to name the chat.
	s.Append(models.NewUserText("actual question"))
	assert.Equal(t, "actual question", s.Get(id).Title)
}

func TestAppend_FileMessageNeverSetsTitle(t *testing.T) {
	s := NewStore()

	id := s.Append(models.NewUserFile(models.FileAttachment{Filename: "report.pdf"}))
	assert.Equal(t, models.PlaceholderTitle, s.Get(id).Title)
}

func TestAppend_BotMessageNeverSetsTitle(t *testing.T) {
	s := NewStore()

	id := s.Append(models.NewBotText("please upload a document first"))
	assert.Equal(t, models.PlaceholderTitle, s.Get(id).Title)
}

func TestAppendTo_UnknownIDIsNoop(t *testing.T) {
	s := NewStore()
	s.NewChat()

	s.AppendTo("missing", models.NewUserText("lost"))
	assert.Empty(t, s.Active().Messages)
}

func TestSelect_Unconditional(t *testing.T) {
	s := NewStore()
	s.NewChat()

	s.Select("does-not-exist")
	assert.Equal(t, "does-not-exist", s.ActiveID())
	assert.Nil(t, s.Active())
}

func TestDelete_ClearsActiveOnlyForActiveChat(t *testing.T) {
	s := NewStore()
	first := s.NewChat()
	second := s.NewChat()

	s.Delete(first)
	assert.Equal(t, second, s.ActiveID(), "deleting another chat keeps the active pointer")
	assert.Equal(t, 1, s.Len())

	s.Delete(second)
	assert.Equal(t, "", s.ActiveID(), "deleting the active chat clears the pointer")
	assert.Equal(t, 0, s.Len())
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	s := NewStore()
	id := s.NewChat()

	s.Delete("missing")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, id, s.ActiveID())
}

func TestBindDocument_Overwrites(t *testing.T) {
	s := NewStore()
	id := s.NewChat()

	s.BindDocument(id, "d1")
	assert.Equal(t, "d1", s.Get(id).DocID)

	s.BindDocument(id, "d2")
	assert.Equal(t, "d2", s.Get(id).DocID)

	s.BindDocument("missing", "d3")
	assert.Equal(t, "d2", s.Get(id).DocID)
}

func TestMarkFileIndexed_OnlyMostRecentFileMessage(t *testing.T) {
	s := NewStore()
	id := s.NewChat()
	s.AppendTo(id, models.NewUserFile(models.FileAttachment{Filename: "old.pdf"}))
	s.AppendTo(id, models.NewUserText("question in between"))
	s.AppendTo(id, models.NewUserFile(models.FileAttachment{Filename: "new.pdf"}))

	s.MarkFileIndexed(id)

	msgs := s.Get(id).Messages
	assert.False(t, msgs[0].File.Indexed, "older attachment must stay unindexed")
	assert.True(t, msgs[2].File.Indexed)
}

func TestMarkFileIndexed_NoFileMessageIsNoop(t *testing.T) {
	s := NewStore()
	id := s.NewChat()
	s.AppendTo(id, models.NewUserText("no files here"))

	s.MarkFileIndexed(id)
	s.MarkFileIndexed("missing")

	assert.Nil(t, s.Get(id).Messages[0].File)
}

func TestMarkFileIndexFailed_DoesNotUnsetIndexed(t *testing.T) {
	s := NewStore()
	id := s.NewChat()
	s.AppendTo(id, models.NewUserFile(models.FileAttachment{Filename: "a.pdf"}))

	s.MarkFileIndexed(id)
	s.MarkFileIndexFailed(id)

	f := s.Get(id).Messages[0].File
	assert.True(t, f.Indexed)
	assert.False(t, f.IndexFailed)
}

func TestMarkFileIndexFailed_SetsFailureOnPendingAttachment(t *testing.T) {
	s := NewStore()
	id := s.NewChat()
	s.AppendTo(id, models.NewUserFile(models.FileAttachment{Filename: "a.pdf"}))

	s.MarkFileIndexFailed(id)

	f := s.Get(id).Messages[0].File
	assert.False(t, f.Indexed)
	assert.True(t, f.IndexFailed)
}

// Mirrors the full upload flow: file message appended unindexed, document
// bound, then the index call resolves and flips exactly that message.
func TestUploadThenIndexFlow(t *testing.T) {
	s := NewStore()

	id := s.Append(models.NewUserFile(models.FileAttachment{
		Filename:    "notes.txt",
		DisplaySize: "1.2 KB",
		DocID:       "d1",
	}))
	s.BindDocument(id, "d1")

	c := s.Get(id)
	require.Len(t, c.Messages, 1)
	assert.False(t, c.Messages[0].File.Indexed)
	assert.Equal(t, "d1", c.DocID)

	s.MarkFileIndexed(id)

	assert.True(t, c.Messages[0].File.Indexed)
	require.Len(t, c.Messages, 1, "no other message may appear or mutate")
}
