package organizer

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
)

// NoteType represents the kind of content a note holds
type NoteType string

const (
	NoteTypeText    NoteType = "text"
	NoteTypeList    NoteType = "list"
	NoteTypeCode    NoteType = "code"
	NoteTypeImage   NoteType = "image"
	NoteTypeDrawing NoteType = "drawing"
	NoteTypeVoice   NoteType = "voice"
)

// IsValid checks if the type is a recognised NoteType
func (t NoteType) IsValid() bool {
	switch t {
	case NoteTypeText, NoteTypeList, NoteTypeCode, NoteTypeImage, NoteTypeDrawing, NoteTypeVoice:
		return true
	}
	return false
}

// Note represents a note aggregate root
type Note struct {
	shared.OwnedAggregateRoot
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Type    NoteType    `json:"type"`
	TagIDs  []uuid.UUID `json:"tag_ids"`
}

// NewNote creates a new note. An empty type defaults to text.
func NewNote(userID uuid.UUID, title, content string, noteType NoteType) (*Note, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Content cannot be empty")
	}
	if noteType == "" {
		noteType = NoteTypeText
	}
	if !noteType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTE_TYPE", "Note type is not valid")
	}
	return &Note{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Title:              title,
		Content:            content,
		Type:               noteType,
	}, nil
}

// Update replaces the note's title and content
func (n *Note) Update(title, content string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if content == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Content cannot be empty")
	}
	n.Title = title
	n.Content = content
	n.UpdatedAt = time.Now()
	return nil
}

// SetTags replaces the tag associations of the note
func (n *Note) SetTags(tagIDs []uuid.UUID) {
	n.TagIDs = tagIDs
	n.UpdatedAt = time.Now()
}
