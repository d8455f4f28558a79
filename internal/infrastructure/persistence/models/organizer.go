package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/organizer"
)

// TagModel is the persistence model for the Tag aggregate root
type TagModel struct {
	OwnedAggregateModel
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_tags_user_name,priority:2"`
	Color string `gorm:"type:varchar(7);not null"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the persistence model to a domain Tag
func (m *TagModel) ToDomain() *organizer.Tag {
	return &organizer.Tag{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Name:               m.Name,
		Color:              m.Color,
	}
}

// FromDomain populates the persistence model from a domain Tag
func (m *TagModel) FromDomain(t *organizer.Tag) {
	m.FromDomainOwnedAggregateRoot(t.OwnedAggregateRoot)
	m.Name = t.Name
	m.Color = t.Color
}

// TagModelFromDomain creates a new persistence model from a domain Tag
func TagModelFromDomain(t *organizer.Tag) *TagModel {
	m := &TagModel{}
	m.FromDomain(t)
	return m
}

// NoteModel is the persistence model for the Note aggregate root
type NoteModel struct {
	OwnedAggregateModel
	Title   string     `gorm:"type:varchar(200);not null"`
	Content string     `gorm:"type:text;not null"`
	Type    string     `gorm:"type:varchar(20);not null;default:'text'"`
	Tags    []TagModel `gorm:"many2many:note_tags;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (NoteModel) TableName() string {
	return "notes"
}

// ToDomain converts the persistence model to a domain Note
func (m *NoteModel) ToDomain() *organizer.Note {
	return &organizer.Note{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Title:              m.Title,
		Content:            m.Content,
		Type:               organizer.NoteType(m.Type),
		TagIDs:             tagIDs(m.Tags),
	}
}

// FromDomain populates the persistence model from a domain Note.
// Tag associations are written separately by the repository.
func (m *NoteModel) FromDomain(n *organizer.Note) {
	m.FromDomainOwnedAggregateRoot(n.OwnedAggregateRoot)
	m.Title = n.Title
	m.Content = n.Content
	m.Type = string(n.Type)
}

// NoteModelFromDomain creates a new persistence model from a domain Note
func NoteModelFromDomain(n *organizer.Note) *NoteModel {
	m := &NoteModel{}
	m.FromDomain(n)
	return m
}

// SubtaskModel is the persistence model for todo subtasks
type SubtaskModel struct {
	BaseModel
	TodoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Completed bool      `gorm:"not null;default:false"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SubtaskModel) TableName() string {
	return "subtasks"
}

// ToDomain converts the persistence model to a domain Subtask
func (m *SubtaskModel) ToDomain() organizer.Subtask {
	return organizer.Subtask{
		BaseEntity: m.BaseModel.ToDomain(),
		TodoID:     m.TodoID,
		Title:      m.Title,
		Completed:  m.Completed,
		Position:   m.Position,
	}
}

// FromDomain populates the persistence model from a domain Subtask
func (m *SubtaskModel) FromDomain(s organizer.Subtask) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.TodoID = s.TodoID
	m.Title = s.Title
	m.Completed = s.Completed
	m.Position = s.Position
}

// TodoModel is the persistence model for the Todo aggregate root
type TodoModel struct {
	OwnedAggregateModel
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	Priority    string         `gorm:"type:varchar(10);not null;default:'media'"`
	Status      string         `gorm:"type:varchar(20);not null;default:'todo'"`
	DueDate     *time.Time     `gorm:"index"`
	Completed   bool           `gorm:"not null;default:false"`
	Subtasks    []SubtaskModel `gorm:"foreignKey:TodoID;references:ID;constraint:OnDelete:CASCADE"`
	Tags        []TagModel     `gorm:"many2many:todo_tags;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TodoModel) TableName() string {
	return "todos"
}

// ToDomain converts the persistence model to a domain Todo
func (m *TodoModel) ToDomain() *organizer.Todo {
	subtasks := make([]organizer.Subtask, len(m.Subtasks))
	for i, s := range m.Subtasks {
		subtasks[i] = s.ToDomain()
	}
	return &organizer.Todo{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		Title:              m.Title,
		Description:        m.Description,
		Priority:           organizer.TodoPriority(m.Priority),
		Status:             organizer.TodoStatus(m.Status),
		DueDate:            m.DueDate,
		Completed:          m.Completed,
		Subtasks:           subtasks,
		TagIDs:             tagIDs(m.Tags),
	}
}

// FromDomain populates the persistence model from a domain Todo.
// Subtask rows and tag associations are written separately by the repository.
func (m *TodoModel) FromDomain(t *organizer.Todo) {
	m.FromDomainOwnedAggregateRoot(t.OwnedAggregateRoot)
	m.Title = t.Title
	m.Description = t.Description
	m.Priority = string(t.Priority)
	m.Status = string(t.Status)
	m.DueDate = t.DueDate
	m.Completed = t.Completed
}

// TodoModelFromDomain creates a new persistence model from a domain Todo
func TodoModelFromDomain(t *organizer.Todo) *TodoModel {
	m := &TodoModel{}
	m.FromDomain(t)
	return m
}

// SubtaskModelsFromDomain converts domain subtasks to persistence models
func SubtaskModelsFromDomain(todoID uuid.UUID, subtasks []organizer.Subtask) []SubtaskModel {
	out := make([]SubtaskModel, len(subtasks))
	for i, s := range subtasks {
		s.TodoID = todoID
		out[i].FromDomain(s)
	}
	return out
}

// tagIDs extracts the ids from loaded tag associations
func tagIDs(tags []TagModel) []uuid.UUID {
	ids := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

// TagRefs builds association stubs for the given tag ids
func TagRefs(ids []uuid.UUID) []TagModel {
	refs := make([]TagModel, len(ids))
	for i, id := range ids {
		refs[i] = TagModel{OwnedAggregateModel: OwnedAggregateModel{AggregateModel: AggregateModel{BaseModel: BaseModel{ID: id}}}}
	}
	return refs
}
