package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/organizer"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/organizer/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNoteRepository implements organizer.NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// FindByIDForUser finds a note by ID scoped to its owner
func (r *GormNoteRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*organizer.Note, error) {
	var model models.NoteModel
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all notes for a user with filtering
func (r *GormNoteRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]organizer.Note, error) {
	var noteModels []models.NoteModel
	query := r.db.WithContext(ctx).Model(&models.NoteModel{}).
		Preload("Tags").
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)

	sortField := ValidateSortField(filter.OrderBy, NoteSortFields, "updated_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&noteModels).Error; err != nil {
		return nil, err
	}
	notes := make([]organizer.Note, len(noteModels))
	for i, model := range noteModels {
		notes[i] = *model.ToDomain()
	}
	return notes, nil
}

// Save creates or updates a note and replaces its tag associations
func (r *GormNoteRepository) Save(ctx context.Context, note *organizer.Note) error {
	model := models.NoteModelFromDomain(note)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Save(model).Error; err != nil {
			return err
		}
		return tx.Model(model).Association("Tags").Replace(models.TagRefs(note.TagIDs))
	})
}

// DeleteForUser deletes a note
func (r *GormNoteRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.NoteModel{}, "user_id = ? AND id = ?", userID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForUser counts a user's notes
func (r *GormNoteRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.NoteModel{}).
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormNoteRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
	}
	if noteType, ok := filter.Filters["type"].(string); ok && noteType != "" {
		query = query.Where("type = ?", noteType)
	}
	return query
}

var _ organizer.NoteRepository = (*GormNoteRepository)(nil)
