package organizer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/organizer"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*organizer.Tag, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organizer.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]organizer.Tag, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]organizer.Tag), args.Error(1)
}

func (m *MockTagRepository) Save(ctx context.Context, tag *organizer.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTagRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTagRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*organizer.Tag, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organizer.Tag), args.Error(1)
}

func TestTagService_CreateTag(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a tag with default color", func(t *testing.T) {
		repo := new(MockTagRepository)
		service := NewTagService(repo)

		repo.On("FindByName", mock.Anything, userID, "work").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*organizer.Tag")).Return(nil)

		resp, err := service.CreateTag(context.Background(), userID, CreateTagRequest{Name: "work"})

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "work", resp.Name)
		assert.Equal(t, organizer.DefaultTagColor, resp.Color)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		repo := new(MockTagRepository)
		service := NewTagService(repo)

		existing, err := organizer.NewTag(userID, "work", "")
		require.NoError(t, err)
		repo.On("FindByName", mock.Anything, userID, "work").Return(existing, nil)

		_, err = service.CreateTag(context.Background(), userID, CreateTagRequest{Name: "work"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTagService_UpdateTag(t *testing.T) {
	userID := uuid.New()

	t.Run("allows keeping the same name", func(t *testing.T) {
		repo := new(MockTagRepository)
		service := NewTagService(repo)

		tag, err := organizer.NewTag(userID, "work", "#112233")
		require.NoError(t, err)

		repo.On("FindByIDForUser", mock.Anything, userID, tag.ID).Return(tag, nil)
		repo.On("FindByName", mock.Anything, userID, "work").Return(tag, nil)
		repo.On("Save", mock.Anything, tag).Return(nil)

		resp, err := service.UpdateTag(context.Background(), userID, tag.ID, UpdateTagRequest{Name: "work", Color: "#445566"})

		assert.NoError(t, err)
		assert.Equal(t, "#445566", resp.Color)
		repo.AssertExpectations(t)
	})

	t.Run("rejects renaming onto another tag", func(t *testing.T) {
		repo := new(MockTagRepository)
		service := NewTagService(repo)

		tag, err := organizer.NewTag(userID, "work", "")
		require.NoError(t, err)
		other, err := organizer.NewTag(userID, "personal", "")
		require.NoError(t, err)

		repo.On("FindByIDForUser", mock.Anything, userID, tag.ID).Return(tag, nil)
		repo.On("FindByName", mock.Anything, userID, "personal").Return(other, nil)

		_, err = service.UpdateTag(context.Background(), userID, tag.ID, UpdateTagRequest{Name: "personal"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
