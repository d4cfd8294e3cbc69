package post_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	post_repository "inkwell/internal/repository/post"
	"inkwell/internal/repository/post/memory"
)

func setupPostTest(t *testing.T) *memory.PostRepository {
	t.Helper()
	log := logger.New("test")
	return memory.NewPostRepository(log)
}

var _ post_repository.Repository = (*memory.PostRepository)(nil)

func TestPostRepository_Create(t *testing.T) {
	repo := setupPostTest(t)

	got, err := repo.Create(context.Background(), &model.Post{
		Title:   "Test Post",
		Content: "Test content",
	})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Post", got.Title)
	assert.Equal(t, "Test content", got.Content)
	assert.NotZero(t, got.ID)
	assert.True(t, got.CreatedAt.Valid)
}

func TestPostRepository_GetByID(t *testing.T) {
	repo := setupPostTest(t)

	created, err := repo.Create(context.Background(), &model.Post{
		Title:   "Test Post",
		Content: "Test content",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      int64
		want    *model.Post
		wantErr error
	}{
		{
			name: "successful get",
			id:   created.ID,
			want: created,
		},
		{
			name:    "post not found",
			id:      999,
			wantErr: custom_errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.want.ID, got.ID)
				assert.Equal(t, tt.want.Title, got.Title)
				assert.Equal(t, tt.want.Content, got.Content)
			}
		})
	}
}

func TestPostRepository_Update(t *testing.T) {
	repo := setupPostTest(t)

	created, err := repo.Create(context.Background(), &model.Post{
		Title:   "Original Title",
		Content: "Original content",
	})
	require.NoError(t, err)

	newTitle := "Updated Title"
	newContent := "Updated content"

	tests := []struct {
		name    string
		id      int64
		update  *model.UpdatePostDTO
		wantErr error
		check   func(t *testing.T, got *model.Post)
	}{
		{
			name:   "update title only",
			id:     created.ID,
			update: &model.UpdatePostDTO{Title: &newTitle},
			check: func(t *testing.T, got *model.Post) {
				assert.Equal(t, newTitle, got.Title)
				assert.Equal(t, "Original content", got.Content)
			},
		},
		{
			name:   "update content only",
			id:     created.ID,
			update: &model.UpdatePostDTO{Content: &newContent},
			check: func(t *testing.T, got *model.Post) {
				assert.Equal(t, newTitle, got.Title)
				assert.Equal(t, newContent, got.Content)
			},
		},
		{
			name:    "no fields to update",
			id:      created.ID,
			update:  &model.UpdatePostDTO{},
			wantErr: custom_errors.ErrNoUpdateRows,
		},
		{
			name:    "post not found",
			id:      999,
			update:  &model.UpdatePostDTO{Title: &newTitle},
			wantErr: custom_errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Update(context.Background(), tt.id, tt.update)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				tt.check(t, got)
			}
		})
	}
}

func TestPostRepository_List_NewestFirst(t *testing.T) {
	repo := setupPostTest(t)

	first, err := repo.Create(context.Background(), &model.Post{Title: "First", Content: "a"})
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), &model.Post{Title: "Second", Content: "b"})
	require.NoError(t, err)
	third, err := repo.Create(context.Background(), &model.Post{Title: "Third", Content: "c"})
	require.NoError(t, err)

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, third.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
	assert.Equal(t, first.ID, posts[2].ID)
}

func TestPostRepository_ListByTag(t *testing.T) {
	repo := setupPostTest(t)

	tagged, err := repo.Create(context.Background(), &model.Post{Title: "Tagged", Content: "a"})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &model.Post{Title: "Untagged", Content: "b"})
	require.NoError(t, err)

	repo.SimulateTagged(tagged.ID, "golang")

	t.Run("matching tag", func(t *testing.T) {
		posts, err := repo.ListByTag(context.Background(), "golang")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, tagged.ID, posts[0].ID)
	})

	t.Run("tag match is case-sensitive", func(t *testing.T) {
		posts, err := repo.ListByTag(context.Background(), "Golang")
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("unknown tag", func(t *testing.T) {
		posts, err := repo.ListByTag(context.Background(), "missing")
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}
