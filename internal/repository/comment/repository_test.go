package comment_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	comment_repository "inkwell/internal/repository/comment"
	"inkwell/internal/repository/comment/memory"
)

func setupCommentTest(t *testing.T) *memory.CommentRepository {
	t.Helper()
	log := logger.New("test")
	return memory.NewCommentRepository(log)
}

var _ comment_repository.Repository = (*memory.CommentRepository)(nil)

func TestCommentRepository_Create(t *testing.T) {
	repo := setupCommentTest(t)
	repo.SimulatePostExists(1, true)
	repo.SimulatePostExists(999, false)

	tests := []struct {
		name    string
		comment *model.Comment
		wantErr error
	}{
		{
			name: "successful creation",
			comment: &model.Comment{
				PostID:  1,
				Author:  "Alice",
				Title:   "Nice post",
				Content: "Really enjoyed this one.",
			},
		},
		{
			name: "title is optional",
			comment: &model.Comment{
				PostID:  1,
				Author:  "Bob",
				Content: "No title here.",
			},
		},
		{
			name: "post not found",
			comment: &model.Comment{
				PostID:  999,
				Author:  "Carol",
				Content: "Shouting into the void.",
			},
			wantErr: custom_errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Create(context.Background(), tt.comment)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, got)
				assert.NotZero(t, got.ID)
				assert.Equal(t, tt.comment.PostID, got.PostID)
				assert.Equal(t, tt.comment.Author, got.Author)
				assert.Equal(t, tt.comment.Title, got.Title)
				assert.Equal(t, tt.comment.Content, got.Content)
				assert.True(t, got.CreatedAt.Valid)
			}
		})
	}
}

func TestCommentRepository_ListByPost(t *testing.T) {
	repo := setupCommentTest(t)
	repo.SimulatePostExists(1, true)
	repo.SimulatePostExists(2, true)

	first, err := repo.Create(context.Background(), &model.Comment{PostID: 1, Author: "Alice", Content: "first"})
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), &model.Comment{PostID: 1, Author: "Bob", Content: "second"})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &model.Comment{PostID: 2, Author: "Carol", Content: "other post"})
	require.NoError(t, err)

	t.Run("oldest first, scoped to post", func(t *testing.T) {
		comments, err := repo.ListByPost(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, first.ID, comments[0].ID)
		assert.Equal(t, second.ID, comments[1].ID)
	})

	t.Run("post without comments", func(t *testing.T) {
		comments, err := repo.ListByPost(context.Background(), 42)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
