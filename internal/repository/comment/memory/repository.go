package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
)

type CommentRepository struct {
	log        *logger.Logger
	mu         sync.RWMutex
	comments   map[int64]*model.Comment
	postExists map[int64]bool
	nextID     int64
}

func NewCommentRepository(log *logger.Logger) *CommentRepository {
	return &CommentRepository{
		log:        log,
		comments:   make(map[int64]*model.Comment),
		postExists: make(map[int64]bool),
		nextID:     1,
	}
}

func (c *CommentRepository) SimulatePostExists(postID int64, exists bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.postExists[postID] = exists
}

func (c *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if exists, known := c.postExists[comment.PostID]; known && !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	created := &model.Comment{
		ID:        c.nextID,
		PostID:    comment.PostID,
		Author:    comment.Author,
		Title:     comment.Title,
		Content:   comment.Content,
		CreatedAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	c.nextID++
	c.comments[created.ID] = created

	commentCopy := *created
	return &commentCopy, nil
}

func (c *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var comments []*model.Comment
	for _, comment := range c.comments {
		if comment.PostID == postID {
			commentCopy := *comment
			comments = append(comments, &commentCopy)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Time.Equal(comments[j].CreatedAt.Time) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Time.Before(comments[j].CreatedAt.Time)
	})

	return comments, nil
}
