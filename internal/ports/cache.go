package ports

import (
	"context"

	"inkwell/internal/model"
)

// PostCache caches assembled post details keyed by post id.
type PostCache interface {
	GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error)
	SetPost(ctx context.Context, post *model.PostDetailed) error
	DeletePost(ctx context.Context, postID int64) error
}
