package tag_repository

import (
	"context"

	"inkwell/internal/model"
)

type Repository interface {
	Create(ctx context.Context, name string) (*model.Tag, error)
	GetByName(ctx context.Context, name string) (*model.Tag, error)
	FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error)
	TagPost(ctx context.Context, postID int64, tagNames []string) error
	ReplacePostTags(ctx context.Context, postID int64, newTags []string) error
	ListAll(ctx context.Context) ([]*model.Tag, error)
	DeleteUnused(ctx context.Context) error
}
