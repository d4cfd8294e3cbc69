package post_repository

import (
	"context"

	"inkwell/internal/model"
)

type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
	ListByTag(ctx context.Context, tagName string) ([]*model.Post, error)
}
