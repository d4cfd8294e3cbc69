package post_service

import (
	"context"

	"inkwell/internal/model"
)

type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error)
	ListPosts(ctx context.Context) ([]*model.PostWithTags, error)
	ListPostsByTag(ctx context.Context, tagName string) ([]*model.PostWithTags, error)
	UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) error
	ListTags(ctx context.Context) ([]*model.Tag, error)
}
