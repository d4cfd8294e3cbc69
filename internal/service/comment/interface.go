package comment_service

import (
	"context"

	"inkwell/internal/model"
)

type Service interface {
	CreateComment(ctx context.Context, comment *model.CreateCommentDTO) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error)
}
