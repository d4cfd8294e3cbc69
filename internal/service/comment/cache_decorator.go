package comment_service

import (
	"context"
	"log/slog"

	"inkwell/internal/logger"
	"inkwell/internal/model"
	"inkwell/internal/ports"
)

// CommentServiceCacheDecorator invalidates the cached post detail whenever a
// comment is added, since the detail embeds the comment list.
type CommentServiceCacheDecorator struct {
	service   Service
	postCache ports.PostCache
	log       *logger.Logger
}

func NewCommentServiceCacheDecorator(service Service, postCache ports.PostCache, log *logger.Logger) Service {
	return &CommentServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
	}
}

func (d *CommentServiceCacheDecorator) CreateComment(ctx context.Context, comment *model.CreateCommentDTO) (*model.Comment, error) {
	created, err := d.service.CreateComment(ctx, comment)
	if err != nil {
		return nil, err
	}

	if cacheErr := d.postCache.DeletePost(ctx, comment.PostID); cacheErr != nil {
		d.log.Warn("Failed to invalidate post cache after comment",
			slog.Int64("post_id", comment.PostID),
			slog.String("error", cacheErr.Error()))
	}

	return created, nil
}

func (d *CommentServiceCacheDecorator) ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error) {
	return d.service.ListByPost(ctx, postID)
}
