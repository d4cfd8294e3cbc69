package comment_service

import (
	"context"
	"errors"
	"log/slog"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	comment_repository "inkwell/internal/repository/comment"
	post_repository "inkwell/internal/repository/post"
)

type CommentService struct {
	commentRepo comment_repository.Repository
	postRepo    post_repository.Repository
	log         *logger.Logger
}

func NewCommentService(
	commentRepo comment_repository.Repository,
	postRepo post_repository.Repository,
	log *logger.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		log:         log,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, comment *model.CreateCommentDTO) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, comment.PostID); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when creating comment", slog.Int64("post_id", comment.PostID))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to check post before creating comment",
			slog.Int64("post_id", comment.PostID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	created, err := s.commentRepo.Create(ctx, &model.Comment{
		PostID:  comment.PostID,
		Author:  comment.Author,
		Title:   comment.Title,
		Content: comment.Content,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to create comment",
			slog.Int64("post_id", comment.PostID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return created, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to list comments",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	return comments, nil
}
