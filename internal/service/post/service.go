package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	comment_repository "inkwell/internal/repository/comment"
	post_repository "inkwell/internal/repository/post"
	"inkwell/internal/repository/postgres"
	tag_repository "inkwell/internal/repository/tag"
)

type PostService struct {
	postRepo    post_repository.Repository
	commentRepo comment_repository.Repository
	tagRepo     tag_repository.Repository
	uow         postgres.UnitOfWork
	log         *logger.Logger
}

func NewPostService(
	postRepo post_repository.Repository,
	commentRepo comment_repository.Repository,
	tagRepo tag_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		tagRepo:     tagRepo,
		uow:         uow,
		log:         log,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (result *model.PostDetailed, err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !strings.Contains(rollbackErr.Error(), "tx is closed") {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()
	tagRepo := tx.TagRepository()

	newPost := &model.Post{
		Title:   post.Title,
		Content: post.Content,
	}
	createdPost, err := postRepo.Create(ctx, newPost)
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	tagNames := dedupeTagNames(post.Tags)
	createdTags := make([]*model.Tag, 0, len(tagNames))
	if len(tagNames) > 0 {
		for _, name := range tagNames {
			tag, _, tagErr := getOrCreateTag(ctx, tagRepo, name)
			if tagErr != nil {
				s.log.Error("Failed to get or create tag", slog.String("name", name), slog.String("error", tagErr.Error()))
				return nil, tagErr
			}
			createdTags = append(createdTags, tag)
		}

		if tagErr := tagRepo.TagPost(ctx, createdPost.ID, tagNames); tagErr != nil {
			s.log.Error("Failed to add tags to post",
				slog.Int64("post_id", createdPost.ID),
				slog.String("error", tagErr.Error()))
			return nil, tagErr
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return &model.PostDetailed{
		Post:     createdPost,
		Tags:     createdTags,
		Comments: []*model.Comment{},
	}, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		default:
			s.log.Error("Failed to get post by id",
				slog.String("error", err.Error()),
				slog.Int64("id", id))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	tags, err := s.tagRepo.FindByPost(ctx, id)
	if err != nil {
		s.log.Error("Failed to find tags by post",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if tags == nil {
		tags = []*model.Tag{}
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		s.log.Error("Failed to list comments by post",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if comments == nil {
		comments = []*model.Comment{}
	}

	return &model.PostDetailed{
		Post:     post,
		Tags:     tags,
		Comments: comments,
	}, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*model.PostWithTags, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return s.withTags(ctx, posts)
}

func (s *PostService) ListPostsByTag(ctx context.Context, tagName string) ([]*model.PostWithTags, error) {
	posts, err := s.postRepo.ListByTag(ctx, tagName)
	if err != nil {
		s.log.Error("Failed to list posts by tag", slog.String("tag", tagName), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return s.withTags(ctx, posts)
}

func (s *PostService) withTags(ctx context.Context, posts []*model.Post) ([]*model.PostWithTags, error) {
	result := make([]*model.PostWithTags, 0, len(posts))
	for _, post := range posts {
		tags, err := s.tagRepo.FindByPost(ctx, post.ID)
		if err != nil {
			s.log.Error("Failed to find tags by post", slog.String("error", err.Error()), slog.Int64("id", post.ID))
			return nil, custom_errors.ErrDatabaseQuery
		}
		if tags == nil {
			tags = []*model.Tag{}
		}
		result = append(result, &model.PostWithTags{Post: post, Tags: tags})
	}
	return result, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !strings.Contains(rollbackErr.Error(), "tx is closed") {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()
	tagRepo := tx.TagRepository()

	_, err = postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for update", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}

	_, err = postRepo.Update(ctx, id, post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to update post", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}

	// nil means "leave tags alone"; an empty slice clears them.
	tagNames := dedupeTagNames(post.Tags)
	if tagNames != nil {
		for _, name := range tagNames {
			if _, _, tagErr := getOrCreateTag(ctx, tagRepo, name); tagErr != nil {
				s.log.Error("Failed to get or create tag", slog.String("name", name), slog.String("error", tagErr.Error()))
				return tagErr
			}
		}
		if err = tagRepo.ReplacePostTags(ctx, id, tagNames); err != nil {
			s.log.Error("Failed to replace post tags", slog.Int64("id", id), slog.String("error", err.Error()))
			return err
		}
		if err = tagRepo.DeleteUnused(ctx); err != nil {
			s.log.Error("Failed to delete unused tags", slog.String("error", err.Error()))
			return err
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return nil
}

func (s *PostService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.tagRepo.ListAll(ctx)
	if err != nil {
		s.log.Error("Failed to list tags", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if tags == nil {
		tags = []*model.Tag{}
	}
	return tags, nil
}

// dedupeTagNames keeps the first occurrence of each name, preserving order.
// A nil input stays nil so UpdatePost can tell "leave tags alone" apart from
// "clear them".
func dedupeTagNames(names []string) []string {
	if names == nil {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// getOrCreateTag inserts the tag if absent and reports whether a new row was
// created, so a lost insert race is indistinguishable from the tag having
// existed all along.
func getOrCreateTag(ctx context.Context, tagRepo tag_repository.Repository, name string) (*model.Tag, bool, error) {
	tag, err := tagRepo.Create(ctx, name)
	if err == nil {
		return tag, true, nil
	}
	if !errors.Is(err, custom_errors.ErrTagAlreadyExists) {
		return nil, false, err
	}
	existing, err := tagRepo.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
