package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	"inkwell/internal/ports"
)

// PostServiceCacheDecorator adds a read-through Redis cache on top of the
// post service. Cache failures are logged and fall through to the underlying
// service; they never surface to callers.
type PostServiceCacheDecorator struct {
	service   Service
	postCache ports.PostCache
	log       *logger.Logger
	metrics   ports.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service Service,
	postCache ports.PostCache,
	log *logger.Logger,
	metrics ports.MetricsProvider,
) Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if cacheErr := d.postCache.SetPost(ctx, result); cacheErr != nil {
		d.log.Warn("Failed to cache created post",
			slog.Int64("post_id", result.Post.ID),
			slog.String("error", cacheErr.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))

	return result, nil
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	start := time.Now()
	cachedPost, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(start))
	if err == nil {
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if errors.Is(err, custom_errors.ErrCacheMiss) {
		d.metrics.IncrementCacheMisses()
	} else {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}

	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setStart := time.Now()
	if cacheErr := d.postCache.SetPost(ctx, post); cacheErr != nil {
		d.log.Warn("Failed to cache post",
			slog.Int64("post_id", id),
			slog.String("error", cacheErr.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(setStart))

	return post, nil
}

func (d *PostServiceCacheDecorator) ListPosts(ctx context.Context) ([]*model.PostWithTags, error) {
	return d.service.ListPosts(ctx)
}

func (d *PostServiceCacheDecorator) ListPostsByTag(ctx context.Context, tagName string) ([]*model.PostWithTags, error) {
	return d.service.ListPostsByTag(ctx, tagName)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) error {
	if err := d.service.UpdatePost(ctx, id, post); err != nil {
		return err
	}

	if cacheErr := d.postCache.DeletePost(ctx, id); cacheErr != nil {
		d.log.Warn("Failed to invalidate post cache after update",
			slog.Int64("post_id", id),
			slog.String("error", cacheErr.Error()))
	}

	return nil
}

func (d *PostServiceCacheDecorator) ListTags(ctx context.Context) ([]*model.Tag, error) {
	return d.service.ListTags(ctx)
}
