package comment_repository_postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	"inkwell/internal/ports"
	"inkwell/internal/repository/postgres/db"
)

type CommentRepository struct {
	log     *logger.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewCommentRepository(db db.PgDB, log *logger.Logger, metrics ports.MetricsProvider) *CommentRepository {
	return &CommentRepository{db: db, log: log, metrics: metrics}
}

func (c *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	start := time.Now()

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"post_id":    comment.PostID,
		"author":     comment.Author,
		"title":      comment.Title,
		"content":    comment.Content,
		"created_at": now,
	}

	query := `
		INSERT INTO comments (post_id, author, title, content, created_at)
		VALUES (@post_id, @author, @title, @content, @created_at)
		RETURNING id, post_id, author, title, content, created_at`

	var createdComment model.Comment
	err := c.db.QueryRow(ctx, query, args).Scan(
		&createdComment.ID,
		&createdComment.PostID,
		&createdComment.Author,
		&createdComment.Title,
		&createdComment.Content,
		&createdComment.CreatedAt,
	)

	if err != nil {
		c.metrics.IncrementDatabaseQueries("comment_create", false)
		c.metrics.RecordDatabaseQueryDuration("comment_create", time.Since(start))
		// 23503: the referenced post does not exist
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23503" {
			c.log.Debug("Post not found when creating comment", slog.Int64("post_id", comment.PostID))
			return nil, custom_errors.ErrPostNotFound
		}
		c.log.Error("Error creating comment", slog.Int64("post_id", comment.PostID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("comment_create", true)
	c.metrics.RecordDatabaseQueryDuration("comment_create", time.Since(start))
	return &createdComment, nil
}

func (c *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error) {
	start := time.Now()

	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT id, post_id, author, title, content, created_at
				FROM comments WHERE post_id = @post_id
				ORDER BY created_at ASC, id ASC`

	rows, err := c.db.Query(ctx, query, args)
	if err != nil {
		c.metrics.IncrementDatabaseQueries("comment_list_by_post", false)
		c.metrics.RecordDatabaseQueryDuration("comment_list_by_post", time.Since(start))
		c.log.Error("Error listing comments by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.Author,
			&comment.Title,
			&comment.Content,
			&comment.CreatedAt,
		)
		if err != nil {
			c.metrics.IncrementDatabaseQueries("comment_list_by_post", false)
			c.metrics.RecordDatabaseQueryDuration("comment_list_by_post", time.Since(start))
			c.log.Error("Error scanning comment row", slog.Int64("post_id", postID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		c.metrics.IncrementDatabaseQueries("comment_list_by_post", false)
		c.metrics.RecordDatabaseQueryDuration("comment_list_by_post", time.Since(start))
		c.log.Error("Error iterating comment rows", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("comment_list_by_post", true)
	c.metrics.RecordDatabaseQueryDuration("comment_list_by_post", time.Since(start))
	return comments, nil
}
