package tag_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	"inkwell/internal/ports"
	"inkwell/internal/repository/postgres/db"
)

type TagRepository struct {
	log     *logger.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewTagRepository(db db.PgDB, log *logger.Logger, metrics ports.MetricsProvider) *TagRepository {
	return &TagRepository{db: db, log: log, metrics: metrics}
}

func (t *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	start := time.Now()

	query := `
		INSERT INTO tags(name)
		VALUES (@name)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name`

	args := pgx.NamedArgs{"name": name}

	var tag model.Tag
	err := t.db.QueryRow(ctx, query, args).Scan(&tag.ID, &tag.Name)

	if err != nil {
		t.metrics.IncrementDatabaseQueries("tag_create", false)
		t.metrics.RecordDatabaseQueryDuration("tag_create", time.Since(start))
		t.metrics.IncrementTagOperations("create", false)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrTagAlreadyExists
		}
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23505" {
			return nil, custom_errors.ErrTagAlreadyExists
		}
		t.log.Error("Error creating tag", slog.String("name", name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	t.metrics.IncrementDatabaseQueries("tag_create", true)
	t.metrics.RecordDatabaseQueryDuration("tag_create", time.Since(start))
	t.metrics.IncrementTagOperations("create", true)
	return &tag, nil
}

func (t *TagRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	start := time.Now()

	query := `SELECT id, name FROM tags WHERE name = @name`
	args := pgx.NamedArgs{"name": name}

	var tag model.Tag
	err := t.db.QueryRow(ctx, query, args).Scan(&tag.ID, &tag.Name)
	if err != nil {
		t.metrics.IncrementDatabaseQueries("tag_get_by_name", false)
		t.metrics.RecordDatabaseQueryDuration("tag_get_by_name", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrTagNotFound
		}
		t.log.Error("Error getting tag by name", slog.String("name", name), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	t.metrics.IncrementDatabaseQueries("tag_get_by_name", true)
	t.metrics.RecordDatabaseQueryDuration("tag_get_by_name", time.Since(start))
	return &tag, nil
}

func (t *TagRepository) FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error) {
	start := time.Now()

	query := `
		SELECT t.id, t.name
		FROM tags t
		INNER JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = @post_id
		ORDER BY t.name`

	args := pgx.NamedArgs{"post_id": postID}

	rows, err := t.db.Query(ctx, query, args)
	if err != nil {
		t.metrics.IncrementDatabaseQueries("tag_find_by_post", false)
		t.metrics.RecordDatabaseQueryDuration("tag_find_by_post", time.Since(start))
		t.log.Error("Error finding tags by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, err
	}
	defer rows.Close()

	tags, err := t.scanTags(rows)
	t.metrics.IncrementDatabaseQueries("tag_find_by_post", err == nil)
	t.metrics.RecordDatabaseQueryDuration("tag_find_by_post", time.Since(start))
	return tags, err
}

func (t *TagRepository) ListAll(ctx context.Context) ([]*model.Tag, error) {
	start := time.Now()

	query := `SELECT id, name FROM tags ORDER BY name`

	rows, err := t.db.Query(ctx, query)
	if err != nil {
		t.metrics.IncrementDatabaseQueries("tag_list_all", false)
		t.metrics.RecordDatabaseQueryDuration("tag_list_all", time.Since(start))
		t.log.Error("Error listing tags", slog.String("error", err.Error()))
		return nil, err
	}
	defer rows.Close()

	tags, err := t.scanTags(rows)
	t.metrics.IncrementDatabaseQueries("tag_list_all", err == nil)
	t.metrics.RecordDatabaseQueryDuration("tag_list_all", time.Since(start))
	return tags, err
}

func (t *TagRepository) DeleteUnused(ctx context.Context) error {
	start := time.Now()

	query := `DELETE FROM tags WHERE id NOT IN (SELECT DISTINCT tag_id FROM post_tags)`

	_, err := t.db.Exec(ctx, query)
	t.metrics.IncrementDatabaseQueries("tag_delete_unused", err == nil)
	t.metrics.RecordDatabaseQueryDuration("tag_delete_unused", time.Since(start))
	t.metrics.IncrementTagOperations("delete_unused", err == nil)
	if err != nil {
		t.log.Error("Error deleting unused tags", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (t *TagRepository) TagPost(ctx context.Context, postID int64, tagNames []string) error {
	if len(tagNames) == 0 {
		return nil
	}

	start := time.Now()

	batch := &pgx.Batch{}
	// ON CONFLICT keeps re-tagging, and the same name twice in one
	// submission, a no-op instead of aborting the enclosing transaction
	query := `
		INSERT INTO post_tags (post_id, tag_id)
		VALUES (@post_id, (SELECT id FROM tags WHERE name = @tag_name))
		ON CONFLICT (post_id, tag_id) DO NOTHING`

	for _, tagName := range tagNames {
		args := pgx.NamedArgs{
			"post_id":  postID,
			"tag_name": tagName,
		}
		batch.Queue(query, args)
	}

	br := t.db.SendBatch(ctx, batch)
	defer br.Close()

	for range tagNames {
		if _, err := br.Exec(); err != nil {
			t.metrics.IncrementDatabaseQueries("tag_post_attach", false)
			t.metrics.RecordDatabaseQueryDuration("tag_post_attach", time.Since(start))
			t.metrics.IncrementTagOperations("tag_post", false)
			t.log.Error("Error tagging post",
				slog.Int64("post_id", postID),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to tag post: %w", err)
		}
	}

	t.metrics.IncrementDatabaseQueries("tag_post_attach", true)
	t.metrics.RecordDatabaseQueryDuration("tag_post_attach", time.Since(start))
	t.metrics.IncrementTagOperations("tag_post", true)
	return nil
}

func (t *TagRepository) ReplacePostTags(ctx context.Context, postID int64, newTags []string) error {
	start := time.Now()

	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Error starting transaction", slog.String("error", err.Error()))
		return err
	}
	defer tx.Rollback(ctx)

	deleteQuery := `DELETE FROM post_tags WHERE post_id = @post_id`
	_, err = tx.Exec(ctx, deleteQuery, pgx.NamedArgs{"post_id": postID})
	if err != nil {
		t.metrics.IncrementDatabaseQueries("tag_replace", false)
		t.metrics.RecordDatabaseQueryDuration("tag_replace", time.Since(start))
		t.metrics.IncrementTagOperations("replace", false)
		t.log.Error("Error deleting old tags", slog.String("error", err.Error()))
		return err
	}

	if len(newTags) > 0 {
		batch := &pgx.Batch{}
		insertQuery := `
			INSERT INTO post_tags (post_id, tag_id)
			VALUES (@post_id, (SELECT id FROM tags WHERE name = @tag_name))
			ON CONFLICT (post_id, tag_id) DO NOTHING`

		for _, tagName := range newTags {
			batch.Queue(insertQuery, pgx.NamedArgs{
				"post_id":  postID,
				"tag_name": tagName,
			})
		}

		br := tx.SendBatch(ctx, batch)

		for range newTags {
			if _, err := br.Exec(); err != nil {
				br.Close()
				t.metrics.IncrementDatabaseQueries("tag_replace", false)
				t.metrics.RecordDatabaseQueryDuration("tag_replace", time.Since(start))
				t.metrics.IncrementTagOperations("replace", false)
				t.log.Error("Error inserting new tags",
					slog.Int64("post_id", postID),
					slog.String("error", err.Error()))
				return fmt.Errorf("failed to replace tags: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			t.log.Error("Error closing batch during tag replace", slog.String("error", err.Error()))
			return err
		}
	}

	err = tx.Commit(ctx)
	t.metrics.IncrementDatabaseQueries("tag_replace", err == nil)
	t.metrics.RecordDatabaseQueryDuration("tag_replace", time.Since(start))
	t.metrics.IncrementTagOperations("replace", err == nil)
	return err
}

func (t *TagRepository) scanTags(rows pgx.Rows) ([]*model.Tag, error) {
	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			t.log.Error("Error scanning tag row", slog.String("error", err.Error()))
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		t.log.Error("Error iterating tag rows", slog.String("error", err.Error()))
		return nil, err
	}
	return tags, nil
}
