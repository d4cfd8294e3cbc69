package memory

import (
	"context"

	comment_repository "inkwell/internal/repository/comment"
	comment_memory "inkwell/internal/repository/comment/memory"
	post_repository "inkwell/internal/repository/post"
	post_memory "inkwell/internal/repository/post/memory"
	"inkwell/internal/repository/postgres"
	tag_repository "inkwell/internal/repository/tag"
	tag_memory "inkwell/internal/repository/tag/memory"
)

// UnitOfWork satisfies postgres.UnitOfWork over the in-memory repositories.
// There is no real transaction: commit and rollback are no-ops, which is
// sufficient for exercising service orchestration in tests.
type UnitOfWork struct {
	Posts    *post_memory.PostRepository
	Comments *comment_memory.CommentRepository
	Tags     *tag_memory.TagRepository
}

func NewUnitOfWork(posts *post_memory.PostRepository, comments *comment_memory.CommentRepository, tags *tag_memory.TagRepository) *UnitOfWork {
	return &UnitOfWork{Posts: posts, Comments: comments, Tags: tags}
}

func (u *UnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	return &transaction{uow: u}, nil
}

type transaction struct {
	uow *UnitOfWork
}

func (t *transaction) PostRepository() post_repository.Repository {
	return t.uow.Posts
}

func (t *transaction) CommentRepository() comment_repository.Repository {
	return t.uow.Comments
}

func (t *transaction) TagRepository() tag_repository.Repository {
	return t.uow.Tags
}

func (t *transaction) Commit(ctx context.Context) error {
	return nil
}

func (t *transaction) Rollback(ctx context.Context) error {
	return nil
}
