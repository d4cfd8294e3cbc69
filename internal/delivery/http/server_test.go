package delivery_http_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"

	delivery_http "inkwell/internal/delivery/http"
	"inkwell/internal/logger"
	"inkwell/internal/model"
)

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostDetailed), args.Error(1)
}

func (m *mockPostService) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostDetailed), args.Error(1)
}

func (m *mockPostService) ListPosts(ctx context.Context) ([]*model.PostWithTags, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PostWithTags), args.Error(1)
}

func (m *mockPostService) ListPostsByTag(ctx context.Context, tagName string) ([]*model.PostWithTags, error) {
	args := m.Called(ctx, tagName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PostWithTags), args.Error(1)
}

func (m *mockPostService) UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) error {
	args := m.Called(ctx, id, post)
	return args.Error(0)
}

func (m *mockPostService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Tag), args.Error(1)
}

type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) CreateComment(ctx context.Context, comment *model.CreateCommentDTO) (*model.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *mockCommentService) ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

type noopMetrics struct{}

func (noopMetrics) IncrementHTTPRequests(method, path, status string)              {}
func (noopMetrics) RecordHTTPRequestDuration(method, path string, d time.Duration) {}
func (noopMetrics) IncrementDatabaseQueries(queryType string, success bool)        {}
func (noopMetrics) RecordDatabaseQueryDuration(queryType string, d time.Duration)  {}
func (noopMetrics) IncrementCacheHits()                                            {}
func (noopMetrics) IncrementCacheMisses()                                          {}
func (noopMetrics) RecordCacheOperationDuration(operation string, d time.Duration) {}
func (noopMetrics) IncrementPostOperations(operation string, success bool)         {}
func (noopMetrics) IncrementCommentOperations(operation string, success bool)      {}
func (noopMetrics) IncrementTagOperations(operation string, success bool)          {}
func (noopMetrics) SetServiceHealth(healthy bool)                                  {}

func newTestServer(t *testing.T) (*fiber.App, *mockPostService, *mockCommentService) {
	t.Helper()

	postService := new(mockPostService)
	commentService := new(mockCommentService)
	server := delivery_http.NewServer(postService, commentService, "127.0.0.1", 0, logger.New("test"), noopMetrics{})

	return server.App(), postService, commentService
}

func testTimestamp() pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:  time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC),
		Valid: true,
	}
}

func samplePostDetailed(id int64, title string) *model.PostDetailed {
	return &model.PostDetailed{
		Post: &model.Post{
			ID:        id,
			Title:     title,
			Content:   "Some test content for the post.",
			CreatedAt: testTimestamp(),
		},
		Tags:     []*model.Tag{{ID: 1, Name: "golang"}},
		Comments: []*model.Comment{},
	}
}
