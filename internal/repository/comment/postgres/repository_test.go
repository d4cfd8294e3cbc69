package comment_repository_postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/custom_errors"
	"inkwell/internal/logger"
	comment_repository_postgres "inkwell/internal/repository/comment/postgres"
)

type queryRecord struct {
	QueryType string
	Success   bool
}

type recordingMetrics struct {
	mu      sync.Mutex
	queries []queryRecord
}

func (m *recordingMetrics) IncrementHTTPRequests(method, path, status string) {}
func (m *recordingMetrics) RecordHTTPRequestDuration(method, path string, d time.Duration) {}
func (m *recordingMetrics) RecordDatabaseQueryDuration(queryType string, d time.Duration) {}
func (m *recordingMetrics) IncrementCacheHits() {}
func (m *recordingMetrics) IncrementCacheMisses() {}
func (m *recordingMetrics) RecordCacheOperationDuration(operation string, d time.Duration) {}
func (m *recordingMetrics) IncrementPostOperations(operation string, success bool) {}
func (m *recordingMetrics) IncrementCommentOperations(operation string, success bool) {}
func (m *recordingMetrics) IncrementTagOperations(operation string, success bool) {}
func (m *recordingMetrics) SetServiceHealth(healthy bool) {}

func (m *recordingMetrics) IncrementDatabaseQueries(queryType string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, queryRecord{QueryType: queryType, Success: success})
}

// stubRows plays back a fixed iteration outcome for Query-based methods.
type stubRows struct {
	next    int
	rowsErr error
}

func (r *stubRows) Close() {}
func (r *stubRows) Err() error                                   { return r.rowsErr }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Scan(dest ...any) error                       { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.next <= 0 {
		return false
	}
	r.next--
	return true
}

type stubDB struct {
	rows *stubRows
}

func (db *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return db.rows, nil
}

func (db *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("unexpected QueryRow")
}

func (db *stubDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("unexpected SendBatch")
}

func (db *stubDB) Begin(ctx context.Context) (pgx.Tx, error) {
	panic("unexpected Begin")
}

func TestCommentRepository_ListByPost_Iteration(t *testing.T) {
	log := logger.New("test")

	t.Run("no comments is not an error", func(t *testing.T) {
		metrics := &recordingMetrics{}
		db := &stubDB{rows: &stubRows{}}
		repo := comment_repository_postgres.NewCommentRepository(db, log, metrics)

		got, err := repo.ListByPost(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, got)

		require.Len(t, metrics.queries, 1)
		assert.Equal(t, queryRecord{QueryType: "comment_list_by_post", Success: true}, metrics.queries[0])
	})

	t.Run("iteration failure surfaces as a query error", func(t *testing.T) {
		metrics := &recordingMetrics{}
		db := &stubDB{rows: &stubRows{rowsErr: assert.AnError}}
		repo := comment_repository_postgres.NewCommentRepository(db, log, metrics)

		got, err := repo.ListByPost(context.Background(), 1)
		assert.ErrorIs(t, err, custom_errors.ErrDatabaseQuery)
		assert.Nil(t, got)

		require.Len(t, metrics.queries, 1)
		assert.Equal(t, queryRecord{QueryType: "comment_list_by_post", Success: false}, metrics.queries[0])
	})

	t.Run("rows scan into comments", func(t *testing.T) {
		metrics := &recordingMetrics{}
		db := &stubDB{rows: &stubRows{next: 2}}
		repo := comment_repository_postgres.NewCommentRepository(db, log, metrics)

		got, err := repo.ListByPost(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
