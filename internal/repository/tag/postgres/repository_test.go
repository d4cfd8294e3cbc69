package tag_repository_postgres_test

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
	tag_repository_postgres "inkwell/internal/repository/tag/postgres"
)

type operationRecord struct {
	Operation string
	Success   bool
}

type recordingMetrics struct {
	mu      sync.Mutex
	queries []operationRecord
	tagOps  []operationRecord
}

func (m *recordingMetrics) IncrementHTTPRequests(method, path, status string) {}
func (m *recordingMetrics) RecordHTTPRequestDuration(method, path string, d time.Duration) {}
func (m *recordingMetrics) RecordDatabaseQueryDuration(queryType string, d time.Duration) {}
func (m *recordingMetrics) IncrementCacheHits() {}
func (m *recordingMetrics) IncrementCacheMisses() {}
func (m *recordingMetrics) RecordCacheOperationDuration(operation string, d time.Duration) {}
func (m *recordingMetrics) IncrementPostOperations(operation string, success bool) {}
func (m *recordingMetrics) IncrementCommentOperations(operation string, success bool) {}
func (m *recordingMetrics) SetServiceHealth(healthy bool) {}

func (m *recordingMetrics) IncrementDatabaseQueries(queryType string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, operationRecord{Operation: queryType, Success: success})
}

func (m *recordingMetrics) IncrementTagOperations(operation string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tagOps = append(m.tagOps, operationRecord{Operation: operation, Success: success})
}

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

type stubBatchResults struct {
	remaining int
}

func (br *stubBatchResults) Exec() (pgconn.CommandTag, error) {
	br.remaining--
	return pgconn.CommandTag{}, nil
}

func (br *stubBatchResults) Query() (pgx.Rows, error) { panic("unexpected Query") }
func (br *stubBatchResults) QueryRow() pgx.Row        { panic("unexpected QueryRow") }
func (br *stubBatchResults) Close() error             { return nil }

// stubTx embeds pgx.Tx so only the methods ReplacePostTags touches need
// implementations.
type stubTx struct {
	pgx.Tx
	sentBatch *pgx.Batch
	committed bool
}

func (tx *stubTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (tx *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	tx.sentBatch = b
	return &stubBatchResults{remaining: b.Len()}
}

func (tx *stubTx) Commit(ctx context.Context) error {
	tx.committed = true
	return nil
}

func (tx *stubTx) Rollback(ctx context.Context) error { return nil }

type stubDB struct {
	row       stubRow
	sentBatch *pgx.Batch
	tx        *stubTx
}

func (db *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("unexpected Query")
}

func (db *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return db.row
}

func (db *stubDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	db.sentBatch = b
	return &stubBatchResults{remaining: b.Len()}
}

func (db *stubDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return db.tx, nil
}

func TestTagRepository_Create_AlreadyExists(t *testing.T) {
	log := logger.New("test")
	metrics := &recordingMetrics{}
	db := &stubDB{row: stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}}
	repo := tag_repository_postgres.NewTagRepository(db, log, metrics)

	got, err := repo.Create(context.Background(), "golang")
	assert.ErrorIs(t, err, custom_errors.ErrTagAlreadyExists)
	assert.Nil(t, got)

	require.Len(t, metrics.queries, 1)
	assert.Equal(t, operationRecord{Operation: "tag_create", Success: false}, metrics.queries[0])
	require.Len(t, metrics.tagOps, 1)
	assert.Equal(t, operationRecord{Operation: "create", Success: false}, metrics.tagOps[0])
}

func TestTagRepository_TagPost_DuplicatePairsAreNoOps(t *testing.T) {
	log := logger.New("test")
	metrics := &recordingMetrics{}
	db := &stubDB{}
	repo := tag_repository_postgres.NewTagRepository(db, log, metrics)

	err := repo.TagPost(context.Background(), 1, []string{"go", "go", "web"})
	require.NoError(t, err)

	// The insert must tolerate an existing (post_id, tag_id) pair, otherwise
	// the second "go" aborts the enclosing transaction.
	require.NotNil(t, db.sentBatch)
	require.Len(t, db.sentBatch.QueuedQueries, 3)
	for _, queued := range db.sentBatch.QueuedQueries {
		assert.Contains(t, queued.SQL, "ON CONFLICT (post_id, tag_id) DO NOTHING")
	}

	require.Len(t, metrics.queries, 1)
	assert.Equal(t, operationRecord{Operation: "tag_post_attach", Success: true}, metrics.queries[0])
	require.Len(t, metrics.tagOps, 1)
	assert.Equal(t, operationRecord{Operation: "tag_post", Success: true}, metrics.tagOps[0])
}

func TestTagRepository_ReplacePostTags(t *testing.T) {
	log := logger.New("test")
	metrics := &recordingMetrics{}
	tx := &stubTx{}
	db := &stubDB{tx: tx}
	repo := tag_repository_postgres.NewTagRepository(db, log, metrics)

	err := repo.ReplacePostTags(context.Background(), 1, []string{"new", "new"})
	require.NoError(t, err)
	assert.True(t, tx.committed)

	require.NotNil(t, tx.sentBatch)
	require.Len(t, tx.sentBatch.QueuedQueries, 2)
	for _, queued := range tx.sentBatch.QueuedQueries {
		assert.Contains(t, queued.SQL, "ON CONFLICT (post_id, tag_id) DO NOTHING")
	}

	require.Len(t, metrics.queries, 1)
	assert.Equal(t, operationRecord{Operation: "tag_replace", Success: true}, metrics.queries[0])
	require.Len(t, metrics.tagOps, 1)
	assert.Equal(t, operationRecord{Operation: "replace", Success: true}, metrics.tagOps[0])
}
