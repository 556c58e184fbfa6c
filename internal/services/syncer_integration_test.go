package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomview-sql/roomview/internal/db"
	"github.com/roomview-sql/roomview/internal/files/filesystem"
	"github.com/roomview-sql/roomview/internal/files/scanner"
	"github.com/roomview-sql/roomview/internal/graph"
	"github.com/roomview-sql/roomview/internal/logging"
	rvtesting "github.com/roomview-sql/roomview/internal/testing"
	"github.com/roomview-sql/roomview/pkg/roomview"
)

func newIntegrationService(t *testing.T) (*SyncService, roomview.Executor) {
	t.Helper()

	connString := rvtesting.RequireDatabase(t)
	pool := rvtesting.GetTestPool(t, connString)
	executor := db.NewPoolExecutor(pool)

	memFS := filesystem.NewMemoryFileSystem()
	memFS.AddFile("sql/views/core.sql", chainSQL)

	svc := NewSyncService(executor,
		&recordingApprover{approve: true},
		logging.NewNullLogger(),
		scanner.NewScannerWithFS(memFS))
	return svc, executor
}

func countViews(t *testing.T, executor roomview.Executor) int {
	t.Helper()
	var count int
	err := executor.QueryRow(context.Background(),
		"select count(*)::int from pg_views where viewname like $1", "vw_%").Scan(&count)
	require.NoError(t, err)
	return count
}

func TestSyncAllAgainstWarehouse(t *testing.T) {
	svc, executor := newIntegrationService(t)
	ctx := context.Background()

	require.NoError(t, executor.Exec(ctx,
		"create table if not exists src_accounts (id int, name text)"))
	t.Cleanup(func() {
		_ = executor.Exec(context.Background(), "drop table if exists src_accounts cascade")
	})

	g, err := graph.Build([]roomview.SourceFile{{Path: "sql/views/core.sql", Content: chainSQL}})
	require.NoError(t, err)

	// First run creates everything from scratch; second run proves the
	// drop-then-recreate path works when the objects already exist.
	require.NoError(t, svc.SyncAll(ctx, g))
	assert.Equal(t, 3, countViews(t, executor))

	require.NoError(t, svc.SyncAll(ctx, g))
	assert.Equal(t, 3, countViews(t, executor))

	// Dropping the base view cascades through the chain.
	require.NoError(t, svc.Drop(ctx, g, []string{"vw_alpha"}, nil))
	assert.Equal(t, 0, countViews(t, executor))

	// Sync on the base view restores the collaterally dropped chain.
	require.NoError(t, svc.SyncAll(ctx, g))
	require.NoError(t, svc.Sync(ctx, g, []string{"vw_alpha"}, nil))
	assert.Equal(t, 3, countViews(t, executor))
}

func TestFunctionLifecycleAgainstWarehouse(t *testing.T) {
	svc, executor := newIntegrationService(t)
	ctx := context.Background()

	g, err := graph.Build([]roomview.SourceFile{{Path: "fn.sql", Content: functionSQL}})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = executor.Exec(context.Background(),
			"drop function if exists fn_scale(float, float) cascade")
	})

	// Absent function: the catalog probe finds nothing and the drop is
	// skipped, so a full sync still succeeds.
	require.NoError(t, svc.SyncAll(ctx, g))

	var proname string
	err = executor.QueryRow(ctx, functionProbe, "fn_scale").Scan(&proname)
	require.NoError(t, err)
	assert.Equal(t, "fn_scale", proname)

	// Present function: the signature-qualified drop path runs.
	require.NoError(t, svc.SyncAll(ctx, g))
}
