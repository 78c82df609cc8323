package syncx_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-qtigen/internal/db"
	syncx "github.com/mind-engage/mindengage-qtigen/internal/sync"
)

func openRepo(t *testing.T) *syncx.EventRepo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })
	return syncx.NewEventRepo(dbh)
}

func TestEventRepoAppendRecent(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Append(ctx, syncx.Event{
			Type:     syncx.TypeConversionCompleted,
			Key:      fmt.Sprintf("conv-%d", i),
			DataJSON: fmt.Sprintf(`{"items":%d}`, i),
		}))
	}

	got, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "conv-3", got[0].Key)
	assert.Equal(t, "conv-2", got[1].Key)
	assert.Equal(t, "local", got[0].SiteID)
	assert.Equal(t, `{"items":3}`, got[0].DataJSON)
	assert.Greater(t, got[0].Seq, got[1].Seq)
	assert.NotZero(t, got[0].CreatedAt)
}

func TestEventRepoRecentEmpty(t *testing.T) {
	repo := openRepo(t)

	got, err := repo.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := db.Open(context.Background(), db.DriverNone, "")
	require.Error(t, err)
}
