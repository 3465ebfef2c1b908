package deletion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/engine/deletion"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/test"
)

func newEngine(store *test.MockStore) *deletion.Engine {
	return deletion.NewEngine(deletion.Params{
		Store:    store,
		Tables:   model.Tables{Prefix: "wp_"},
		Recorder: metrics.NewNoOpMetricRecorder(),
		Tracer:   metrics.NewNoOpTracer(),
	})
}

func expectMarked(store *test.MockStore, table, field string, found bool) {
	store.On("HasMarkedRows", testify_mock.Anything, table, field, model.Marker).Return(found, nil).Once()
}

func TestRun_SwapsTablesWithGeneratedRows(t *testing.T) {
	store := new(test.MockStore)
	expectMarked(store, "wp_comments", "comment_author_url", true)
	expectMarked(store, "wp_posts", "guid", false)
	expectMarked(store, "wp_users", "user_url", true)
	store.On("SwapWithout", testify_mock.Anything, "wp_comments", "comment_author_url", model.Marker).Return(nil).Once()
	store.On("SwapWithout", testify_mock.Anything, "wp_users", "user_url", model.Marker).Return(nil).Once()

	result, err := newEngine(store).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Deleted)
	assert.Equal(t, deletion.MessageDeleted, result.Message)
	store.AssertExpectations(t)
	// posts and pages share wp_posts
	store.AssertNumberOfCalls(t, "HasMarkedRows", 3)
	store.AssertNotCalled(t, "SwapWithout", testify_mock.Anything, "wp_posts", testify_mock.Anything, testify_mock.Anything)
}

func TestRun_NothingToDelete(t *testing.T) {
	store := new(test.MockStore)
	expectMarked(store, "wp_comments", "comment_author_url", false)
	expectMarked(store, "wp_posts", "guid", false)
	expectMarked(store, "wp_users", "user_url", false)

	result, err := newEngine(store).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Deleted)
	assert.Equal(t, deletion.MessageNothing, result.Message)
	store.AssertNotCalled(t, "SwapWithout", testify_mock.Anything, testify_mock.Anything, testify_mock.Anything, testify_mock.Anything)
}

func TestRun_AccumulatesFailures(t *testing.T) {
	store := new(test.MockStore)
	store.On("HasMarkedRows", testify_mock.Anything, "wp_comments", "comment_author_url", model.Marker).
		Return(false, errors.New("connection reset"))
	expectMarked(store, "wp_posts", "guid", true)
	expectMarked(store, "wp_users", "user_url", true)
	store.On("SwapWithout", testify_mock.Anything, "wp_posts", "guid", model.Marker).
		Return(exception.Storage("gorm", "failed to remove generated rows from wp_posts", errors.New("lock wait timeout")))
	store.On("SwapWithout", testify_mock.Anything, "wp_users", "user_url", model.Marker).Return(nil)

	result, err := newEngine(store).Run(context.Background())
	require.Error(t, err)

	assert.True(t, result.Deleted, "wp_users was still swapped")
	assert.Equal(t, exception.KindStorage, exception.KindOf(err))
	assert.Equal(t,
		"Error deleting generated items of type post: failed to remove generated rows from wp_posts: lock wait timeout; "+
			"Error deleting generated items of type comment: connection reset",
		exception.Diagnostics(err))
}
