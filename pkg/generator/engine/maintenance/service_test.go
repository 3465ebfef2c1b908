package maintenance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/cache"
	"github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/engine/maintenance"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/test"
)

type flusher struct {
	calls int
	err   error
}

func (f *flusher) Flush(ctx context.Context) error {
	f.calls++
	return f.err
}

func (f *flusher) Close() error { return nil }

func newService(store *test.MockStore, c cache.Flusher) *maintenance.Service {
	return maintenance.NewService(maintenance.Params{Store: store, Cache: c, Recorder: metrics.NewNoOpMetricRecorder()})
}

func TestUpdateCommentCounts(t *testing.T) {
	store := new(test.MockStore)
	store.On("UpdateCommentCounts", testify_mock.Anything).Return(nil).Twice()
	svc := newService(store, cache.Noop{})

	for i := 0; i < 2; i++ {
		msg, err := svc.UpdateCommentCounts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, maintenance.MessageCommentCounts, msg)
	}
	store.AssertExpectations(t)
}

func TestUpdateCommentCounts_Failure(t *testing.T) {
	store := new(test.MockStore)
	store.On("UpdateCommentCounts", testify_mock.Anything).
		Return(exception.Storage("gorm", "failed to update comment counts", errors.New("gone away")))

	msg, err := newService(store, cache.Noop{}).UpdateCommentCounts(context.Background())
	assert.Empty(t, msg)
	assert.Equal(t, exception.KindStorage, exception.KindOf(err))
}

func TestCacheFlush(t *testing.T) {
	f := &flusher{}
	svc := newService(new(test.MockStore), f)

	msg, err := svc.CacheFlush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, maintenance.MessageCacheFlushed, msg)
	assert.Equal(t, 1, f.calls)

	f.err = errors.New("READONLY")
	_, err = svc.CacheFlush(context.Background())
	assert.EqualError(t, err, "READONLY")
}
