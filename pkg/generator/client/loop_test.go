package client_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/client"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/settings"
	"github.com/tigerroll/wpgen/pkg/generator/engine/deletion"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

type fakeChunks struct {
	requests []model.GenerationRequest
	failAt   int
}

func (f *fakeChunks) Run(ctx context.Context, req model.GenerationRequest) (model.ChunkReport, error) {
	f.requests = append(f.requests, req)
	report := model.ChunkReport{Plan: model.Plan(req), Total: req.Number}
	if f.failAt > 0 && len(f.requests) == f.failAt {
		return report, exception.Storage("chunk", "bulk load failed", errors.New("disk full"))
	}
	return report, nil
}

type fakeMaintenance struct {
	calls    []string
	flushErr error
}

func (f *fakeMaintenance) UpdateCommentCounts(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "recount")
	return "Comment counts updated.", nil
}

func (f *fakeMaintenance) CacheFlush(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "flush")
	if f.flushErr != nil {
		return "", f.flushErr
	}
	return "Cache flushed.", nil
}

type fakeDeleter struct {
	result deletion.Result
	err    error
}

func (f *fakeDeleter) Run(ctx context.Context) (deletion.Result, error) { return f.result, f.err }

type fakeDumper struct {
	keys []string
}

func (f *fakeDumper) Write(ctx context.Context, w io.Writer, key string) error {
	f.keys = append(f.keys, key)
	_, err := io.WriteString(w, "-- dump\n")
	return err
}

type harness struct {
	loop     *client.Loop
	chunks   *fakeChunks
	maint    *fakeMaintenance
	deleter  *fakeDeleter
	dumper   *fakeDumper
	messages []string
}

func newHarness() *harness {
	h := &harness{chunks: &fakeChunks{}, maint: &fakeMaintenance{}, deleter: &fakeDeleter{}, dumper: &fakeDumper{}}
	h.loop = client.NewLoop(client.Params{
		Chunks:      h.chunks,
		Maintenance: h.maint,
		Deleter:     h.deleter,
		Dumper:      h.dumper,
	}, func(m string) { h.messages = append(h.messages, m) })
	return h
}

var admin = model.Principal{ID: 3, Login: "admin"}

func TestRun_NothingToDo(t *testing.T) {
	h := newHarness()
	summary, err := h.loop.Run(context.Background(), settings.Settings{PostType: model.ItemPost, ChunkSize: 10}, client.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Chunks)
	assert.Equal(t, []string{client.MessageNothingToDo}, h.messages)
	assert.Empty(t, h.maint.calls)
}

func TestRun_PartitionsIntoChunks(t *testing.T) {
	h := newHarness()
	s := settings.Settings{PostType: model.ItemPost, Number: 250, ChunkSize: 100}

	summary, err := h.loop.Run(context.Background(), s, client.Options{Principal: admin, RunID: "r"})
	require.NoError(t, err)

	require.Len(t, h.chunks.requests, 3)
	var counts []int
	for i, req := range h.chunks.requests {
		assert.Equal(t, i*100, req.Index)
		assert.Equal(t, admin, req.Principal)
		counts = append(counts, model.Plan(req).Count)
	}
	assert.Equal(t, []int{100, 100, 50}, counts)
	assert.Equal(t, 3, summary.Chunks)
	assert.False(t, summary.Failed)
	assert.Equal(t, []string{"flush"}, h.maint.calls)
	assert.Equal(t, client.MessageGenerating, h.messages[0])
	assert.Contains(t, h.messages[3], "Step 3/3. 250/250 items generated.")
	assert.Regexp(t, `^Total time used: \d+\.\d{3} sec\.$`, h.messages[len(h.messages)-1])
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	h := newHarness()
	h.chunks.failAt = 2
	s := settings.Settings{PostType: model.ItemComment, Number: 30, ChunkSize: 10}

	summary, err := h.loop.Run(context.Background(), s, client.Options{Principal: admin})
	require.Error(t, err)

	assert.True(t, summary.Failed)
	assert.Len(t, h.chunks.requests, 2)
	assert.Contains(t, h.messages, "Step 2/3. Error encountered: bulk load failed: disk full.")
	assert.Equal(t, []string{"recount", "flush"}, h.maint.calls)
}

func TestRun_SQLModeDownloads(t *testing.T) {
	h := newHarness()
	var out bytes.Buffer
	s := settings.Settings{PostType: model.ItemUser, Number: 5, ChunkSize: 5, SQL: true}

	_, err := h.loop.Run(context.Background(), s, client.Options{Principal: admin, RunID: "abc", Download: &out})
	require.NoError(t, err)

	assert.Equal(t, []string{"3:abc"}, h.dumper.keys)
	assert.Equal(t, "-- dump\n", out.String())
	assert.True(t, h.chunks.requests[0].SQL)
}

func TestRun_SQLModeWithoutDestination(t *testing.T) {
	h := newHarness()
	s := settings.Settings{PostType: model.ItemUser, Number: 5, ChunkSize: 5, SQL: true}
	_, err := h.loop.Run(context.Background(), s, client.Options{Principal: admin})
	assert.Equal(t, exception.KindValidation, exception.KindOf(err))
	assert.Empty(t, h.chunks.requests)
}

func TestRun_SQLModeSkipsDownloadAfterFailure(t *testing.T) {
	h := newHarness()
	h.chunks.failAt = 1
	var out bytes.Buffer
	s := settings.Settings{PostType: model.ItemPost, Number: 5, ChunkSize: 5, SQL: true}

	_, err := h.loop.Run(context.Background(), s, client.Options{Principal: admin, Download: &out})
	require.Error(t, err)
	assert.Empty(t, h.dumper.keys)
	assert.Empty(t, out.String())
}

func TestDelete(t *testing.T) {
	h := newHarness()
	h.deleter.result = deletion.Result{Deleted: true, Message: deletion.MessageDeleted}

	summary, err := h.loop.Delete(context.Background())
	require.NoError(t, err)
	assert.False(t, summary.Failed)
	assert.Equal(t, []string{"recount", "flush"}, h.maint.calls)
	assert.Equal(t, []string{
		client.MessageDeleting,
		deletion.MessageDeleted,
		client.MessageUpdatingCount,
		"Comment counts updated.",
		"Cache flushed.",
	}, h.messages[:5])
}

func TestDelete_FailureStillRunsMaintenance(t *testing.T) {
	h := newHarness()
	h.deleter.err = exception.Storage("deletion", "Error deleting generated items of type post", errors.New("locked"))
	h.maint.flushErr = errors.New("READONLY")

	summary, err := h.loop.Delete(context.Background())
	require.Error(t, err)
	assert.True(t, summary.Failed)
	assert.Equal(t, exception.KindStorage, exception.KindOf(err))
	assert.Contains(t, h.messages, "Error deleting generated items of type post: locked.")
	assert.Contains(t, h.messages, "READONLY")
	assert.Equal(t, []string{"recount", "flush"}, h.maint.calls)
}
