package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/settings"
	"github.com/tigerroll/wpgen/pkg/generator/engine/chunk"
	"github.com/tigerroll/wpgen/pkg/generator/engine/deletion"
	"github.com/tigerroll/wpgen/pkg/generator/interfaces/http/handler"
	"github.com/tigerroll/wpgen/pkg/generator/security"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var admin = model.Principal{ID: 1, Login: "admin", Caps: []string{security.CapManageOptions}}

type memoryOptions struct {
	options map[string]string
}

func (m *memoryOptions) LoadOptions(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.options))
	for k, v := range m.options {
		out[k] = v
	}
	return out, nil
}

func (m *memoryOptions) SaveOptions(ctx context.Context, options map[string]string) error {
	m.options = options
	return nil
}

type fakeGenerator struct {
	requests   []model.GenerationRequest
	err        error
	advisories []chunk.Advisory
}

func (f *fakeGenerator) Run(ctx context.Context, req model.GenerationRequest) (model.ChunkReport, error) {
	f.requests = append(f.requests, req)
	return model.ChunkReport{Plan: model.Plan(req), Total: req.Number}, f.err
}

func (f *fakeGenerator) Advisories(ctx context.Context) []chunk.Advisory { return f.advisories }

type fakeDownloader struct {
	keys []string
}

func (f *fakeDownloader) Find(ctx context.Context, key string) (*model.StagedRun, error) {
	if key != "1:r1" {
		return nil, exception.Validation("dump", "There is no generated SQL to download.", nil)
	}
	return &model.StagedRun{Key: key, Table: "wp_posts"}, nil
}

func (f *fakeDownloader) Filename(run *model.StagedRun) string { return run.Table + ".sql" }

func (f *fakeDownloader) Write(ctx context.Context, w io.Writer, key string) error {
	f.keys = append(f.keys, key)
	_, err := io.WriteString(w, "INSERT INTO `wp_posts` VALUES (1);\n")
	return err
}

type fakeMaintenance struct {
	err error
}

func (f *fakeMaintenance) UpdateCommentCounts(ctx context.Context) (string, error) {
	return "Comment counts updated.", f.err
}

func (f *fakeMaintenance) CacheFlush(ctx context.Context) (string, error) {
	return "Cache flushed.", f.err
}

type fakeDeleter struct {
	result deletion.Result
	err    error
}

func (f *fakeDeleter) Run(ctx context.Context) (deletion.Result, error) { return f.result, f.err }

type harness struct {
	router      *gin.Engine
	guard       *security.Guard
	options     *memoryOptions
	generator   *fakeGenerator
	downloader  *fakeDownloader
	maintenance *fakeMaintenance
	deleter     *fakeDeleter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	guard, err := security.NewGuard(config.SecurityConfig{TokenSecret: "test", TokenTTLSeconds: 300})
	require.NoError(t, err)

	h := &harness{
		guard:       guard,
		options:     &memoryOptions{options: map[string]string{}},
		generator:   &fakeGenerator{},
		downloader:  &fakeDownloader{},
		maintenance: &fakeMaintenance{},
		deleter:     &fakeDeleter{result: deletion.Result{Message: deletion.MessageNothing}},
	}
	h.router = gin.New()
	handler.New(handler.Params{
		Guard:       guard,
		Settings:    settings.NewStore(h.options),
		Generator:   h.generator,
		Downloader:  h.downloader,
		Maintenance: h.maintenance,
		Deleter:     h.deleter,
		Gatherer:    prometheus.NewRegistry(),
	}).Register(h.router)
	return h
}

func (h *harness) nonce(t *testing.T, p model.Principal, action security.Action) string {
	t.Helper()
	token, err := h.guard.Issue(p, action)
	require.NoError(t, err)
	return token
}

func (h *harness) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.Response {
	t.Helper()
	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func formData(number, chunkSize string, extra ...settings.FormField) string {
	fields := []settings.FormField{
		{Name: "wpgen_settings[post_type]", Value: "page"},
		{Name: "wpgen_settings[number]", Value: number},
		{Name: "wpgen_settings[chunk_size]", Value: chunkSize},
		{Name: "_wp_http_referer", Value: "/ignored"},
	}
	fields = append(fields, extra...)
	data, _ := json.Marshal(fields)
	return string(data)
}

func TestGenerate_RunsChunk(t *testing.T) {
	h := newHarness(t)
	w := h.post("/generate", url.Values{
		"action": {string(security.ActionGenerate)},
		"nonce":  {h.nonce(t, admin, security.ActionGenerate)},
		"index":  {"100"},
		"data":   {formData("250", "100")},
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Data, "Step 2/3. 200/250 items generated.")

	require.Len(t, h.generator.requests, 1)
	req := h.generator.requests[0]
	assert.Equal(t, model.ItemPage, req.ItemType)
	assert.Equal(t, 100, req.Index)
	assert.Equal(t, admin, req.Principal)
	assert.Equal(t, "250", h.options.options["number"])
}

func TestGenerate_UncheckedSQLBoxSwitchesBackToLoad(t *testing.T) {
	h := newHarness(t)
	submit := func(data string) {
		w := h.post("/generate", url.Values{
			"nonce": {h.nonce(t, admin, security.ActionGenerate)},
			"index": {"0"},
			"data":  {data},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	submit(formData("10", "10", settings.FormField{Name: "wpgen_settings[sql]", Value: "on"}))
	submit(formData("10", "10"))

	require.Len(t, h.generator.requests, 2)
	assert.True(t, h.generator.requests[0].SQL)
	assert.False(t, h.generator.requests[1].SQL)
}

func TestGenerate_ChunkFailure(t *testing.T) {
	h := newHarness(t)
	h.generator.err = exception.Storage("chunk", "bulk load failed", errors.New("denied"))
	w := h.post("/generate", url.Values{
		"nonce": {h.nonce(t, admin, security.ActionGenerate)},
		"index": {"0"},
		"data":  {formData("10", "10")},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Step 1/1. Error encountered: bulk load failed: denied.", resp.Data)
}

func TestGenerate_AuthFailures(t *testing.T) {
	h := newHarness(t)
	author := model.Principal{ID: 2, Login: "author"}

	cases := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"missing nonce", url.Values{"data": {formData("1", "1")}}, security.MessageExpired},
		{"nonce of another action", url.Values{
			"nonce": {h.nonce(t, admin, security.ActionDelete)}, "data": {formData("1", "1")},
		}, security.MessageExpired},
		{"mismatched action", url.Values{
			"action": {string(security.ActionDelete)},
			"nonce":  {h.nonce(t, admin, security.ActionGenerate)}, "data": {formData("1", "1")},
		}, security.MessageExpired},
		{"no privilege", url.Values{
			"nonce": {h.nonce(t, author, security.ActionGenerate)}, "data": {formData("1", "1")},
		}, security.MessageForbidden},
		{"no data", url.Values{"nonce": {h.nonce(t, admin, security.ActionGenerate)}}, security.MessageNoData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := h.post("/generate", tc.form)
			assert.Equal(t, http.StatusForbidden, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.message, resp.Data)
		})
	}
	assert.Empty(t, h.generator.requests)
}

func TestGenerate_InvalidSettings(t *testing.T) {
	h := newHarness(t)
	w := h.post("/generate", url.Values{
		"nonce": {h.nonce(t, admin, security.ActionGenerate)},
		"data":  {formData("10", "0")},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, h.generator.requests)
}

func TestGenerate_NothingToDo(t *testing.T) {
	h := newHarness(t)
	w := h.post("/generate", url.Values{
		"nonce": {h.nonce(t, admin, security.ActionGenerate)},
		"data":  {formData("0", "10")},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nothing to do.", decode(t, w).Data)
	assert.Empty(t, h.generator.requests)
}

func TestDownloadSQL(t *testing.T) {
	h := newHarness(t)
	w := h.post("/download-sql", url.Values{
		"nonce":  {h.nonce(t, admin, security.ActionDownloadSQL)},
		"data":   {"[]"},
		"run_id": {"r1"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/sql", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="wp_posts.sql"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "INSERT INTO `wp_posts` VALUES (1);\n", w.Body.String())
	assert.Equal(t, []string{"1:r1"}, h.downloader.keys)
}

func TestDownloadSQL_UnknownRun(t *testing.T) {
	h := newHarness(t)
	w := h.post("/download-sql", url.Values{
		"nonce": {h.nonce(t, admin, security.ActionDownloadSQL)},
		"data":  {"[]"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "There is no generated SQL to download.", decode(t, w).Data)
}

func TestMaintenanceEndpoints(t *testing.T) {
	h := newHarness(t)

	w := h.post("/cache-flush", url.Values{"nonce": {h.nonce(t, admin, security.ActionCacheFlush)}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handler.Response{Success: true, Data: "Cache flushed."}, decode(t, w))

	w = h.post("/update-comment-counts", url.Values{"nonce": {h.nonce(t, admin, security.ActionUpdateCommentCounts)}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment counts updated.", decode(t, w).Data)

	w = h.post("/cache-flush", url.Values{"nonce": {h.nonce(t, admin, security.ActionUpdateCommentCounts)}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.deleter.result = deletion.Result{Deleted: true, Message: deletion.MessageDeleted}

	w := h.post("/delete", url.Values{"nonce": {h.nonce(t, admin, security.ActionDelete)}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, deletion.MessageDeleted, decode(t, w).Data)

	h.deleter.err = exception.Storage("deletion", "Error deleting generated items of type user", errors.New("locked"))
	w = h.post("/delete", url.Values{"nonce": {h.nonce(t, admin, security.ActionDelete)}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error deleting generated items of type user: locked.", decode(t, w).Data)
}

func TestNotices(t *testing.T) {
	h := newHarness(t)
	h.generator.advisories = []chunk.Advisory{{Kind: "ConfigurationMismatch", Message: "local_infile is OFF"}}

	req := httptest.NewRequest(http.MethodGet, "/notices?nonce="+h.nonce(t, admin, security.ActionGenerate), nil)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[{"kind":"ConfigurationMismatch","message":"local_infile is OFF"}]}`, w.Body.String())
}

func TestMetrics(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
