// Package handler exposes the generator operations as form based HTTP endpoints that
// answer with a {success, data} envelope.
package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/settings"
	"github.com/tigerroll/wpgen/pkg/generator/engine/chunk"
	"github.com/tigerroll/wpgen/pkg/generator/engine/deletion"
	"github.com/tigerroll/wpgen/pkg/generator/security"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "http"

// Response is the envelope of every JSON answer.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Generator runs chunks and reports configuration advisories.
type Generator interface {
	Run(ctx context.Context, req model.GenerationRequest) (model.ChunkReport, error)
	Advisories(ctx context.Context) []chunk.Advisory
}

// Downloader streams staged SQL runs.
type Downloader interface {
	Find(ctx context.Context, key string) (*model.StagedRun, error)
	Filename(run *model.StagedRun) string
	Write(ctx context.Context, w io.Writer, key string) error
}

// Maintenance runs the follow-up operations.
type Maintenance interface {
	UpdateCommentCounts(ctx context.Context) (string, error)
	CacheFlush(ctx context.Context) (string, error)
}

// Deleter removes generated items.
type Deleter interface {
	Run(ctx context.Context) (deletion.Result, error)
}

// Params are the Handler dependencies.
type Params struct {
	fx.In

	Guard       *security.Guard
	Settings    *settings.Store
	Generator   Generator
	Downloader  Downloader
	Maintenance Maintenance
	Deleter     Deleter
	Gatherer    prometheus.Gatherer
}

// Handler serves the generator endpoints.
type Handler struct {
	guard       *security.Guard
	settings    *settings.Store
	generator   Generator
	downloader  Downloader
	maintenance Maintenance
	deleter     Deleter
	gatherer    prometheus.Gatherer
}

// New creates a Handler.
func New(p Params) *Handler {
	return &Handler{
		guard:       p.Guard,
		settings:    p.Settings,
		generator:   p.Generator,
		downloader:  p.Downloader,
		maintenance: p.Maintenance,
		deleter:     p.Deleter,
		gatherer:    p.Gatherer,
	}
}

// Register mounts the endpoints on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/generate", h.Generate)
	r.POST("/download-sql", h.DownloadSQL)
	r.POST("/cache-flush", h.CacheFlush)
	r.POST("/update-comment-counts", h.UpdateCommentCounts)
	r.POST("/delete", h.Delete)
	r.GET("/notices", h.Notices)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

func statusOf(err error) int {
	switch exception.KindOf(err) {
	case exception.KindAuth:
		return http.StatusForbidden
	case exception.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func failure(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	c.JSON(statusOf(err), Response{Success: false, Data: message})
}

// authorize checks the form nonce against action and, when present, the form action.
func (h *Handler) authorize(c *gin.Context, action security.Action) (model.Principal, bool) {
	if a := c.PostForm("action"); a != "" && a != string(action) {
		failure(c, exception.Auth(moduleName, security.MessageExpired), security.MessageExpired)
		return model.Principal{}, false
	}
	nonce := c.PostForm("nonce")
	if nonce == "" {
		nonce = c.Query("nonce")
	}
	p, err := h.guard.Check(nonce, action)
	if err != nil {
		failure(c, err, exception.UserMessage(err))
		return model.Principal{}, false
	}
	return p, true
}

// Generate runs the chunk starting at the posted index with the posted settings.
func (h *Handler) Generate(c *gin.Context) {
	principal, ok := h.authorize(c, security.ActionGenerate)
	if !ok {
		return
	}
	data := c.PostForm("data")
	if err := security.RequireData(data); err != nil {
		failure(c, err, exception.UserMessage(err))
		return
	}

	ctx := c.Request.Context()
	submitted, err := settings.ParseFormData(data)
	if err != nil {
		failure(c, err, exception.UserMessage(err))
		return
	}
	// Browsers leave unchecked boxes out of the form.
	if _, ok := submitted["sql"]; !ok {
		submitted["sql"] = "no"
	}
	index, err := strconv.Atoi(c.DefaultPostForm("index", "0"))
	if err != nil {
		err = exception.Validation(moduleName, "index must be an integer", err)
		failure(c, err, exception.UserMessage(err))
		return
	}
	s, err := h.settings.Resolve(ctx, submitted)
	if err != nil {
		failure(c, err, exception.UserMessage(err))
		return
	}
	if s.Number <= 0 {
		success(c, "Nothing to do.")
		return
	}

	report, err := h.generator.Run(ctx, s.Request(index, principal, c.PostForm("run_id")))
	if err != nil {
		failure(c, err, chunk.Message(report, err))
		return
	}
	success(c, report.Message())
}

// DownloadSQL streams the staged SQL run of the caller as an attachment.
func (h *Handler) DownloadSQL(c *gin.Context) {
	principal, ok := h.authorize(c, security.ActionDownloadSQL)
	if !ok {
		return
	}
	if err := security.RequireData(c.PostForm("data")); err != nil {
		failure(c, err, exception.UserMessage(err))
		return
	}

	ctx := c.Request.Context()
	key := model.StagedRunKey(principal.ID, c.PostForm("run_id"))
	run, err := h.downloader.Find(ctx, key)
	if err != nil {
		failure(c, err, exception.UserMessage(err))
		return
	}

	c.Header("Content-Type", "application/sql")
	c.Header("Content-Disposition", `attachment; filename="`+h.downloader.Filename(run)+`"`)
	c.Status(http.StatusOK)
	if err := h.downloader.Write(ctx, c.Writer, key); err != nil {
		// Headers are already sent.
		_ = c.Error(err)
		logger.Errorf("SQL download of %s failed: %v", key, err)
	}
}

// CacheFlush flushes the object cache.
func (h *Handler) CacheFlush(c *gin.Context) {
	h.maintain(c, security.ActionCacheFlush, h.maintenance.CacheFlush)
}

// UpdateCommentCounts reconciles posts.comment_count.
func (h *Handler) UpdateCommentCounts(c *gin.Context) {
	h.maintain(c, security.ActionUpdateCommentCounts, h.maintenance.UpdateCommentCounts)
}

func (h *Handler) maintain(c *gin.Context, action security.Action, op func(context.Context) (string, error)) {
	if _, ok := h.authorize(c, action); !ok {
		return
	}
	msg, err := op(c.Request.Context())
	if err != nil {
		failure(c, err, exception.Diagnostics(err))
		return
	}
	success(c, msg)
}

// Delete removes every generated item.
func (h *Handler) Delete(c *gin.Context) {
	if _, ok := h.authorize(c, security.ActionDelete); !ok {
		return
	}
	result, err := h.deleter.Run(c.Request.Context())
	if err != nil {
		failure(c, err, exception.Diagnostics(err)+".")
		return
	}
	success(c, result.Message)
}

// Notices lists configuration advisories. Any generate nonce authorizes it.
func (h *Handler) Notices(c *gin.Context) {
	if _, err := h.guard.Check(c.Query("nonce"), security.ActionGenerate); err != nil {
		failure(c, err, exception.UserMessage(err))
		return
	}
	advisories := h.generator.Advisories(c.Request.Context())
	if advisories == nil {
		advisories = []chunk.Advisory{}
	}
	success(c, advisories)
}
