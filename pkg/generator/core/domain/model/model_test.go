package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
)

func TestPlan_PartitionsTotal(t *testing.T) {
	req := model.GenerationRequest{ItemType: model.ItemPost, Number: 250, ChunkSize: 100}

	var counts []int
	for req.Index = 0; req.Index < req.Number; req.Index += req.ChunkSize {
		require.NoError(t, req.Validate())
		plan := model.Plan(req)
		assert.Equal(t, 3, plan.Steps)
		assert.Equal(t, req.Index/100+1, plan.Step)
		counts = append(counts, plan.Count)
	}
	assert.Equal(t, []int{100, 100, 50}, counts)
}

func TestPlan_GeneratedNeverExceedsTotal(t *testing.T) {
	plan := model.Plan(model.GenerationRequest{Number: 250, ChunkSize: 100, Index: 200})
	assert.Equal(t, 250, plan.Generated)

	plan = model.Plan(model.GenerationRequest{Number: 250, ChunkSize: 100, Index: 100})
	assert.Equal(t, 200, plan.Generated)
}

func TestGenerationRequest_Validate(t *testing.T) {
	base := model.GenerationRequest{ItemType: model.ItemComment, Number: 10, ChunkSize: 5}

	bad := []model.GenerationRequest{
		func() model.GenerationRequest { r := base; r.ChunkSize = 0; return r }(),
		func() model.GenerationRequest { r := base; r.Index = 10; return r }(),
		func() model.GenerationRequest { r := base; r.Index = -1; return r }(),
		func() model.GenerationRequest { r := base; r.Number = 0; return r }(),
		func() model.GenerationRequest { r := base; r.ItemType = "attachment"; return r }(),
	}
	for _, r := range bad {
		assert.Error(t, r.Validate(), "%+v", r)
	}
	assert.NoError(t, base.Validate())
}

func TestParseItemType(t *testing.T) {
	got, err := model.ParseItemType(" Page ")
	require.NoError(t, err)
	assert.Equal(t, model.ItemPage, got)

	_, err = model.ParseItemType("revision")
	assert.ErrorContains(t, err, "comment, page, post, user")
}

func TestChunkReport_Message(t *testing.T) {
	r := model.ChunkReport{
		Plan:     model.ChunkPlan{Step: 2, Steps: 3, Generated: 100000},
		Total:    250000,
		Generate: 1500 * time.Millisecond,
		Store:    250 * time.Millisecond,
	}
	assert.Equal(t,
		"Step 2/3. 100,000/250,000 items generated. Time used: (generate: 1.500 + store: 0.250) = 1.750 sec.",
		r.Message())
	assert.Equal(t, "Step 1/3. Error encountered: disk full.", model.FailureMessage(model.ChunkPlan{Step: 1, Steps: 3}, "disk full"))
	assert.Equal(t, "1,234,567", model.FormatNumber(1234567))
}

func TestTables(t *testing.T) {
	tables := model.Tables{Prefix: "wp_"}
	assert.Equal(t, "wp_posts", tables.Posts())
	assert.Equal(t, "wp_comments", tables.Comments())
	assert.Equal(t, "wp_users", tables.Users())
}
