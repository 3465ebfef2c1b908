package item_test

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/component/item"
	"github.com/tigerroll/wpgen/pkg/generator/component/lorem"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/test"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

var principal = model.Principal{ID: 1, Login: "admin", DisplayName: "Site Admin", Email: "admin@example.com"}

func newEnv(store *test.MockStore) item.Env {
	rng := rand.New(rand.NewPCG(42, 99))
	cfg := config.NewConfig().WPGen.Generator
	cfg.User.BcryptCost = 4
	return item.Env{
		Source:   store,
		Lorem:    lorem.New(rng),
		Rand:     rng,
		Now:      test.FixedClock(now),
		Location: time.UTC,
		Config:   cfg,
		Tables:   model.Tables{Prefix: "wp_"},
	}
}

func request(t model.ItemType, number, index int) model.GenerationRequest {
	return model.GenerationRequest{ItemType: t, Number: number, ChunkSize: number, Index: index, Principal: principal}
}

func parse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(item.MySQLTimeFormat, value, time.UTC)
	require.NoError(t, err, value)
	return ts
}

func TestNewShift(t *testing.T) {
	shift := item.NewShift(1000, model.GenerationRequest{Number: 10, Index: 0})
	assert.Equal(t, item.Shift{Initial: 1000, Max: 100}, shift)

	shift = item.NewShift(1000, model.GenerationRequest{Number: 10, Index: 4})
	assert.Equal(t, item.Shift{Initial: 600, Max: 100}, shift)
}

func TestTimeKeeper_NeverInFuture(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	k := item.NewTimeKeeper(now.Unix()-100, 50, rng, test.FixedClock(now))

	prev := k.Unix()
	for i := 0; i < 100; i++ {
		next := k.Advance()
		assert.GreaterOrEqual(t, next, prev)
		assert.LessOrEqual(t, next, now.Unix())
		prev = next
	}
	assert.Equal(t, now.Unix(), k.Unix())
}

func TestTimeKeeper_ZeroStaysZero(t *testing.T) {
	k := item.NewTimeKeeper(0, 1000, rand.New(rand.NewPCG(1, 2)), test.FixedClock(now))
	assert.Zero(t, k.Advance())
	assert.Equal(t, item.ZeroDateTime, item.FormatGMT(k.Unix()))
	assert.Zero(t, item.ParseIn(item.ZeroDateTime, time.UTC))
}

func TestFormatIn_UsesLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01 14:00:00", item.FormatIn(now.Unix(), berlin))
	assert.Equal(t, "2025-06-01 12:00:00", item.FormatGMT(now.Unix()))
	assert.Equal(t, now.Unix(), item.ParseIn("2025-06-01 14:00:00", berlin))
}

func TestRegistry(t *testing.T) {
	reg := item.DefaultRegistry()
	assert.Equal(t, []model.ItemType{model.ItemComment, model.ItemPage, model.ItemPost, model.ItemUser}, reg.Types())

	_, err := reg.New(context.Background(), newEnv(new(test.MockStore)), request("attachment", 1, 0))
	assert.ErrorIs(t, err, exception.ErrValidation)
}

func TestPost_Generate(t *testing.T) {
	store := new(test.MockStore)
	users := []database.UserRef{{ID: 5}, {ID: 6}, {ID: 7}}
	store.On("RandomUsers", testify_mock.Anything, 1000).Return(users, nil)

	gen, err := item.NewPost(context.Background(), newEnv(store), request(model.ItemPost, 50, 0))
	require.NoError(t, err)

	assert.Equal(t, "wp_posts", gen.Table())
	assert.Equal(t, "guid", gen.MarkerField())
	assert.Equal(t, item.PostFields, gen.Fields())

	earliest := now.Add(-time.Duration(config.YearInSeconds) * time.Second)
	for i := 0; i < 50; i++ {
		row := gen.Generate().(item.PostRow)
		assert.Len(t, row.Values(), len(gen.Fields()))

		assert.True(t, strings.HasPrefix(row.GUID, model.Marker+row.Name))
		assert.Contains(t, []int64{5, 6, 7}, row.Author)
		assert.Equal(t, "post", row.Type)
		assert.NotContains(t, row.Title, ".")
		assert.LessOrEqual(t, len(row.Excerpt), 100)
		assert.True(t, strings.HasPrefix(row.Content, row.Excerpt))
		assert.Contains(t, row.Content, "\n\n")

		date := parse(t, row.DateGMT)
		modified := parse(t, row.ModifiedGMT)
		assert.False(t, date.After(now))
		assert.False(t, date.Before(earliest))
		assert.False(t, modified.Before(date))
		assert.Equal(t, row.DateGMT, row.Date)
	}
	store.AssertExpectations(t)
}

func TestPage_FallsBackToPrincipal(t *testing.T) {
	store := new(test.MockStore)
	store.On("RandomUsers", testify_mock.Anything, 1000).Return(nil, nil)

	gen, err := item.NewPage(context.Background(), newEnv(store), request(model.ItemPage, 3, 0))
	require.NoError(t, err)

	row := gen.Generate().(item.PostRow)
	assert.Equal(t, principal.ID, row.Author)
	assert.Equal(t, "page", row.Type)
	assert.Equal(t, model.ItemPage, gen.Type())
}

func TestPost_PropagatesStoreError(t *testing.T) {
	store := new(test.MockStore)
	store.On("RandomUsers", testify_mock.Anything, 1000).Return(nil, exception.Storage("database", "down", nil))

	_, err := item.NewPost(context.Background(), newEnv(store), request(model.ItemPost, 3, 0))
	assert.ErrorIs(t, err, exception.ErrStorage)
}
