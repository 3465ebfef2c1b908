package item_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/component/item"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/test"
)

func TestNestingProbabilities(t *testing.T) {
	assert.Equal(t, []int{57, 29, 14}, item.NestingProbabilities(50, 2))
	assert.Equal(t, []int{100, 0, 0}, item.NestingProbabilities(0, 2))
	assert.Equal(t, []int{33, 33, 33}, item.NestingProbabilities(100, 2))
	assert.Equal(t, []int{100}, item.NestingProbabilities(50, 0))
}

func TestComment_WithoutPostsUsesOrphanPost(t *testing.T) {
	store := new(test.MockStore)
	store.On("RandomPosts", testify_mock.Anything, "post", 1000).Return(nil, nil)
	store.On("RandomUsers", testify_mock.Anything, 1000).Return(nil, nil)
	store.On("MaxCommentID", testify_mock.Anything).Return(int64(0), nil)

	gen, err := item.NewComment(context.Background(), newEnv(store), request(model.ItemComment, 20, 0))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		row := gen.Generate().(item.CommentRow)
		assert.Zero(t, row.PostID)
		assert.Equal(t, item.ZeroDateTime, row.Date)
		assert.Equal(t, item.ZeroDateTime, row.DateGMT)
		assert.True(t, strings.HasPrefix(row.AuthorURL, model.Marker))
	}
	store.AssertExpectations(t)
}

func TestComment_ThreadingInvariants(t *testing.T) {
	posts := []database.PostRef{
		{ID: 10, PostDate: "2025-01-01 00:00:00", PostDateGMT: "2025-01-01 00:00:00"},
		{ID: 11, PostDate: "2025-03-01 00:00:00", PostDateGMT: "2025-03-01 00:00:00"},
	}
	store := new(test.MockStore)
	store.On("RandomPosts", testify_mock.Anything, "post", 1000).Return(posts, nil)
	store.On("RandomUsers", testify_mock.Anything, 1000).Return([]database.UserRef{{ID: 3, DisplayName: "Jo", Email: "jo@example.com"}}, nil)
	store.On("MaxCommentID", testify_mock.Anything).Return(int64(100), nil)

	env := newEnv(store)
	env.Config.Comment.LoggedInPercentage = 50
	gen, err := item.NewComment(context.Background(), env, request(model.ItemComment, 500, 0))
	require.NoError(t, err)
	assert.Equal(t, item.CommentLoadFields, gen.Fields())
	assert.Equal(t, "wp_comments", gen.Table())

	type node struct {
		post  int64
		depth int
	}
	nodes := map[int64]node{}
	postDates := map[int64]string{10: "2025-01-01 00:00:00", 11: "2025-03-01 00:00:00"}
	lastDate := map[int64]string{}
	loggedIn := 0

	for i := 0; i < 500; i++ {
		id := int64(101 + i)
		row := gen.Generate().(item.CommentRow)
		values := row.Values()
		require.Len(t, values, len(item.CommentLoadFields))
		assert.Equal(t, id, row.ID)
		assert.Equal(t, id, values[0])

		depth := 0
		if row.Parent != 0 {
			parent, ok := nodes[row.Parent]
			require.True(t, ok, "parent %d must be generated earlier", row.Parent)
			assert.Equal(t, row.PostID, parent.post)
			depth = parent.depth + 1
		}
		assert.LessOrEqual(t, depth, env.Config.Comment.MaxNestingLevel)
		nodes[id] = node{post: row.PostID, depth: depth}

		assert.GreaterOrEqual(t, row.DateGMT, postDates[row.PostID])
		assert.GreaterOrEqual(t, row.DateGMT, lastDate[row.PostID])
		assert.LessOrEqual(t, row.DateGMT, "2025-06-01 12:00:00")
		lastDate[row.PostID] = row.DateGMT

		assert.Equal(t, "1", row.Approved)
		assert.Equal(t, "comment", row.Type)
		assert.Equal(t, "WordPress", row.Agent)
		assert.Equal(t, 4, strings.Count(row.AuthorIP, ".")+1)
		if row.UserID == 3 {
			loggedIn++
		} else {
			assert.Zero(t, row.UserID)
			assert.NotEmpty(t, row.Author)
		}
	}
	assert.Greater(t, loggedIn, 0)
	assert.Less(t, loggedIn, 500)
}

func TestComment_DownloadModeLeavesIDToTheDatabase(t *testing.T) {
	store := new(test.MockStore)
	store.On("RandomPosts", testify_mock.Anything, "post", 1000).Return(nil, nil)
	store.On("RandomUsers", testify_mock.Anything, 1000).Return(nil, nil)
	store.On("MaxCommentID", testify_mock.Anything).Return(int64(7), nil)

	req := request(model.ItemComment, 2, 0)
	req.SQL = true
	gen, err := item.NewComment(context.Background(), newEnv(store), req)
	require.NoError(t, err)
	assert.Equal(t, item.CommentFields, gen.Fields())

	row := gen.Generate().(item.CommentRow)
	assert.Equal(t, int64(8), row.ID)
	assert.Len(t, row.Values(), len(item.CommentFields))
	assert.Equal(t, model.Marker+"comment-8", row.AuthorURL)
}
