package item

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/component/lorem"
	"github.com/tigerroll/wpgen/pkg/generator/component/randomizer"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
)

// LocalIP is the first entry of every IP pool.
const LocalIP = "127.0.0.1"

// orphanPost stands in for the post pool when there are no posts.
var orphanPost = database.PostRef{ID: 0, PostDate: ZeroDateTime, PostDateGMT: ZeroDateTime}

// postThread is the per-post state: a time cursor and the comment IDs at each depth.
type postThread struct {
	keeper   *TimeKeeper
	comments [][]int64
}

// Comment generates threaded comments spread over existing posts.
type Comment struct {
	base
	env Env

	posts      *randomizer.Randomizer[database.PostRef]
	loggedIn   *randomizer.Randomizer[database.UserRef]
	loggedOut  *randomizer.Randomizer[database.UserRef]
	ips        *randomizer.Randomizer[string]
	withID     bool
	number     int
	commentID  int64
	threads    map[int64]*postThread
	levelTable []int
}

// NewComment builds a comment generator.
func NewComment(ctx context.Context, env Env, req model.GenerationRequest) (Generator, error) {
	cfg := env.Config.Comment

	posts, err := env.Source.RandomPosts(ctx, string(model.ItemPost), max(cfg.RandomPostsCount, 1))
	if err != nil {
		return nil, err
	}
	users, err := env.Source.RandomUsers(ctx, max(cfg.RandomUsersCount, 1))
	if err != nil {
		return nil, err
	}
	lastID, err := env.Source.MaxCommentID(ctx)
	if err != nil {
		return nil, err
	}
	fields := CommentLoadFields
	if req.SQL {
		fields = CommentFields
	}

	return &Comment{
		base: base{
			itemType:    model.ItemComment,
			table:       env.Tables.Comments(),
			markerField: "comment_author_url",
			fields:      fields,
		},
		env:        env,
		posts:      randomizer.New(env.Rand, posts, orphanPost),
		loggedIn:   randomizer.New(env.Rand, users, principalRef(req.Principal)),
		loggedOut:  randomizer.New(env.Rand, anonymousAuthors(env), database.UserRef{}),
		ips:        randomizer.New(env.Rand, randomIPs(env, max(cfg.RandomIPsCount, 1)), LocalIP),
		withID:     !req.SQL,
		number:     req.Number,
		commentID:  lastID,
		threads:    make(map[int64]*postThread),
		levelTable: NestingProbabilities(cfg.NestingPercentage, max(cfg.MaxNestingLevel, 0)),
	}, nil
}

// Generate implements Generator.
func (c *Comment) Generate() Row {
	var author database.UserRef
	if c.env.Rand.IntN(100) < c.env.Config.Comment.LoggedInPercentage {
		author = c.loggedIn.One()
	} else {
		author = c.loggedOut.One()
	}

	post := c.posts.One()
	thread := c.thread(post)
	date := thread.keeper.Advance()
	parent, id := c.attach(thread)

	sentences := c.env.Lorem.Sentences(1 + c.env.Rand.IntN(max(c.env.Config.Comment.MaxSentences, 1)))

	return CommentRow{
		ID:          id,
		WithID:      c.withID,
		PostID:      post.ID,
		Author:      author.DisplayName,
		AuthorEmail: author.Email,
		AuthorURL:   fmt.Sprintf("%scomment-%d", model.Marker, id),
		AuthorIP:    c.ips.One(),
		Date:        FormatIn(date, c.env.location()),
		DateGMT:     FormatGMT(date),
		Content:     strings.Join(sentences, "\n\n"),
		Approved:    "1",
		Agent:       "WordPress",
		Type:        "comment",
		Parent:      parent,
		UserID:      author.ID,
	}
}

// thread returns the state of post, creating it on first use. Comments of a post start
// at the later of its local and GMT dates and advance by steps scaled to the expected
// number of comments per post.
func (c *Comment) thread(post database.PostRef) *postThread {
	if t, ok := c.threads[post.ID]; ok {
		return t
	}

	start := max(ParseIn(post.PostDate, c.env.location()), ParseIn(post.PostDateGMT, time.UTC))
	available := max(c.env.Now().Unix()-start, 0)
	perPost := float64(c.number) / float64(max(c.posts.Count(), 1))
	maxShift := int64(float64(available) / math.Max(perPost, 1))

	t := &postThread{
		keeper:   NewTimeKeeper(start, maxShift, c.env.Rand, c.env.Now),
		comments: make([][]int64, len(c.levelTable)),
	}
	c.threads[post.ID] = t
	return t
}

// attach assigns the next comment ID to thread and returns its parent and the ID.
// The sampled depth falls back to shallower levels until one has a candidate parent.
func (c *Comment) attach(thread *postThread) (parent, id int64) {
	level := c.sampleLevel()
	for level > 0 {
		candidates := thread.comments[level-1]
		if len(candidates) > 0 {
			parent = candidates[c.env.Rand.IntN(len(candidates))]
			break
		}
		level--
	}
	c.commentID++
	thread.comments[level] = append(thread.comments[level], c.commentID)
	return parent, c.commentID
}

// sampleLevel draws a depth from the cumulative probability table.
func (c *Comment) sampleLevel() int {
	r := c.env.Rand.IntN(101)
	cumulative := 0
	for level, p := range c.levelTable {
		cumulative += p
		if r <= cumulative {
			return level
		}
	}
	return len(c.levelTable) - 1
}

// NestingProbabilities returns the percentage of comments expected at each depth
// 0..maxLevel. Depth i is nestingPercentage/100 times as likely as depth i-1.
func NestingProbabilities(nestingPercentage, maxLevel int) []int {
	p := float64(min(max(nestingPercentage, 0), 100)) / 100
	var sum float64
	if p == 1 {
		sum = float64(maxLevel + 1)
	} else {
		sum = (math.Pow(p, float64(maxLevel+1)) - 1) / (p - 1)
	}

	table := make([]int, maxLevel+1)
	for i := range table {
		table[i] = int(math.Round(math.Pow(p, float64(i)) / sum * 100))
	}
	return table
}

func anonymousAuthors(env Env) []database.UserRef {
	names := lorem.Names()
	authors := make([]database.UserRef, len(names))
	for i, name := range names {
		authors[i] = database.UserRef{
			DisplayName: name,
			Email:       strings.ToLower(name) + "@" + env.Config.User.EmailDomain,
		}
	}
	return authors
}

func randomIPs(env Env, count int) []string {
	ips := make([]string, count)
	ips[0] = LocalIP
	for i := 1; i < count; i++ {
		ips[i] = fmt.Sprintf("%d.%d.%d.%d",
			env.Rand.IntN(256), env.Rand.IntN(256), env.Rand.IntN(256), env.Rand.IntN(256))
	}
	return ips
}
