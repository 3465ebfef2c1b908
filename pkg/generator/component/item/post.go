package item

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/component/randomizer"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
)

const excerptLength = 100

// Post generates posts and pages.
type Post struct {
	base
	env     Env
	authors *randomizer.Randomizer[database.UserRef]
	keeper  *TimeKeeper
}

// NewPost builds a post generator.
func NewPost(ctx context.Context, env Env, req model.GenerationRequest) (Generator, error) {
	return newPost(ctx, env, req, model.ItemPost)
}

// NewPage builds a page generator.
func NewPage(ctx context.Context, env Env, req model.GenerationRequest) (Generator, error) {
	return newPost(ctx, env, req, model.ItemPage)
}

func newPost(ctx context.Context, env Env, req model.GenerationRequest, itemType model.ItemType) (*Post, error) {
	users, err := env.Source.RandomUsers(ctx, max(env.Config.Post.RandomUsersCount, 1))
	if err != nil {
		return nil, err
	}

	shift := NewShift(int64(env.Config.InitialTimeShift), req)
	start := env.Now().Unix() - shift.Initial

	return &Post{
		base: base{
			itemType:    itemType,
			table:       env.Tables.Posts(),
			markerField: "guid",
			fields:      PostFields,
		},
		env:     env,
		authors: randomizer.New(env.Rand, users, principalRef(req.Principal)),
		keeper:  NewTimeKeeper(start, shift.Max, env.Rand, env.Now),
	}, nil
}

// Generate implements Generator.
func (p *Post) Generate() Row {
	content := strings.Join(p.env.Lorem.Paragraphs(max(p.env.Config.Post.ParagraphsInPost, 1)), "\n\n")
	title := strings.TrimSuffix(p.env.Lorem.Sentence(max(p.env.Config.Post.WordsInTitle, 1), true), ".")
	name := strings.ReplaceAll(strings.ToLower(title), " ", "-") + "-" + uniqueSuffix()

	date := p.keeper.Advance()
	modified := p.keeper.Advance()
	loc := p.env.location()

	return PostRow{
		Author:      p.authors.One().ID,
		Date:        FormatIn(date, loc),
		DateGMT:     FormatGMT(date),
		Content:     content,
		Title:       title,
		Excerpt:     content[:min(excerptLength, len(content))],
		Name:        name,
		Modified:    FormatIn(modified, loc),
		ModifiedGMT: FormatGMT(modified),
		GUID:        model.Marker + name,
		Type:        string(p.itemType),
	}
}

// uniqueSuffix keeps slugs distinct when titles repeat.
func uniqueSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
