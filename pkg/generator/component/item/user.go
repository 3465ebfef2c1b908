package item

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tigerroll/wpgen/pkg/generator/component/lorem"
	"github.com/tigerroll/wpgen/pkg/generator/component/randomizer"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

var trailingNumber = regexp.MustCompile(`^(.+?)(\d+)$`)

// User generates users with unique logins.
type User struct {
	base
	env      Env
	names    *randomizer.Randomizer[string]
	password string
	taken    map[string]struct{}
	keeper   *TimeKeeper
}

// NewUser builds a user generator. All users of the chunk share one hashed password.
func NewUser(ctx context.Context, env Env, req model.GenerationRequest) (Generator, error) {
	logins, err := env.Source.UserLogins(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(logins))
	for _, l := range logins {
		taken[l] = struct{}{}
	}

	cost := env.Config.User.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		return nil, exception.NewGeneratorError(moduleName, exception.KindIO, "failed to hash the user password", err)
	}

	shift := NewShift(int64(env.Config.InitialTimeShift), req)

	return &User{
		base: base{
			itemType:    model.ItemUser,
			table:       env.Tables.Users(),
			markerField: "user_url",
			fields:      UserFields,
		},
		env:      env,
		names:    randomizer.New(env.Rand, lorem.Names(), "user"),
		password: string(hash),
		taken:    taken,
		keeper:   NewTimeKeeper(env.Now().Unix()-shift.Initial, shift.Max, env.Rand, env.Now),
	}, nil
}

// Generate implements Generator.
func (u *User) Generate() Row {
	name := u.names.One()
	login := u.claim(strings.ToLower(name))
	registered := u.keeper.Advance()

	return UserRow{
		Login:       login,
		Pass:        u.password,
		Nicename:    login,
		Email:       login + "@" + u.env.Config.User.EmailDomain,
		URL:         model.Marker + login,
		Registered:  FormatGMT(registered),
		DisplayName: name,
	}
}

// claim returns the first free login derived from login and marks it as taken.
func (u *User) claim(login string) string {
	for {
		if _, ok := u.taken[login]; !ok {
			break
		}
		login = NextLogin(login)
	}
	u.taken[login] = struct{}{}
	return login
}

// NextLogin derives the next candidate for a taken login: a trailing number is
// incremented, otherwise "_1" is appended.
func NextLogin(login string) string {
	if m := trailingNumber.FindStringSubmatch(login); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return m[1] + strconv.Itoa(n+1)
		}
	}
	return login + "_1"
}
