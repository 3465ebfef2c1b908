package bolt

import (
	"context"

	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/repository"
)

func provide(lc fx.Lifecycle, cfg config.StateConfig) (*Repository, error) {
	repo, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return repo.Close()
		},
	})
	return repo, nil
}

// Module provides the bbolt Repository under the repository ports.
var Module = fx.Options(
	fx.Provide(
		provide,
		func(r *Repository) repository.Options { return r },
		func(r *Repository) repository.StagedRuns { return r },
	),
)
