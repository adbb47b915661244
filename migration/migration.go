package migration

import (
	"context"

	"github.com/questx-lab/nftgallery/internal/entity"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

// Migrators contains the named migrations which can be run with the migrate
// command. "auto" brings the schema up to date with the current entities.
var Migrators = map[string]func(context.Context) error{
	"auto": AutoMigrate,
}

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.MintAttempt{},
	)
}
