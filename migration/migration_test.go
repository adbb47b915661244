package migration

import (
	"context"
	"testing"

	"github.com/questx-lab/nftgallery/internal/entity"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAutoMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ctx := xcontext.WithDB(context.Background(), db)
	require.NoError(t, Migrators["auto"](ctx))
	require.True(t, db.Migrator().HasTable(&entity.MintAttempt{}))
}
