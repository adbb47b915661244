package testutil

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/questx-lab/nftgallery/config"
	"github.com/questx-lab/nftgallery/migration"
	"github.com/questx-lab/nftgallery/pkg/logger"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context with the default configs, a nop logger and
// an empty in-memory database. Every call gets its own database.
func MockContext() context.Context {
	return MockContextWithConfigs(config.Default())
}

func MockContextWithConfigs(cfg config.Configs) context.Context {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithSnowFlake(ctx, node)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}
