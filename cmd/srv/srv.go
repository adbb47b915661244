package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/nftgallery/config"
	"github.com/questx-lab/nftgallery/internal/client"
	"github.com/questx-lab/nftgallery/internal/domain"
	"github.com/questx-lab/nftgallery/internal/domain/blockchain"
	"github.com/questx-lab/nftgallery/internal/domain/mint"
	"github.com/questx-lab/nftgallery/internal/repository"
	"github.com/questx-lab/nftgallery/migration"
	"github.com/questx-lab/nftgallery/pkg/kafka"
	"github.com/questx-lab/nftgallery/pkg/logger"
	"github.com/questx-lab/nftgallery/pkg/prometheus"
	"github.com/questx-lab/nftgallery/pkg/pubsub"
	"github.com/questx-lab/nftgallery/pkg/router"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/questx-lab/nftgallery/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	mintAttemptRepo repository.MintAttemptRepository

	evaluator *mint.Evaluator
	catalog   *mint.Catalog

	galleryDomain     domain.GalleryDomain
	mintOutcomeDomain domain.MintOutcomeDomain

	redisClient xredis.Client
	publisher   pubsub.Publisher

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewZapLogger(cfg.Log.Level, cfg.Log.JSON))
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: cfg.Profile.Timeout})

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)

	return nil
}

func (s *srv) syncLogger(*cli.Context) error {
	if l, ok := xcontext.Logger(s.ctx).(interface{ Sync() error }); ok {
		// Syncing stderr fails on some terminals, nothing to do about it.
		_ = l.Sync()
	}

	return nil
}

func (s *srv) exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(parseGormLogLevel(cfg.Database.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.mintAttemptRepo = repository.NewMintAttemptRepository()
}

func (s *srv) loadMint() error {
	cfg := xcontext.Configs(s.ctx)

	ruleBook, err := mint.NewRuleBook(cfg.Mint.Rules)
	if err != nil {
		return err
	}

	s.evaluator = mint.NewEvaluator(ruleBook, cfg.Mint.EnforceSupplyCap)
	s.catalog = mint.NewCatalog(cfg.Mint.Catalog)
	return nil
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

// loadPublisher connects to kafka if an address is configured. Without kafka
// the mint outcomes are only logged.
func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Kafka.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("No kafka address, mint outcomes will not be recorded")
		s.publisher = pubsub.NewNopPublisher()
		return
	}

	publisher, err := kafka.NewPublisher(cfg.Kafka.ClientID, []string{cfg.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) newGuard() mint.Guard {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Mint.Guard == "redis" {
		s.loadRedisClient()
		return mint.NewRedisGuard(s.redisClient, cfg.Mint.GuardTTL)
	}

	return mint.NewMemoryGuard()
}

// newTransactionService returns the rpc caller of the blockchain service if
// its endpoint is configured, otherwise it builds transactions in-process.
func (s *srv) newTransactionService() (mint.TransactionService, func(), error) {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Blockchain.Endpoint != "" {
		rpcClient, err := rpc.DialContext(s.ctx, cfg.Blockchain.Endpoint)
		if err != nil {
			return nil, nil, err
		}

		caller := client.NewBlockchainCaller(rpcClient)
		return caller, caller.Close, nil
	}

	solanaClient := blockchain.NewSolanaClient(cfg.Solana.RPCEndpoint, cfg.Solana.Commitment)
	manager := blockchain.NewTransactionManager(s.ctx, solanaClient)
	return manager, func() {}, nil
}

func (s *srv) startPrometheus() {
	cfg := xcontext.Configs(s.ctx)

	go func() {
		httpSrv := &http.Server{
			Addr:              cfg.PrometheusServer.Address(),
			Handler:           prometheus.NewHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		xcontext.Logger(s.ctx).Infof("Starting prometheus on port: %s", cfg.PrometheusServer.Port)
		if err := httpSrv.ListenAndServe(); err != nil {
			xcontext.Logger(s.ctx).Errorf("Server prometheus stop: %v", err)
		}
	}()
}
