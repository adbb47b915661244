package main

import (
	"net/http"
	"time"

	"github.com/questx-lab/nftgallery/internal/client"
	"github.com/questx-lab/nftgallery/internal/domain"
	"github.com/questx-lab/nftgallery/internal/middleware"
	"github.com/questx-lab/nftgallery/pkg/kafka"
	"github.com/questx-lab/nftgallery/pkg/router"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx)

	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()
	if err := s.loadMint(); err != nil {
		return err
	}

	profileCaller, err := client.NewProfileCaller(cfg.Profile)
	if err != nil {
		return err
	}

	s.galleryDomain = domain.NewGalleryDomain(s.evaluator, s.catalog, profileCaller, s.mintAttemptRepo)
	s.mintOutcomeDomain = domain.NewMintOutcomeDomain(s.mintAttemptRepo)

	if cfg.Kafka.Addr != "" {
		subscriber, err := kafka.NewSubscriber(
			cfg.Kafka.ClientID+"-recorder",
			[]string{cfg.Kafka.Addr},
			[]string{cfg.Mint.OutcomeTopic},
			s.mintOutcomeDomain.Subscribe,
		)
		if err != nil {
			return err
		}
		defer subscriber.Stop(s.ctx)

		subscriber.Subscribe(s.ctx)
		xcontext.Logger(s.ctx).Infof("Subscribed to topic %s", cfg.Mint.OutcomeTopic)
	} else {
		xcontext.Logger(s.ctx).Warnf("No kafka address, mint history will stay empty")
	}

	s.startPrometheus()
	s.loadRouter()

	s.server = &http.Server{
		Addr:              cfg.ApiServer.Address(),
		Handler:           s.router.Handler(cfg.ApiServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		xcontext.Logger(s.ctx).Errorf("An error occurs when running api server: %v", err)
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Public API.
	router.GET(s.router, "/getCatalog", s.galleryDomain.GetCatalog)
	router.POST(s.router, "/getGallery", s.galleryDomain.GetGallery)
	router.GET(s.router, "/getProfile", s.galleryDomain.GetProfile)
	router.GET(s.router, "/getMintHistory", s.galleryDomain.GetMintHistory)
}
