package main

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/nftgallery/internal/domain/blockchain"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startBlockchain(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx)

	solanaClient := blockchain.NewSolanaClient(cfg.Solana.RPCEndpoint, cfg.Solana.Commitment)
	manager := blockchain.NewTransactionManager(s.ctx, solanaClient)

	s.startPrometheus()

	rpcHandler := rpc.NewServer()
	defer rpcHandler.Stop()
	if err := rpcHandler.RegisterName(cfg.Blockchain.RPCName, manager); err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot register transaction manager: %v", err)
		return err
	}

	httpSrv := &http.Server{
		Handler:           rpcHandler,
		Addr:              cfg.Blockchain.Address(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	xcontext.Logger(s.ctx).Infof("Started rpc server of blockchain on port: %s", cfg.Blockchain.Port)
	if err := httpSrv.ListenAndServe(); err != nil {
		xcontext.Logger(s.ctx).Errorf("An error occurs when running rpc server: %v", err)
		return err
	}

	return nil
}
