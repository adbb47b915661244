package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

type BlockchainCaller interface {
	Balance(ctx context.Context, address string) (uint64, error)
	PrepareMint(ctx context.Context, req *model.PrepareMintRequest) (*model.PrepareMintResponse, error)
	SendMint(ctx context.Context, req *model.SendMintRequest) (*model.SendMintResponse, error)
	Close()
}

type blockchainCaller struct {
	client *rpc.Client
}

func NewBlockchainCaller(client *rpc.Client) *blockchainCaller {
	return &blockchainCaller{client: client}
}

func (c *blockchainCaller) Balance(ctx context.Context, address string) (uint64, error) {
	var result uint64
	if err := c.client.CallContext(ctx, &result, c.fname(ctx, "balance"), address); err != nil {
		return 0, toErrorx(err)
	}

	return result, nil
}

func (c *blockchainCaller) PrepareMint(
	ctx context.Context, req *model.PrepareMintRequest,
) (*model.PrepareMintResponse, error) {
	var result model.PrepareMintResponse
	if err := c.client.CallContext(ctx, &result, c.fname(ctx, "prepareMint"), req); err != nil {
		return nil, toErrorx(err)
	}

	return &result, nil
}

func (c *blockchainCaller) SendMint(
	ctx context.Context, req *model.SendMintRequest,
) (*model.SendMintResponse, error) {
	var result model.SendMintResponse
	if err := c.client.CallContext(ctx, &result, c.fname(ctx, "sendMint"), req); err != nil {
		return nil, toErrorx(err)
	}

	return &result, nil
}

func (c *blockchainCaller) Close() {
	c.client.Close()
}

func (c *blockchainCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).Blockchain.RPCName, funcName)
}

// toErrorx restores the errorx code sent by the rpc server.
func toErrorx(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		code := errorx.Code(rpcErr.ErrorCode())
		if code >= errorx.Unknown.Code {
			return errorx.New(code, "%s", rpcErr.Error())
		}
	}

	return err
}
