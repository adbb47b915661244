package blockchain

import (
	"context"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

// commitmentClient reads and simulates at the configured commitment instead
// of the node default.
type commitmentClient struct {
	client     *client.Client
	commitment rpc.Commitment
}

func NewSolanaClient(endpoint, commitment string) *commitmentClient {
	return &commitmentClient{
		client:     client.NewClient(endpoint),
		commitment: rpc.Commitment(commitment),
	}
}

func (c *commitmentClient) GetBalance(ctx context.Context, base58Addr string) (uint64, error) {
	return c.client.GetBalanceWithConfig(ctx, base58Addr, client.GetBalanceConfig{
		Commitment: c.commitment,
	})
}

func (c *commitmentClient) GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error) {
	return c.client.GetLatestBlockhashWithConfig(ctx, client.GetLatestBlockhashConfig{
		Commitment: c.commitment,
	})
}

func (c *commitmentClient) SendTransaction(ctx context.Context, tx types.Transaction) (string, error) {
	return c.client.SendTransactionWithConfig(ctx, tx, client.SendTransactionConfig{
		PreflightCommitment: c.commitment,
	})
}
