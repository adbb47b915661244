package blockchain

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/questx-lab/nftgallery/config"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type mockSolanaClient struct {
	sent    []types.Transaction
	sendErr error
}

func (c *mockSolanaClient) GetBalance(ctx context.Context, base58Addr string) (uint64, error) {
	return 42, nil
}

func (c *mockSolanaClient) GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error) {
	return rpc.GetLatestBlockhashValue{Blockhash: "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"}, nil
}

func (c *mockSolanaClient) SendTransaction(ctx context.Context, tx types.Transaction) (string, error) {
	c.sent = append(c.sent, tx)
	if c.sendErr != nil {
		return "", c.sendErr
	}
	return "tx-signature", nil
}

func newTestManager(t *testing.T, ttl time.Duration) (*TransactionManager, *mockSolanaClient) {
	cfg := config.Default()
	cfg.Solana.ProgramID = types.NewAccount().PublicKey.ToBase58()
	cfg.Solana.PendingTTL = ttl

	client := &mockSolanaClient{}
	return NewTransactionManager(testutil.MockContextWithConfigs(cfg), client), client
}

func prepareRequest(wallet types.Account) *model.PrepareMintRequest {
	return &model.PrepareMintRequest{
		WalletAddress: wallet.PublicKey.ToBase58(),
		Args: model.CreateAssetArgs{
			Name:          "dscvr_points",
			FollowerCount: 1,
			Username:      "alice",
		},
	}
}

func TestTransactionManager_Mint(t *testing.T) {
	ctx := context.Background()
	manager, client := newTestManager(t, time.Minute)
	wallet := types.NewAccount()

	prepared, err := manager.PrepareMint(ctx, prepareRequest(wallet))
	require.NoError(t, err)
	require.NotEmpty(t, prepared.RequestID)
	require.NotEmpty(t, prepared.AssetAddress)

	resp, err := manager.SendMint(ctx, &model.SendMintRequest{
		RequestID: prepared.RequestID,
		Signature: wallet.Sign(prepared.Message),
	})
	require.NoError(t, err)
	require.Equal(t, "tx-signature", resp.Signature)
	require.Equal(t, prepared.AssetAddress, resp.AssetAddress)

	require.Len(t, client.sent, 1)
	tx := client.sent[0]
	require.Len(t, tx.Signatures, 2)

	// The fee payer signs first, every signature must match its account.
	require.Equal(t, wallet.PublicKey, tx.Message.Accounts[0])
	for i, sig := range tx.Signatures {
		require.True(t, ed25519.Verify(tx.Message.Accounts[i][:], prepared.Message, sig))
	}

	// A request id cannot be used twice.
	_, err = manager.SendMint(ctx, &model.SendMintRequest{
		RequestID: prepared.RequestID,
		Signature: wallet.Sign(prepared.Message),
	})
	require.True(t, errorx.Is(err, errorx.NotFound))
	require.Len(t, client.sent, 1)
}

func TestTransactionManager_InvalidSignature(t *testing.T) {
	ctx := context.Background()
	manager, client := newTestManager(t, time.Minute)
	wallet := types.NewAccount()

	prepared, err := manager.PrepareMint(ctx, prepareRequest(wallet))
	require.NoError(t, err)

	_, err = manager.SendMint(ctx, &model.SendMintRequest{
		RequestID: prepared.RequestID,
		Signature: types.NewAccount().Sign(prepared.Message),
	})
	require.True(t, errorx.Is(err, errorx.InvalidSignature))
	require.Empty(t, client.sent)
}

func TestTransactionManager_Expired(t *testing.T) {
	ctx := context.Background()
	manager, client := newTestManager(t, -time.Second)
	wallet := types.NewAccount()

	prepared, err := manager.PrepareMint(ctx, prepareRequest(wallet))
	require.NoError(t, err)

	_, err = manager.SendMint(ctx, &model.SendMintRequest{
		RequestID: prepared.RequestID,
		Signature: wallet.Sign(prepared.Message),
	})
	require.True(t, errorx.Is(err, errorx.MintExpired))
	require.Empty(t, client.sent)
}

func TestTransactionManager_SendFailed(t *testing.T) {
	ctx := context.Background()
	manager, client := newTestManager(t, time.Minute)
	client.sendErr = errors.New("insufficient lamports")
	wallet := types.NewAccount()

	prepared, err := manager.PrepareMint(ctx, prepareRequest(wallet))
	require.NoError(t, err)

	_, err = manager.SendMint(ctx, &model.SendMintRequest{
		RequestID: prepared.RequestID,
		Signature: wallet.Sign(prepared.Message),
	})
	require.True(t, errorx.Is(err, errorx.MintSubmissionFailed))
	require.Len(t, client.sent, 1)
}

func TestTransactionManager_InvalidInput(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t, time.Minute)

	_, err := manager.PrepareMint(ctx, &model.PrepareMintRequest{WalletAddress: "invalid"})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = manager.Balance(ctx, "invalid")
	require.True(t, errorx.Is(err, errorx.BadRequest))

	balance, err := manager.Balance(ctx, types.NewAccount().PublicKey.ToBase58())
	require.NoError(t, err)
	require.Equal(t, uint64(42), balance)
}
