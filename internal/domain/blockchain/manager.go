package blockchain

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/nftgallery/internal/domain/blockchain/solana"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

// SolanaClient is the part of the solana rpc client used to mint. It is
// satisfied by *client.Client of the sdk.
type SolanaClient interface {
	GetBalance(ctx context.Context, base58Addr string) (uint64, error)
	GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error)
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
}

type pendingMint struct {
	wallet    common.PublicKey
	asset     types.Account
	message   types.Message
	raw       []byte
	expiredAt time.Time
}

// TransactionManager builds create_asset transactions in two phases. The
// asset keypair never leaves this process: PrepareMint signs with it and
// keeps the transaction until the wallet signature arrives in SendMint.
//
// Every exported method is served through the rpc server.
type TransactionManager struct {
	rootCtx context.Context
	client  SolanaClient
	pending *xsync.MapOf[string, pendingMint]
}

func NewTransactionManager(ctx context.Context, client SolanaClient) *TransactionManager {
	return &TransactionManager{
		rootCtx: ctx,
		client:  client,
		pending: xsync.NewMapOf[pendingMint](),
	}
}

func (m *TransactionManager) Balance(ctx context.Context, address string) (uint64, error) {
	if _, err := solana.ParsePublicKey(address); err != nil {
		return 0, errorx.New(errorx.BadRequest, "Invalid wallet address")
	}

	balance, err := m.client.GetBalance(ctx, address)
	if err != nil {
		xcontext.Logger(m.rootCtx).Errorf("Cannot get balance of %s: %v", address, err)
		return 0, errorx.New(errorx.Unavailable, "Cannot get balance")
	}

	return balance, nil
}

func (m *TransactionManager) PrepareMint(
	ctx context.Context, req *model.PrepareMintRequest,
) (*model.PrepareMintResponse, error) {
	m.sweep()

	cfg := xcontext.Configs(m.rootCtx).Solana

	wallet, err := solana.ParsePublicKey(req.WalletAddress)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
	}

	programID, err := solana.ParsePublicKey(cfg.ProgramID)
	if err != nil {
		xcontext.Logger(m.rootCtx).Errorf("Invalid program id: %v", err)
		return nil, errorx.Unknown
	}

	registry, err := solana.ParsePublicKey(cfg.RegistryAccount)
	if err != nil {
		xcontext.Logger(m.rootCtx).Errorf("Invalid registry account: %v", err)
		return nil, errorx.Unknown
	}

	extraAccounts := []common.PublicKey{}
	for _, s := range cfg.ExtraAccounts {
		extra, err := solana.ParsePublicKey(s)
		if err != nil {
			xcontext.Logger(m.rootCtx).Errorf("Invalid extra account: %v", err)
			return nil, errorx.Unknown
		}
		extraAccounts = append(extraAccounts, extra)
	}

	asset := types.NewAccount()
	instruction, err := solana.CreateAsset(solana.CreateAssetParam{
		ProgramID:     programID,
		Signer:        wallet,
		Payer:         wallet,
		Asset:         asset.PublicKey,
		Registry:      registry,
		ExtraAccounts: extraAccounts,
		Args:          req.Args,
	})
	if err != nil {
		xcontext.Logger(m.rootCtx).Errorf("Cannot build create_asset instruction: %v", err)
		return nil, errorx.Unknown
	}

	recent, err := m.client.GetLatestBlockhash(ctx)
	if err != nil {
		xcontext.Logger(m.rootCtx).Errorf("Cannot get latest blockhash: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the blockchain")
	}

	message := types.NewMessage(types.NewMessageParam{
		FeePayer:        wallet,
		RecentBlockhash: recent.Blockhash,
		Instructions:    []types.Instruction{instruction},
	})

	raw, err := message.Serialize()
	if err != nil {
		xcontext.Logger(m.rootCtx).Errorf("Cannot serialize message: %v", err)
		return nil, errorx.Unknown
	}

	requestID := uuid.NewString()
	expiredAt := time.Now().Add(cfg.PendingTTL)
	m.pending.Store(requestID, pendingMint{
		wallet:    wallet,
		asset:     asset,
		message:   message,
		raw:       raw,
		expiredAt: expiredAt,
	})

	return &model.PrepareMintResponse{
		RequestID:    requestID,
		Message:      raw,
		AssetAddress: asset.PublicKey.ToBase58(),
		ExpiredAt:    expiredAt,
	}, nil
}

// SendMint submits the prepared transaction. A request id can be used only
// once, even if the submission fails.
func (m *TransactionManager) SendMint(
	ctx context.Context, req *model.SendMintRequest,
) (*model.SendMintResponse, error) {
	pending, ok := m.pending.LoadAndDelete(req.RequestID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found prepared mint %s", req.RequestID)
	}

	if time.Now().After(pending.expiredAt) {
		return nil, errorx.New(errorx.MintExpired, "The prepared mint has expired")
	}

	if !ed25519.Verify(pending.wallet[:], pending.raw, req.Signature) {
		return nil, errorx.New(errorx.InvalidSignature, "Invalid wallet signature")
	}

	signatures, err := orderSignatures(pending, req.Signature)
	if err != nil {
		xcontext.Logger(m.rootCtx).Errorf("Cannot order signatures: %v", err)
		return nil, errorx.Unknown
	}

	txSignature, err := m.client.SendTransaction(ctx, types.Transaction{
		Signatures: signatures,
		Message:    pending.message,
	})
	if err != nil {
		xcontext.Logger(m.rootCtx).Errorf("Cannot send create_asset transaction: %v", err)
		return nil, errorx.New(errorx.MintSubmissionFailed, "Cannot send transaction: %v", err)
	}

	return &model.SendMintResponse{
		Signature:    txSignature,
		AssetAddress: pending.asset.PublicKey.ToBase58(),
	}, nil
}

// orderSignatures places each signature at the position of its signer in the
// message account list.
func orderSignatures(pending pendingMint, walletSignature []byte) ([]types.Signature, error) {
	n := int(pending.message.Header.NumRequireSignatures)
	if n > len(pending.message.Accounts) {
		return nil, fmt.Errorf("message requires %d signatures but has %d accounts",
			n, len(pending.message.Accounts))
	}

	signatures := make([]types.Signature, 0, n)
	for _, account := range pending.message.Accounts[:n] {
		switch account {
		case pending.wallet:
			signatures = append(signatures, walletSignature)
		case pending.asset.PublicKey:
			signatures = append(signatures, pending.asset.Sign(pending.raw))
		default:
			return nil, fmt.Errorf("unknown signer %s", account.ToBase58())
		}
	}

	return signatures, nil
}

func (m *TransactionManager) sweep() {
	now := time.Now()
	m.pending.Range(func(key string, value pendingMint) bool {
		if now.After(value.expiredAt) {
			m.pending.Delete(key)
		}
		return true
	})
}
