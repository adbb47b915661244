package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

// keypairConnector is a wallet backed by a solana-keygen keypair file. The
// file is only read on Connect.
type keypairConnector struct {
	path string

	mutex   sync.RWMutex
	account *types.Account
}

func NewKeypairConnector(path string) *keypairConnector {
	return &keypairConnector{path: path}
}

func (c *keypairConnector) Address() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.account == nil {
		return ""
	}

	return c.account.PublicKey.ToBase58()
}

func (c *keypairConnector) Connect(ctx context.Context) error {
	if c.path == "" {
		return errorx.New(errorx.WalletNotConnected, "No keypair file is configured")
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read keypair file: %v", err)
		return errorx.New(errorx.WalletNotConnected, "Cannot read keypair file")
	}

	key, err := decodeKeypairJSON(data)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode keypair file: %v", err)
		return errorx.New(errorx.WalletNotConnected, "Invalid keypair file")
	}

	account, err := types.AccountFromBytes(key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load account from keypair: %v", err)
		return errorx.New(errorx.WalletNotConnected, "Invalid keypair file")
	}

	c.mutex.Lock()
	c.account = &account
	c.mutex.Unlock()

	xcontext.Logger(ctx).Infof("Connected wallet %s", account.PublicKey.ToBase58())
	return nil
}

func (c *keypairConnector) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.account == nil {
		return nil, errorx.New(errorx.WalletNotConnected, "Please connect your wallet first.")
	}

	return c.account.Sign(msg), nil
}

// decodeKeypairJSON accepts the solana-keygen format, a json array of the 64
// secret key bytes.
func decodeKeypairJSON(data []byte) ([]byte, error) {
	var key []byte
	if err := json.Unmarshal(data, &key); err == nil && len(key) == ed25519.PrivateKeySize {
		return key, nil
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("cannot unmarshal keypair: %w", err)
	}

	if len(ints) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid secret key length %d", len(ints))
	}

	key = make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("invalid secret key byte %d at %d", v, i)
		}
		key[i] = byte(v)
	}

	return key, nil
}
