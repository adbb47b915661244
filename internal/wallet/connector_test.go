package wallet

import (
	"crypto/ed25519"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func writeKeypair(t *testing.T, account types.Account) string {
	ints := make([]int, len(account.PrivateKey))
	for i, b := range account.PrivateKey {
		ints[i] = int(b)
	}

	data, err := json.Marshal(ints)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestKeypairConnector(t *testing.T) {
	ctx := testutil.MockContext()
	account := types.NewAccount()
	connector := NewKeypairConnector(writeKeypair(t, account))

	require.Empty(t, connector.Address())
	_, err := connector.SignMessage(ctx, []byte("msg"))
	require.True(t, errorx.Is(err, errorx.WalletNotConnected))

	require.NoError(t, connector.Connect(ctx))
	require.Equal(t, account.PublicKey.ToBase58(), connector.Address())

	sig, err := connector.SignMessage(ctx, []byte("msg"))
	require.NoError(t, err)
	require.True(t, ed25519.Verify(account.PublicKey.Bytes(), []byte("msg"), sig))
}

func TestKeypairConnector_InvalidFile(t *testing.T) {
	ctx := testutil.MockContext()

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "hello"},
		{name: "short key", data: "[1,2,3]"},
		{name: "out of range", data: "[" + repeat("300,", 63) + "1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "id.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o600))

			connector := NewKeypairConnector(path)
			err := connector.Connect(ctx)
			require.True(t, errorx.Is(err, errorx.WalletNotConnected))
			require.Empty(t, connector.Address())
		})
	}

	require.Error(t, NewKeypairConnector("").Connect(ctx))
	require.Error(t, NewKeypairConnector(filepath.Join(t.TempDir(), "missing.json")).Connect(ctx))
}

func repeat(s string, n int) string {
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
