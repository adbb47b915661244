package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/stretchr/testify/require"
)

func TestReadMintData(t *testing.T) {
	data, err := readMintData("")
	require.NoError(t, err)
	require.Empty(t, data.Achievements)

	path := filepath.Join(t.TempDir(), "mint.json")
	content := `{"achievements":[{"id":"first_follower","current_count":2,"max_nft_cap":10,
		"wallets":[{"wallet_address":"wallet-a"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	data, err = readMintData(path)
	require.NoError(t, err)
	require.Len(t, data.Achievements, 1)
	require.Equal(t, "wallet-a", data.Achievements[0].Wallets[0].WalletAddress)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = readMintData(path)
	require.Error(t, err)
}

func TestPrintGallery(t *testing.T) {
	slots := []model.SlotView{
		{NFT: model.NFT{ID: "first_follower", Name: "First Follower"}, Decision: "eligible", CurrentCount: 2, MaxNftCap: 10},
		{NFT: model.NFT{ID: "three_day_streak", Name: "Streak Starter"}, Decision: "locked"},
	}

	out := &bytes.Buffer{}
	printGallery(out, "alice", "", &model.UserProfile{FollowerCount: 1}, nil, slots)
	require.Contains(t, out.String(), "Wallet: not connected")
	require.Contains(t, out.String(), "Profile: alice (followers 1")
	require.Contains(t, out.String(), "2/10")
	require.Contains(t, out.String(), "locked")

	out.Reset()
	printGallery(out, "bob", "wallet-a", nil, errors.New("Failed to fetch user data"), slots)
	require.Contains(t, out.String(), "Wallet: wallet-a")
	require.Contains(t, out.String(), "Profile: Failed to fetch user data")
}
