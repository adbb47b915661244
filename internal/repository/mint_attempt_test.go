package repository

import (
	"testing"

	"github.com/questx-lab/nftgallery/internal/entity"
	"github.com/questx-lab/nftgallery/pkg/testutil"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestMintAttemptRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewMintAttemptRepository()

	first := &entity.MintAttempt{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		WalletAddress: "wallet-1",
		SlotID:        "first_follower",
		Status:        entity.MintAttemptPending,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.MintAttempt{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		WalletAddress: "wallet-1",
		SlotID:        "three_day_streak",
		Status:        entity.MintAttemptPending,
	}
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.Create(ctx, &entity.MintAttempt{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		WalletAddress: "wallet-2",
		Status:        entity.MintAttemptPending,
	}))

	require.NoError(t, repo.UpdateByID(ctx, first.ID, &entity.MintAttempt{
		Status:    entity.MintAttemptSuccess,
		Signature: "sig",
	}))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, entity.MintAttemptSuccess, got.Status)
	require.Equal(t, "sig", got.Signature)

	attempts, err := repo.GetListByWalletAddress(ctx, "wallet-1", 0, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	require.Equal(t, second.ID, attempts[0].ID)
	require.Equal(t, first.ID, attempts[1].ID)

	attempts, err = repo.GetListByWalletAddress(ctx, "wallet-1", 1, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
}

func TestMintAttemptRepository_Upsert(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewMintAttemptRepository()

	attempt := &entity.MintAttempt{
		SnowFlakeBase: entity.SnowFlakeBase{ID: 42},
		WalletAddress: "wallet-1",
		Status:        entity.MintAttemptPending,
	}
	require.NoError(t, repo.Upsert(ctx, attempt))

	attempt.Status = entity.MintAttemptFailure
	attempt.Error = "boom"
	require.NoError(t, repo.Upsert(ctx, attempt))

	got, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, entity.MintAttemptFailure, got.Status)
	require.Equal(t, "boom", got.Error)
	require.Equal(t, "wallet-1", got.WalletAddress)
}
