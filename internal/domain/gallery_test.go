package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/questx-lab/nftgallery/config"
	"github.com/questx-lab/nftgallery/internal/domain/mint"
	"github.com/questx-lab/nftgallery/internal/entity"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/internal/repository"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestGalleryDomain(t *testing.T, fetcher mint.ProfileFetcher) *galleryDomain {
	cfg := config.Default()
	book, err := mint.NewRuleBook(cfg.Mint.Rules)
	require.NoError(t, err)

	return NewGalleryDomain(
		mint.NewEvaluator(book, cfg.Mint.EnforceSupplyCap),
		mint.NewCatalog(cfg.Mint.Catalog),
		fetcher,
		repository.NewMintAttemptRepository(),
	)
}

func decisions(slots []model.SlotView) map[string]string {
	result := map[string]string{}
	for _, slot := range slots {
		result[slot.NFT.ID] = slot.Decision
	}
	return result
}

func Test_galleryDomain_GetCatalog(t *testing.T) {
	d := newTestGalleryDomain(t, &testutil.MockProfileFetcher{})

	resp, err := d.GetCatalog(testutil.MockContext(), &model.GetCatalogRequest{})
	require.NoError(t, err)
	require.Len(t, resp.NFTs, 3)
	require.Equal(t, config.FirstFollowerCodeName, resp.NFTs[0].ID)
	require.Equal(t, config.ThreeDayStreakCodeName, resp.NFTs[1].ID)
	require.Equal(t, config.DscvrPointsCodeName, resp.NFTs[2].ID)

	// The response is a copy, changing it leaves the catalog intact.
	resp.NFTs[0].Name = "changed"
	again, err := d.GetCatalog(testutil.MockContext(), &model.GetCatalogRequest{})
	require.NoError(t, err)
	require.Equal(t, "First Follower", again.NFTs[0].Name)
}

func Test_galleryDomain_GetGallery(t *testing.T) {
	fetcher := &testutil.MockProfileFetcher{
		FetchProfileFunc: func(ctx context.Context, username string) (*model.UserProfile, error) {
			if username == "broken" {
				return nil, errors.New("timeout")
			}

			return &model.UserProfile{
				ID:            "1",
				FollowerCount: 1,
				Streak:        &model.Streak{DayCount: 2},
			}, nil
		},
	}

	mintData := model.MintData{
		Achievements: []model.AchievementSlot{
			{Index: 0, CurrentCount: 3, MaxNftCap: 100},
			{Index: 1, CurrentCount: 1, MaxNftCap: 100},
			{
				ID:           config.DscvrPointsCodeName,
				Index:        2,
				CurrentCount: 5,
				MaxNftCap:    100,
				Wallets:      []model.MintedWallet{{WalletAddress: "wallet-a"}},
			},
		},
	}

	tests := []struct {
		name             string
		req              *model.GetGalleryRequest
		wantDecisions    map[string]string
		wantProfileError string
		wantProfile      bool
	}{
		{
			name: "profile loaded",
			req: &model.GetGalleryRequest{
				Username:      "alice",
				WalletAddress: "wallet-a",
				MintData:      mintData,
			},
			wantDecisions: map[string]string{
				config.FirstFollowerCodeName:  string(mint.Eligible),
				config.ThreeDayStreakCodeName: string(mint.Locked),
				config.DscvrPointsCodeName:    string(mint.AlreadyMinted),
			},
			wantProfile: true,
		},
		{
			name: "profile failed",
			req: &model.GetGalleryRequest{
				Username:      "broken",
				WalletAddress: "wallet-b",
				MintData:      mintData,
			},
			wantDecisions: map[string]string{
				config.FirstFollowerCodeName:  string(mint.Locked),
				config.ThreeDayStreakCodeName: string(mint.Locked),
				config.DscvrPointsCodeName:    string(mint.Eligible),
			},
			wantProfileError: "Failed to fetch user data",
		},
		{
			name: "no username",
			req:  &model.GetGalleryRequest{WalletAddress: "wallet-a"},
			wantDecisions: map[string]string{
				config.FirstFollowerCodeName:  string(mint.Locked),
				config.ThreeDayStreakCodeName: string(mint.Locked),
				config.DscvrPointsCodeName:    string(mint.Eligible),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestGalleryDomain(t, fetcher)

			got, err := d.GetGallery(testutil.MockContext(), tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.wantDecisions, decisions(got.Slots))
			require.Equal(t, tt.wantProfileError, got.ProfileError)
			require.Equal(t, tt.wantProfile, got.Profile != nil)
			if got.Profile != nil {
				require.Equal(t, tt.req.Username, got.Profile.Username)
			}
		})
	}
}

func Test_galleryDomain_GetGallery_Progress(t *testing.T) {
	d := newTestGalleryDomain(t, &testutil.MockProfileFetcher{})

	got, err := d.GetGallery(testutil.MockContext(), &model.GetGalleryRequest{
		MintData: model.MintData{
			Achievements: []model.AchievementSlot{{Index: 1, CurrentCount: 7, MaxNftCap: 50}},
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Slots, 3)
	require.Equal(t, uint64(0), got.Slots[0].MaxNftCap)
	require.Equal(t, uint64(7), got.Slots[1].CurrentCount)
	require.Equal(t, uint64(50), got.Slots[1].MaxNftCap)
}

func Test_galleryDomain_GetProfile(t *testing.T) {
	tests := []struct {
		name     string
		username string
		fetchErr error
		wantCode errorx.Code
	}{
		{name: "happy case", username: "alice"},
		{name: "empty username", username: "", wantCode: errorx.BadRequest},
		{name: "unknown user", username: "ghost", fetchErr: errorx.New(errorx.NotFound, "Not found user ghost"), wantCode: errorx.NotFound},
		{name: "transport error", username: "alice", fetchErr: errors.New("boom"), wantCode: errorx.ProfileFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestGalleryDomain(t, &testutil.MockProfileFetcher{
				FetchProfileFunc: func(ctx context.Context, username string) (*model.UserProfile, error) {
					if tt.fetchErr != nil {
						return nil, tt.fetchErr
					}
					return &model.UserProfile{ID: "1", DscvrPoints: 10}, nil
				},
			})

			got, err := d.GetProfile(testutil.MockContext(), &model.GetProfileRequest{Username: tt.username})
			if tt.wantCode != 0 {
				require.True(t, errorx.Is(err, tt.wantCode), "got %v", err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "alice", got.Profile.Username)
			require.Equal(t, uint64(10), got.Profile.DscvrPoints)
		})
	}
}

func Test_galleryDomain_GetMintHistory(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewMintAttemptRepository()
	d := newTestGalleryDomain(t, &testutil.MockProfileFetcher{})

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.MintAttempt{
			SnowFlakeBase: entity.SnowFlakeBase{ID: i, CreatedAt: time.Now()},
			WalletAddress: "wallet-a",
			SlotID:        config.FirstFollowerCodeName,
			Status:        entity.MintAttemptSuccess,
			Signature:     "sig",
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.MintAttempt{
		SnowFlakeBase: entity.SnowFlakeBase{ID: 4},
		WalletAddress: "wallet-b",
		Status:        entity.MintAttemptFailure,
	}))

	got, err := d.GetMintHistory(ctx, &model.GetMintHistoryRequest{WalletAddress: "wallet-a", Limit: 2})
	require.NoError(t, err)
	require.Len(t, got.Attempts, 2)
	require.Equal(t, "3", got.Attempts[0].ID)
	require.Equal(t, "2", got.Attempts[1].ID)
	require.Equal(t, "success", got.Attempts[0].Status)

	got, err = d.GetMintHistory(ctx, &model.GetMintHistoryRequest{WalletAddress: "wallet-c"})
	require.NoError(t, err)
	require.Empty(t, got.Attempts)

	_, err = d.GetMintHistory(ctx, &model.GetMintHistoryRequest{})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = d.GetMintHistory(ctx, &model.GetMintHistoryRequest{WalletAddress: "wallet-a", Limit: 1000})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = d.GetMintHistory(ctx, &model.GetMintHistoryRequest{WalletAddress: "wallet-a", Offset: -1})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}
