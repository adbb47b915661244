package domain

import (
	"strconv"

	"github.com/questx-lab/nftgallery/internal/entity"
	"github.com/questx-lab/nftgallery/internal/model"
)

func convertMintAttempt(attempt *entity.MintAttempt) model.MintAttempt {
	if attempt == nil {
		return model.MintAttempt{}
	}

	return model.MintAttempt{
		ID:           strconv.FormatInt(attempt.ID, 10),
		SlotID:       attempt.SlotID,
		SlotIndex:    attempt.SlotIndex,
		Status:       string(attempt.Status),
		Signature:    attempt.Signature,
		AssetAddress: attempt.AssetAddress,
		Error:        attempt.Error,
		CreatedAt:    attempt.CreatedAt,
	}
}

func convertMintOutcomeEvent(event *model.MintOutcomeEvent, status entity.MintAttemptStatus) *entity.MintAttempt {
	return &entity.MintAttempt{
		SnowFlakeBase: entity.SnowFlakeBase{
			ID:        event.AttemptID,
			CreatedAt: event.CreatedAt,
		},
		WalletAddress:  event.WalletAddress,
		Username:       event.Username,
		SlotID:         event.SlotID,
		SlotIndex:      event.SlotIndex,
		FollowerCount:  event.FollowerCount,
		StreakDayCount: event.StreakDayCount,
		DscvrPoints:    event.DscvrPoints,
		Status:         status,
		Signature:      event.Signature,
		AssetAddress:   event.AssetAddress,
		Error:          event.Error,
	}
}
