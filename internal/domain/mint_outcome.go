package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/questx-lab/nftgallery/internal/entity"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/internal/repository"
	"github.com/questx-lab/nftgallery/pkg/enum"
	"github.com/questx-lab/nftgallery/pkg/pubsub"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

// MintOutcomeDomain records the mint outcome events published by the
// orchestrator as mint attempts.
type MintOutcomeDomain interface {
	Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type mintOutcomeDomain struct {
	mintAttemptRepo repository.MintAttemptRepository
}

func NewMintOutcomeDomain(mintAttemptRepo repository.MintAttemptRepository) *mintOutcomeDomain {
	return &mintOutcomeDomain{mintAttemptRepo: mintAttemptRepo}
}

func (d *mintOutcomeDomain) Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event model.MintOutcomeEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal mint outcome: %v", err)
		return
	}

	if event.AttemptID == 0 {
		xcontext.Logger(ctx).Errorf("Got a mint outcome without attempt id (key=%s)", pack.Key)
		return
	}

	status, err := enum.ToEnum[entity.MintAttemptStatus](event.Status)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid mint attempt status %s: %v", event.Status, err)
		return
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = t
	}

	if err := d.mintAttemptRepo.Upsert(ctx, convertMintOutcomeEvent(&event, status)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record mint attempt %d: %v", event.AttemptID, err)
		return
	}

	xcontext.Logger(ctx).Debugf("Recorded mint attempt %d as %s", event.AttemptID, status)
}
