package mint

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/questx-lab/nftgallery/internal/common"
	"github.com/questx-lab/nftgallery/internal/entity"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/pubsub"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

const BalanceWarning = "Before making this transaction make sure you have enough balance in your wallet!!"

type Orchestrator struct {
	evaluator *Evaluator
	catalog   *Catalog
	connector Connector
	confirmer Confirmer
	txService TransactionService
	guard     Guard
	publisher pubsub.Publisher
}

func NewOrchestrator(
	evaluator *Evaluator,
	catalog *Catalog,
	connector Connector,
	confirmer Confirmer,
	txService TransactionService,
	guard Guard,
	publisher pubsub.Publisher,
) *Orchestrator {
	return &Orchestrator{
		evaluator: evaluator,
		catalog:   catalog,
		connector: connector,
		confirmer: confirmer,
		txService: txService,
		guard:     guard,
		publisher: publisher,
	}
}

// RequestMint runs one mint request of the connected wallet: it asks for a
// confirmation and submits at most one transaction. It never retries.
func (o *Orchestrator) RequestMint(
	ctx context.Context,
	req model.MintRequest,
	profile *model.UserProfile,
	achievement *model.AchievementSlot,
) (*Outcome, error) {
	address := o.connector.Address()
	if address == "" {
		if err := o.connector.Connect(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot connect wallet: %v", err)
		}

		return nil, errorx.New(errorx.WalletNotConnected, "Please connect your wallet first.")
	}

	nft, index, ok := o.catalog.Get(req.SlotID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found slot %s", req.SlotID)
	}

	if decision := o.evaluator.Evaluate(req.SlotID, profile, achievement, address); decision != Eligible {
		return nil, errorx.New(errorx.NotEligible, "%s cannot be minted (%s)", nft.Name, decision)
	}

	if profile == nil {
		return nil, errorx.New(errorx.ProfileUnavailable, "Profile is not loaded yet")
	}

	username := req.Username
	if username == "" {
		username = profile.Username
	}

	confirmed, err := o.confirmer.Confirm(ctx, o.prompt(ctx, nft, address))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the confirmation: %v", err)
		return nil, errorx.Unknown
	}

	if !confirmed {
		return &Outcome{Status: OutcomeCancelled}, nil
	}

	token, acquired, err := o.guard.Acquire(ctx, address, nft.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot acquire mint guard: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot mint now, please try again later")
	}

	if !acquired {
		return nil, errorx.New(errorx.MintInProgress, "A mint of %s is already in progress", nft.Name)
	}
	defer o.guard.Release(ctx, address, nft.ID, token)

	args := model.CreateAssetArgs{
		Name:          nft.ID,
		FollowerCount: profile.FollowerCount,
		DscvrPoints:   profile.DscvrPoints,
		Username:      username,
	}
	if profile.Streak != nil {
		args.StreakDayCount = profile.Streak.DayCount
	}

	event := &model.MintOutcomeEvent{
		AttemptID:      xcontext.SnowFlake(ctx).Generate().Int64(),
		WalletAddress:  address,
		Username:       username,
		SlotID:         nft.ID,
		SlotIndex:      index,
		FollowerCount:  args.FollowerCount,
		StreakDayCount: args.StreakDayCount,
		DscvrPoints:    args.DscvrPoints,
		Status:         string(entity.MintAttemptPending),
		CreatedAt:      time.Now(),
	}
	o.publish(ctx, event)

	resp, err := o.submit(ctx, address, args)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mint %s for %s: %v", nft.ID, address, err)
		common.PromCounters[common.MintSubmissionTotal].WithLabelValues(nft.ID, "failure").Inc()

		event.Status = string(entity.MintAttemptFailure)
		event.Error = err.Error()
		o.publish(ctx, event)

		return nil, errorx.New(errorx.MintSubmissionFailed, "Failed to mint %s", nft.Name)
	}

	common.PromCounters[common.MintSubmissionTotal].WithLabelValues(nft.ID, "success").Inc()

	event.Status = string(entity.MintAttemptSuccess)
	event.Signature = resp.Signature
	event.AssetAddress = resp.AssetAddress
	o.publish(ctx, event)

	return &Outcome{
		Status:       OutcomeSuccess,
		AttemptID:    event.AttemptID,
		Signature:    resp.Signature,
		AssetAddress: resp.AssetAddress,
	}, nil
}

func (o *Orchestrator) prompt(ctx context.Context, nft model.NFT, address string) model.MintPrompt {
	prompt := model.MintPrompt{
		SlotID:        nft.ID,
		SlotName:      nft.Name,
		Warning:       BalanceWarning,
		EstimatedCost: xcontext.Configs(ctx).Solana.MintCostLamports,
	}

	balance, err := o.txService.Balance(ctx, address)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get balance of %s: %v", address, err)
		return prompt
	}

	prompt.Balance = balance
	prompt.BalanceKnown = true
	prompt.Sufficient = balance >= prompt.EstimatedCost
	return prompt
}

// submit is the only place where a transaction is sent.
func (o *Orchestrator) submit(
	ctx context.Context, address string, args model.CreateAssetArgs,
) (*model.SendMintResponse, error) {
	prepared, err := o.txService.PrepareMint(ctx, &model.PrepareMintRequest{
		WalletAddress: address,
		Args:          args,
	})
	if err != nil {
		return nil, err
	}

	signature, err := o.connector.SignMessage(ctx, prepared.Message)
	if err != nil {
		return nil, err
	}

	return o.txService.SendMint(ctx, &model.SendMintRequest{
		RequestID: prepared.RequestID,
		Signature: signature,
	})
}

func (o *Orchestrator) publish(ctx context.Context, event *model.MintOutcomeEvent) {
	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal mint outcome: %v", err)
		return
	}

	err = o.publisher.Publish(ctx, xcontext.Configs(ctx).Mint.OutcomeTopic, &pubsub.Pack{
		Key: []byte(strconv.FormatInt(event.AttemptID, 10)),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish mint outcome: %v", err)
	}
}
