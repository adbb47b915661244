package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/questx-lab/nftgallery/internal/client"
	"github.com/questx-lab/nftgallery/internal/domain/mint"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/internal/wallet"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startGallery(cctx *cli.Context) error {
	cfg := xcontext.Configs(s.ctx)

	if err := s.loadMint(); err != nil {
		return err
	}

	mintData, err := readMintData(cctx.String("mint-data"))
	if err != nil {
		return err
	}

	profileCaller, err := client.NewProfileCaller(cfg.Profile)
	if err != nil {
		return err
	}
	session := mint.NewProfileSession(profileCaller)

	keypair := cctx.String("keypair")
	if keypair == "" {
		keypair = cfg.Solana.KeypairPath
	}

	connector := wallet.NewKeypairConnector(keypair)
	if keypair != "" {
		if err := connector.Connect(s.ctx); err != nil {
			return err
		}
	}

	session.OnIdentityChange(s.ctx, cctx.String("username"))
	profile, profileErr := session.Current()

	out := cctx.App.Writer
	slots := mint.BuildGallery(s.evaluator, s.catalog, mintData, profile, connector.Address())
	printGallery(out, session.Username(), connector.Address(), profile, profileErr, slots)

	slotID := cctx.String("mint")
	if slotID == "" {
		return nil
	}

	var confirmer mint.Confirmer = wallet.NewTerminalConfirmer(os.Stdin, out)
	if cctx.Bool("yes") {
		confirmer = wallet.NewAutoConfirmer(out)
	}

	txService, closeTxService, err := s.newTransactionService()
	if err != nil {
		return err
	}
	defer closeTxService()

	s.loadPublisher()

	orchestrator := mint.NewOrchestrator(
		s.evaluator,
		s.catalog,
		connector,
		confirmer,
		txService,
		s.newGuard(),
		s.publisher,
	)

	outcome, err := orchestrator.RequestMint(
		s.ctx,
		model.MintRequest{SlotID: slotID, Username: session.Username()},
		profile,
		s.catalog.Achievement(mintData, slotID),
	)
	if err != nil {
		return err
	}

	switch outcome.Status {
	case mint.OutcomeCancelled:
		fmt.Fprintln(out, "Mint cancelled")
	case mint.OutcomeSuccess:
		fmt.Fprintf(out, "Minted %s\n  signature: %s\n  asset: %s\n", slotID, outcome.Signature, outcome.AssetAddress)
	}

	return nil
}

func readMintData(path string) (*model.MintData, error) {
	data := &model.MintData{}
	if path == "" {
		return data, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read mint data: %w", err)
	}

	if err := json.Unmarshal(b, data); err != nil {
		return nil, fmt.Errorf("cannot parse mint data: %w", err)
	}

	return data, nil
}

func printGallery(
	out io.Writer,
	username string,
	address string,
	profile *model.UserProfile,
	profileErr error,
	slots []model.SlotView,
) {
	if address == "" {
		fmt.Fprintln(out, "Wallet: not connected")
	} else {
		fmt.Fprintf(out, "Wallet: %s\n", address)
	}

	switch {
	case username == "":
		fmt.Fprintln(out, "Profile: no username")
	case profileErr != nil:
		fmt.Fprintf(out, "Profile: %v\n", profileErr)
	case profile != nil:
		streak := uint64(0)
		if profile.Streak != nil {
			streak = profile.Streak.DayCount
		}
		fmt.Fprintf(out, "Profile: %s (followers %d, following %d, streak %d days, points %d)\n",
			username, profile.FollowerCount, profile.FollowingCount, streak, profile.DscvrPoints)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tNAME\tMINTED\tSTATE")
	for _, slot := range slots {
		minted := "-"
		if slot.MaxNftCap > 0 {
			minted = fmt.Sprintf("%d/%d", slot.CurrentCount, slot.MaxNftCap)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", slot.NFT.ID, slot.NFT.Name, minted, slot.Decision)
	}
	w.Flush()
}
