package mint

import (
	"github.com/questx-lab/nftgallery/internal/model"
	"golang.org/x/exp/slices"
)

type Evaluator struct {
	ruleBook         *RuleBook
	enforceSupplyCap bool
}

func NewEvaluator(ruleBook *RuleBook, enforceSupplyCap bool) *Evaluator {
	return &Evaluator{ruleBook: ruleBook, enforceSupplyCap: enforceSupplyCap}
}

// Evaluate decides the mint state of a slot. It has no side effects and
// never fails: a missing profile or achievement simply fails the threshold.
//
// The order matters. Owning the NFT dominates every other state, then the
// supply cap, then the rule of the slot.
func (e *Evaluator) Evaluate(
	slotID string,
	profile *model.UserProfile,
	achievement *model.AchievementSlot,
	address string,
) Decision {
	if IsMinted(achievement, address) {
		return AlreadyMinted
	}

	if e.enforceSupplyCap && achievement != nil &&
		achievement.MaxNftCap > 0 && achievement.CurrentCount >= achievement.MaxNftCap {
		return CapReached
	}

	rule, ok := e.ruleBook.Get(slotID)
	if !ok || rule.Satisfied(profile) {
		return Eligible
	}

	return Locked
}

// IsMinted reports whether address is one of the wallets which minted the
// slot. An empty address never matches.
func IsMinted(achievement *model.AchievementSlot, address string) bool {
	if achievement == nil || address == "" {
		return false
	}

	return slices.IndexFunc(achievement.Wallets, func(w model.MintedWallet) bool {
		return w.WalletAddress == address
	}) >= 0
}
