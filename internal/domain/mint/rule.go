package mint

import (
	"fmt"

	"github.com/questx-lab/nftgallery/config"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/pkg/enum"
)

type RuleField string

var (
	FollowerCountField  = enum.New(RuleField("follower_count"))
	StreakDayCountField = enum.New(RuleField("streak_day_count"))
	DscvrPointsField    = enum.New(RuleField("dscvr_points"))
)

// Value returns the statistic of the profile this field refers to. The
// second result is false if the profile does not carry it.
func (f RuleField) Value(profile *model.UserProfile) (uint64, bool) {
	if profile == nil {
		return 0, false
	}

	switch f {
	case FollowerCountField:
		return profile.FollowerCount, true
	case StreakDayCountField:
		if profile.Streak == nil {
			return 0, false
		}
		return profile.Streak.DayCount, true
	case DscvrPointsField:
		return profile.DscvrPoints, true
	}

	return 0, false
}

// Rule gates a slot on one profile statistic. A zero threshold means the slot
// is always eligible, no matter what the profile says.
type Rule struct {
	Field     RuleField
	Threshold uint64
}

func (r Rule) Satisfied(profile *model.UserProfile) bool {
	if r.Threshold == 0 {
		return true
	}

	value, ok := r.Field.Value(profile)
	if !ok {
		return false
	}

	return value >= r.Threshold
}

// RuleBook maps slot ids to their rules. Slots without a rule are always
// eligible. It is read-only after construction.
type RuleBook struct {
	rules map[string]Rule
}

func NewRuleBook(cfg map[string]config.RuleConfigs) (*RuleBook, error) {
	book := &RuleBook{rules: make(map[string]Rule, len(cfg))}
	for slotID, ruleCfg := range cfg {
		field, err := enum.ToEnum[RuleField](ruleCfg.Field)
		if err != nil {
			return nil, fmt.Errorf("invalid rule of slot %s: %w", slotID, err)
		}

		book.rules[slotID] = Rule{Field: field, Threshold: ruleCfg.Threshold}
	}

	return book, nil
}

func (b *RuleBook) Get(slotID string) (Rule, bool) {
	rule, ok := b.rules[slotID]
	return rule, ok
}
