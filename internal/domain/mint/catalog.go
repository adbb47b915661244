package mint

import (
	"github.com/questx-lab/nftgallery/config"
	"github.com/questx-lab/nftgallery/internal/model"
)

// Catalog is the ordered list of mintable NFTs. The position of an NFT is the
// index achievements refer to when they do not carry an id.
type Catalog struct {
	nfts  []model.NFT
	index map[string]int
}

func NewCatalog(cfg []config.NFTConfigs) *Catalog {
	catalog := &Catalog{index: make(map[string]int, len(cfg))}
	for i, nft := range cfg {
		catalog.nfts = append(catalog.nfts, model.NFT{
			ID:          nft.CodeName,
			Name:        nft.Name,
			Description: nft.Description,
			Image:       nft.Image,
		})
		catalog.index[nft.CodeName] = i
	}

	return catalog
}

func (c *Catalog) All() []model.NFT {
	return append([]model.NFT{}, c.nfts...)
}

func (c *Catalog) Get(id string) (model.NFT, int, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.NFT{}, 0, false
	}

	return c.nfts[i], i, true
}

// Achievement finds the achievement of the slot. Achievements with an id are
// matched by id; the others are matched by their position.
func (c *Catalog) Achievement(data *model.MintData, slotID string) *model.AchievementSlot {
	if data == nil {
		return nil
	}

	position, ok := c.index[slotID]
	if !ok {
		return nil
	}

	for i := range data.Achievements {
		if data.Achievements[i].ID == slotID {
			return &data.Achievements[i]
		}
	}

	for i := range data.Achievements {
		achievement := &data.Achievements[i]
		if achievement.ID == "" && achievement.Index == position {
			return achievement
		}
	}

	return nil
}

// BuildGallery evaluates every slot of the catalog for the given wallet.
func BuildGallery(
	evaluator *Evaluator,
	catalog *Catalog,
	data *model.MintData,
	profile *model.UserProfile,
	address string,
) []model.SlotView {
	views := make([]model.SlotView, 0, len(catalog.nfts))
	for i, nft := range catalog.nfts {
		achievement := catalog.Achievement(data, nft.ID)

		view := model.SlotView{
			NFT:      nft,
			Index:    i,
			Decision: string(evaluator.Evaluate(nft.ID, profile, achievement, address)),
		}
		if achievement != nil {
			view.CurrentCount = achievement.CurrentCount
			view.MaxNftCap = achievement.MaxNftCap
		}

		views = append(views, view)
	}

	return views
}
