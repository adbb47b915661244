package model

type NFT struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type SlotView struct {
	NFT          NFT    `json:"nft"`
	Index        int    `json:"index"`
	Decision     string `json:"decision"`
	CurrentCount uint64 `json:"current_count"`
	MaxNftCap    uint64 `json:"max_nft_cap"`
}

type GetGalleryRequest struct {
	Username      string   `json:"username"`
	WalletAddress string   `json:"wallet_address"`
	MintData      MintData `json:"mint_data"`
}

type GetGalleryResponse struct {
	Profile      *UserProfile `json:"profile,omitempty"`
	ProfileError string       `json:"profile_error,omitempty"`
	Slots        []SlotView   `json:"slots"`
}

type GetCatalogRequest struct{}

type GetCatalogResponse struct {
	NFTs []NFT `json:"nfts"`
}
