package model

type MintedWallet struct {
	WalletAddress string `json:"wallet_address"`
}

// AchievementSlot is the mint state of one NFT, supplied by the caller.
// ID may be empty, in which case the slot is matched to the catalog by
// Index.
type AchievementSlot struct {
	ID           string         `json:"id"`
	Index        int            `json:"index"`
	CurrentCount uint64         `json:"current_count"`
	MaxNftCap    uint64         `json:"max_nft_cap"`
	Wallets      []MintedWallet `json:"wallets"`
}

type MintData struct {
	Achievements []AchievementSlot `json:"achievements"`
}
