package model

import "time"

type CreateAssetArgs struct {
	Name           string `json:"name"`
	FollowerCount  uint64 `json:"follower_count"`
	StreakDayCount uint64 `json:"streak_day_count"`
	DscvrPoints    uint64 `json:"dscvr_points"`
	Username       string `json:"username"`
}

type PrepareMintRequest struct {
	WalletAddress string          `json:"wallet_address"`
	Args          CreateAssetArgs `json:"args"`
}

// PrepareMintResponse carries the serialized transaction message which must
// be signed by the wallet and passed back to SendMint.
type PrepareMintResponse struct {
	RequestID    string    `json:"request_id"`
	Message      []byte    `json:"message"`
	AssetAddress string    `json:"asset_address"`
	ExpiredAt    time.Time `json:"expired_at"`
}

type SendMintRequest struct {
	RequestID string `json:"request_id"`
	Signature []byte `json:"signature"`
}

type SendMintResponse struct {
	Signature    string `json:"signature"`
	AssetAddress string `json:"asset_address"`
}
