package entity

import (
	"github.com/questx-lab/nftgallery/pkg/enum"
)

type MintAttemptStatus string

var (
	MintAttemptPending = enum.New(MintAttemptStatus("pending"))
	MintAttemptSuccess = enum.New(MintAttemptStatus("success"))
	MintAttemptFailure = enum.New(MintAttemptStatus("failure"))
)

// MintAttempt records one confirmed mint request and its outcome.
type MintAttempt struct {
	SnowFlakeBase

	WalletAddress string `gorm:"index:idx_mint_attempts_wallet_address"`
	Username      string
	SlotID        string
	SlotIndex     int

	FollowerCount  uint64
	StreakDayCount uint64
	DscvrPoints    uint64

	Status       MintAttemptStatus
	Signature    string
	AssetAddress string
	Error        string
}
