package model

import "time"

type MintRequest struct {
	SlotID   string `json:"slot_id"`
	Username string `json:"username"`
}

// MintPrompt is shown to the user before a transaction is built.
type MintPrompt struct {
	SlotID        string
	SlotName      string
	Warning       string
	Balance       uint64
	BalanceKnown  bool
	EstimatedCost uint64
	Sufficient    bool
}

type MintOutcomeEvent struct {
	AttemptID      int64     `json:"attempt_id"`
	WalletAddress  string    `json:"wallet_address"`
	Username       string    `json:"username"`
	SlotID         string    `json:"slot_id"`
	SlotIndex      int       `json:"slot_index"`
	FollowerCount  uint64    `json:"follower_count"`
	StreakDayCount uint64    `json:"streak_day_count"`
	DscvrPoints    uint64    `json:"dscvr_points"`
	Status         string    `json:"status"`
	Signature      string    `json:"signature,omitempty"`
	AssetAddress   string    `json:"asset_address,omitempty"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type MintAttempt struct {
	ID           string    `json:"id"`
	SlotID       string    `json:"slot_id"`
	SlotIndex    int       `json:"slot_index"`
	Status       string    `json:"status"`
	Signature    string    `json:"signature"`
	AssetAddress string    `json:"asset_address"`
	Error        string    `json:"error"`
	CreatedAt    time.Time `json:"created_at"`
}

type GetMintHistoryRequest struct {
	WalletAddress string `json:"wallet_address"`
	Offset        int    `json:"offset"`
	Limit         int    `json:"limit"`
}

type GetMintHistoryResponse struct {
	Attempts []MintAttempt `json:"attempts"`
}
