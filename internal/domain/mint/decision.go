package mint

import "github.com/questx-lab/nftgallery/pkg/enum"

// Decision is the mint state of a slot for the connected wallet. It is
// derived on every evaluation and never stored.
type Decision string

var (
	Locked        = enum.New(Decision("locked"))
	Eligible      = enum.New(Decision("eligible"))
	AlreadyMinted = enum.New(Decision("already_minted"))
	CapReached    = enum.New(Decision("cap_reached"))
)

type OutcomeStatus string

var (
	OutcomeCancelled = enum.New(OutcomeStatus("cancelled"))
	OutcomeSuccess   = enum.New(OutcomeStatus("success"))
)

// Outcome is returned by RequestMint when no error happened. A failed
// submission is returned as an error instead.
type Outcome struct {
	Status       OutcomeStatus
	AttemptID    int64
	Signature    string
	AssetAddress string
}
