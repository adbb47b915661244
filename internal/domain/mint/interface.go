package mint

import (
	"context"

	"github.com/questx-lab/nftgallery/internal/model"
)

// Connector is the wallet of the user. Address returns an empty string while
// no wallet is connected.
type Connector interface {
	Address() string
	Connect(ctx context.Context) error
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
}

type Confirmer interface {
	Confirm(ctx context.Context, prompt model.MintPrompt) (bool, error)
}

// TransactionService builds and submits create_asset transactions. PrepareMint
// returns a message which must be signed by the wallet, SendMint submits it.
type TransactionService interface {
	Balance(ctx context.Context, address string) (uint64, error)
	PrepareMint(ctx context.Context, req *model.PrepareMintRequest) (*model.PrepareMintResponse, error)
	SendMint(ctx context.Context, req *model.SendMintRequest) (*model.SendMintResponse, error)
}

type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*model.UserProfile, error)
}

// Guard rejects a second mint of the same slot by the same wallet while the
// first one is still in flight. Release only drops the hold identified by the
// token returned from Acquire.
type Guard interface {
	Acquire(ctx context.Context, walletAddress, slotID string) (token string, acquired bool, err error)
	Release(ctx context.Context, walletAddress, slotID, token string)
}
