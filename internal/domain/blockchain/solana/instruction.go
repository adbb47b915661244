package solana

import (
	"crypto/sha256"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/near/borsh-go"
	"github.com/questx-lab/nftgallery/internal/model"
)

// Anchor identifies an instruction by the first 8 bytes of
// sha256("global:<name>").
var createAssetDiscriminator = Discriminator("create_asset")

func Discriminator(name string) [8]byte {
	var d [8]byte
	h := sha256.Sum256([]byte("global:" + name))
	copy(d[:], h[:8])
	return d
}

// createAssetArgs is borsh encoded, the field order must not change.
type createAssetArgs struct {
	Name           string
	FollowerCount  uint64
	StreakDayCount uint64
	DscvrPoints    uint64
	Username       string
}

type CreateAssetParam struct {
	ProgramID common.PublicKey
	Signer    common.PublicKey
	Payer     common.PublicKey
	Asset     common.PublicKey
	Registry  common.PublicKey

	// ExtraAccounts are appended read-only after the system program.
	ExtraAccounts []common.PublicKey

	Args model.CreateAssetArgs
}

func CreateAsset(param CreateAssetParam) (types.Instruction, error) {
	args, err := borsh.Serialize(createAssetArgs{
		Name:           param.Args.Name,
		FollowerCount:  param.Args.FollowerCount,
		StreakDayCount: param.Args.StreakDayCount,
		DscvrPoints:    param.Args.DscvrPoints,
		Username:       param.Args.Username,
	})
	if err != nil {
		return types.Instruction{}, fmt.Errorf("cannot serialize create_asset args: %w", err)
	}

	data := make([]byte, 0, len(createAssetDiscriminator)+len(args))
	data = append(data, createAssetDiscriminator[:]...)
	data = append(data, args...)

	accounts := []types.AccountMeta{
		{PubKey: param.Signer, IsSigner: true, IsWritable: true},
		{PubKey: param.Payer, IsSigner: true, IsWritable: true},
		{PubKey: param.Asset, IsSigner: true, IsWritable: true},
		{PubKey: param.Registry, IsSigner: false, IsWritable: true},
		{PubKey: common.SystemProgramID, IsSigner: false, IsWritable: false},
	}
	for _, extra := range param.ExtraAccounts {
		accounts = append(accounts, types.AccountMeta{PubKey: extra, IsSigner: false, IsWritable: false})
	}

	return types.Instruction{
		ProgramID: param.ProgramID,
		Accounts:  accounts,
		Data:      data,
	}, nil
}

// ParsePublicKey decodes a base58 public key and rejects malformed input.
func ParsePublicKey(s string) (common.PublicKey, error) {
	key := common.PublicKeyFromString(s)
	if s == "" || key.ToBase58() != s {
		return common.PublicKey{}, fmt.Errorf("invalid public key %q", s)
	}

	return key, nil
}
