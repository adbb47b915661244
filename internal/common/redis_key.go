package common

import (
	"fmt"
)

func RedisKeyMintGuard(walletAddress, slotID string) string {
	return fmt.Sprintf("mintguard:%s:%s", walletAddress, slotID)
}
