package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ApprovalTokenBytes is the entropy of an approval token. 32 random bytes
// makes the hex token unguessable for link-based approval.
const ApprovalTokenBytes = 32

// NewApprovalToken returns an opaque token for one approval stage.
// Each pending stage of a leave request gets its own independent token.
func NewApprovalToken() (string, error) {
	buf := make([]byte, ApprovalTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate approval token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
