package services

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
)

const (
	MemoTypeText = "text"
	MemoTypeID   = "id"
	MemoTypeHash = "hash"
	MemoTypeNone = "none"

	maxMemoTextBytes = 28
	memoHashBytes    = 32
)

// validateMemo checks memo against the ledger's memo encodings.
func validateMemo(memo, memoType string) error {
	if memo == "" {
		if memoType == "" || memoType == MemoTypeNone {
			return nil
		}
		return invalidMemo("memo cannot be empty for memo_type " + memoType)
	}
	switch memoType {
	case "":
		return invalidMemo("memo_type is required")
	case MemoTypeText:
		if len(memo) > maxMemoTextBytes {
			return invalidMemo("text memo must be at most 28 bytes")
		}
	case MemoTypeID:
		if _, err := strconv.ParseUint(memo, 10, 64); err != nil {
			return invalidMemo("id memo must be an unsigned 64-bit integer")
		}
	case MemoTypeHash:
		if !isMemoHash(memo) {
			return invalidMemo("hash memo must be 32 bytes encoded as hex or base64")
		}
	default:
		return invalidMemo("unsupported memo_type " + memoType)
	}
	return nil
}

func isMemoHash(memo string) bool {
	if b, err := hex.DecodeString(memo); err == nil && len(b) == memoHashBytes {
		return true
	}
	b, err := base64.StdEncoding.DecodeString(memo)
	return err == nil && len(b) == memoHashBytes
}

func invalidMemo(reason string) error {
	return NewInvalidParamsError("Invalid memo or memo_type: %s", reason)
}
