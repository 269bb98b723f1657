package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeFrameID computes a deterministic id for one websocket frame.
// Formula: SHA256(session_id|view_id|seq)
// Returns hex-encoded hash (64 characters).
func ComputeFrameID(sessionID, viewID string, seq int64) string {
	data := fmt.Sprintf("%s|%s|%d", sessionID, viewID, seq)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
