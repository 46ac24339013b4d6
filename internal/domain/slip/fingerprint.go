package slip

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint is the content-derived identity of an uploaded artifact.
// It depends only on the artifact bytes, never on filename or upload time.
type Fingerprint [sha256.Size]byte

// ComputeFingerprint hashes the artifact bytes with SHA-256.
func ComputeFingerprint(data []byte) Fingerprint {
	return sha256.Sum256(data)
}

// Hex returns the canonical lowercase hex rendering of the fingerprint.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f[:])
}

// ParseFingerprint decodes a hex rendering produced by Hex.
func ParseFingerprint(s string) (Fingerprint, error) {
	var f Fingerprint
	b, err := hex.DecodeString(s)
	if err != nil {
		return f, err
	}
	if len(b) != sha256.Size {
		return f, ErrBadFingerprint
	}
	copy(f[:], b)
	return f, nil
}
