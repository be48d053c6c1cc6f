package model

import (
	"crypto/rand"
	"encoding/hex"
)

// IDLength is the length of record identifiers: 12 random bytes hex-encoded.
const IDLength = 24

// NewID returns a new 24-character lowercase hex identifier.
func NewID() string {
	b := make([]byte, IDLength/2)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(b)
}
