package model

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashSize is the byte length of block and transaction hashes.
const HashSize = chainhash.HashSize

// Hash is a 32-byte block or transaction identifier in display byte order,
// i.e. the order of its usual hex rendering.
type Hash [HashSize]byte

// ZeroHash is the all-zero hash used by coinbase outpoints and the genesis previous-block link.
var ZeroHash Hash

// ParseHash decodes a 64-character hex string, upper or lower case.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != 2*HashSize {
		return h, fmt.Errorf("hash string length %d, want %d", len(s), 2*HashSize)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("decode hash %q: %w", s, err)
	}
	return h, nil
}

// HashFromBytes copies a raw 32-byte value.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, fmt.Errorf("hash length %d, want %d", len(b), HashSize)
	}
	copy(h[:], b)
	return h, nil
}

// HashFromChainhash converts a btcd hash (internal byte order) into display order.
func HashFromChainhash(c chainhash.Hash) Hash {
	var h Hash
	for i := 0; i < HashSize; i++ {
		h[i] = c[HashSize-1-i]
	}
	return h
}

// Chainhash converts h into the internal byte order used by btcd.
func (h Hash) Chainhash() chainhash.Hash {
	var c chainhash.Hash
	for i := 0; i < HashSize; i++ {
		c[i] = h[HashSize-1-i]
	}
	return c
}

// Reversed returns h with its bytes in opposite order.
func (h Hash) Reversed() Hash {
	return Hash(h.Chainhash())
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first ten hex characters, enough to tell hashes apart in logs.
func (h Hash) Short() string {
	return h.String()[:10]
}
