package model

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HeaderSize is the length of a serialized block header.
const HeaderSize = 80

// BlockHeader holds the six consensus fields a block hash is derived from.
type BlockHeader struct {
	Version           uint32
	PreviousBlockHash Hash
	MerkleRoot        Hash
	Timestamp         uint32
	Bits              uint32
	Nonce             uint32
}

// Serialize writes the header in wire layout: little-endian integers and
// both hashes in reversed (internal) byte order.
func (h BlockHeader) Serialize() [HeaderSize]byte {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], h.Version)
	prev := h.PreviousBlockHash.Reversed()
	copy(buf[4:36], prev[:])
	merkle := h.MerkleRoot.Reversed()
	copy(buf[36:68], merkle[:])
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)
	return buf
}

// Hash returns the block identity: double SHA-256 of the serialized header,
// reversed into display order.
func (h BlockHeader) Hash() Hash {
	buf := h.Serialize()
	return HashFromChainhash(chainhash.DoubleHashH(buf[:]))
}
