package model

import "math"

// CoinbaseIndex is the previous-output index carried by coinbase inputs.
const CoinbaseIndex uint32 = math.MaxUint32

// Outpoint references an output as (transaction hash, output index).
type Outpoint struct {
	Hash  Hash
	Index uint32
}

// IsCoinbase reports whether the outpoint is the null reference used by coinbase inputs.
func (o Outpoint) IsCoinbase() bool {
	return o.Hash.IsZero() && o.Index == CoinbaseIndex
}

// Inpoint references an input as (transaction hash, input index).
type Inpoint struct {
	Hash  Hash
	Index uint32
}

// TransactionInput is the body of a single input.
type TransactionInput struct {
	Script           []byte
	Sequence         uint32
	PreviousOutpoint Outpoint
}

// TransactionOutput is the body of a single output.
type TransactionOutput struct {
	Value  uint64
	Script []byte
}

// TransactionBody groups the fields returned by a single transaction lookup.
type TransactionBody struct {
	Version  uint32
	LockTime uint32
	Inputs   []TransactionInput
	Outputs  []TransactionOutput
}

// TransactionIndex locates a transaction inside the chain.
type TransactionIndex struct {
	Depth  uint64
	Offset uint32
}
