// Package bitcoin implements the chain data source on top of a Bitcoin node.
package bitcoin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
)

// ConvertHeader maps a wire header into the model header.
func ConvertHeader(src *wire.BlockHeader) (model.BlockHeader, error) {
	timestamp, err := safe.Uint32(src.Timestamp.Unix())
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("header timestamp overflow: %w", err)
	}
	return model.BlockHeader{
		Version:           uint32(src.Version),
		PreviousBlockHash: model.HashFromChainhash(src.PrevBlock),
		MerkleRoot:        model.HashFromChainhash(src.MerkleRoot),
		Timestamp:         timestamp,
		Bits:              src.Bits,
		Nonce:             src.Nonce,
	}, nil
}

// ConvertTransaction maps a wire transaction into the model transaction body.
func ConvertTransaction(src *wire.MsgTx) (model.TransactionBody, error) {
	body := model.TransactionBody{
		Version:  uint32(src.Version),
		LockTime: src.LockTime,
		Inputs:   make([]model.TransactionInput, 0, len(src.TxIn)),
		Outputs:  make([]model.TransactionOutput, 0, len(src.TxOut)),
	}
	for _, in := range src.TxIn {
		body.Inputs = append(body.Inputs, model.TransactionInput{
			Script:   in.SignatureScript,
			Sequence: in.Sequence,
			PreviousOutpoint: model.Outpoint{
				Hash:  model.HashFromChainhash(in.PreviousOutPoint.Hash),
				Index: in.PreviousOutPoint.Index,
			},
		})
	}
	for idx, out := range src.TxOut {
		value, err := safe.Uint64(out.Value)
		if err != nil {
			return model.TransactionBody{}, fmt.Errorf("output %d value: %w", idx, err)
		}
		body.Outputs = append(body.Outputs, model.TransactionOutput{
			Value:  value,
			Script: out.PkScript,
		})
	}
	return body, nil
}

// rpcError wraps err with msg, marking node "no such block/transaction" replies as chain.ErrNotFound.
func rpcError(err error, msg string) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) &&
		(rpcErr.Code == btcjson.ErrRPCInvalidAddressOrKey || rpcErr.Code == btcjson.ErrRPCInvalidParameter) {
		return fmt.Errorf("%s: %w: %w", msg, chain.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
