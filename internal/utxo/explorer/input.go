package explorer

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/zap"
)

// Input is a lazily resolved transaction input addressed by its inpoint.
type Input struct {
	x      *Explorer
	txHash model.Hash
	index  uint32

	parent lazy[*Transaction]
	body   lazy[model.TransactionInput]
}

func newInput(x *Explorer, txHash model.Hash, index uint32) *Input {
	return &Input{x: x, txHash: txHash, index: index}
}

func (i *Input) TransactionHash() model.Hash {
	return i.txHash
}

func (i *Input) Index() uint32 {
	return i.index
}

func (i *Input) Inpoint() model.Inpoint {
	return model.Inpoint{Hash: i.txHash, Index: i.index}
}

// ParentTx returns the spending transaction. It never calls the data source.
func (i *Input) ParentTx() *Transaction {
	return i.parent.getOrInit(func() *Transaction {
		return i.x.Transactions.ByHash(i.txHash)
	})
}

func (i *Input) resolveBody(ctx context.Context) (model.TransactionInput, error) {
	return i.body.get(func() (model.TransactionInput, error) {
		i.x.logger.Debug("resolve input",
			zap.Stringer("txid", i.txHash),
			zap.Uint32("index", i.index),
		)
		body, err := i.x.source.TransactionBody(ctx, i.txHash)
		if err != nil {
			return model.TransactionInput{}, remoteError(err, "input %s:%d", i.txHash, i.index)
		}
		if int(i.index) >= len(body.Inputs) {
			return model.TransactionInput{}, remoteError(chain.ErrNotFound,
				"input %s:%d of %d", i.txHash, i.index, len(body.Inputs))
		}
		return body.Inputs[i.index], nil
	})
}

func (i *Input) Script(ctx context.Context) ([]byte, error) {
	body, err := i.resolveBody(ctx)
	return body.Script, err
}

func (i *Input) Sequence(ctx context.Context) (uint32, error) {
	body, err := i.resolveBody(ctx)
	return body.Sequence, err
}

// PreviousOutpoint returns the outpoint this input spends.
func (i *Input) PreviousOutpoint(ctx context.Context) (model.Outpoint, error) {
	body, err := i.resolveBody(ctx)
	return body.PreviousOutpoint, err
}

// IsCoinbase reports whether the input spends the null outpoint.
func (i *Input) IsCoinbase(ctx context.Context) (bool, error) {
	prev, err := i.PreviousOutpoint(ctx)
	if err != nil {
		return false, err
	}
	return prev.IsCoinbase(), nil
}

// PreviousOutput returns an unresolved proxy for the spent output. For a
// coinbase input the proxy points at the null outpoint and cannot resolve.
func (i *Input) PreviousOutput(ctx context.Context) (*Output, error) {
	prev, err := i.PreviousOutpoint(ctx)
	if err != nil {
		return nil, err
	}
	return newOutput(i.x, prev), nil
}

func (i *Input) String() string {
	return fmt.Sprintf("<Input %s:%d>", i.txHash.Short(), i.index)
}
