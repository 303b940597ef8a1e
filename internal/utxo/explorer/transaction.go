package explorer

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/zap"
)

type transactionBody struct {
	version  uint32
	lockTime uint32
	inputs   []*Input
	outputs  []*Output
}

// Transaction is a lazily resolved transaction identified by its hash. Its
// position in the chain and its body are resolved independently.
type Transaction struct {
	x    *Explorer
	hash model.Hash

	parent   lazy[*Block]
	position lazy[model.TransactionIndex]
	body     lazy[transactionBody]
}

func newTransaction(x *Explorer, hash model.Hash) *Transaction {
	return &Transaction{x: x, hash: hash}
}

func (t *Transaction) Hash() model.Hash {
	return t.hash
}

func (t *Transaction) index(ctx context.Context) (model.TransactionIndex, error) {
	return t.position.get(func() (model.TransactionIndex, error) {
		t.x.logger.Debug("resolve transaction position", zap.Stringer("txid", t.hash))
		idx, err := t.x.source.TransactionIndex(ctx, t.hash)
		if err != nil {
			return model.TransactionIndex{}, remoteError(err, "position of transaction %s", t.hash)
		}
		return idx, nil
	})
}

// Depth returns the height of the block holding the transaction.
func (t *Transaction) Depth(ctx context.Context) (uint64, error) {
	idx, err := t.index(ctx)
	return idx.Depth, err
}

// Offset returns the transaction's position within its block.
func (t *Transaction) Offset(ctx context.Context) (uint32, error) {
	idx, err := t.index(ctx)
	return idx.Offset, err
}

// ParentBlock returns the containing block. The block is not checked against
// the chain; it is the block at the resolved depth.
func (t *Transaction) ParentBlock(ctx context.Context) (*Block, error) {
	return t.parent.get(func() (*Block, error) {
		idx, err := t.index(ctx)
		if err != nil {
			return nil, err
		}
		return t.x.Blocks.at(idx.Depth), nil
	})
}

func (t *Transaction) resolveBody(ctx context.Context) (transactionBody, error) {
	return t.body.get(func() (transactionBody, error) {
		t.x.logger.Debug("resolve transaction body", zap.Stringer("txid", t.hash))
		body, err := t.x.source.TransactionBody(ctx, t.hash)
		if err != nil {
			return transactionBody{}, remoteError(err, "body of transaction %s", t.hash)
		}

		resolved := transactionBody{
			version:  body.Version,
			lockTime: body.LockTime,
			inputs:   make([]*Input, len(body.Inputs)),
			outputs:  make([]*Output, len(body.Outputs)),
		}
		for i, in := range body.Inputs {
			input := newInput(t.x, t.hash, uint32(i))
			input.parent.seed(t)
			input.body.seed(in)
			resolved.inputs[i] = input
		}
		for i, out := range body.Outputs {
			output := newOutput(t.x, model.Outpoint{Hash: t.hash, Index: uint32(i)})
			output.parent.seed(t)
			output.body.seed(out)
			resolved.outputs[i] = output
		}
		return resolved, nil
	})
}

// Version returns the transaction format version.
func (t *Transaction) Version(ctx context.Context) (uint32, error) {
	body, err := t.resolveBody(ctx)
	return body.version, err
}

// LockTime returns the raw nLockTime field.
func (t *Transaction) LockTime(ctx context.Context) (uint32, error) {
	body, err := t.resolveBody(ctx)
	return body.lockTime, err
}

// Inputs returns the transaction inputs. Repeated calls return the same proxies.
func (t *Transaction) Inputs(ctx context.Context) ([]*Input, error) {
	body, err := t.resolveBody(ctx)
	return body.inputs, err
}

// Outputs returns the transaction outputs. Repeated calls return the same proxies.
func (t *Transaction) Outputs(ctx context.Context) ([]*Output, error) {
	body, err := t.resolveBody(ctx)
	return body.outputs, err
}

func (t *Transaction) String() string {
	return fmt.Sprintf("<Transaction %s>", t.hash.Short())
}
