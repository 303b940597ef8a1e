package explorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"go.uber.org/zap"
)

// SpendState tells whether an output's spender has been looked up and found.
type SpendState uint8

const (
	SpendUnresolved SpendState = iota
	SpendAbsent
	SpendPresent
)

func (s SpendState) String() string {
	switch s {
	case SpendUnresolved:
		return "unresolved"
	case SpendAbsent:
		return "unspent"
	case SpendPresent:
		return "spent"
	default:
		return fmt.Sprintf("SpendState(%d)", uint8(s))
	}
}

// Spend is the result of a spender lookup. Input is set only in the
// SpendPresent state.
type Spend struct {
	State SpendState
	Input *Input
}

func (s Spend) IsSpent() bool {
	return s.State == SpendPresent
}

// Output is a lazily resolved transaction output addressed by its outpoint.
type Output struct {
	x        *Explorer
	outpoint model.Outpoint

	parent lazy[*Transaction]
	body   lazy[model.TransactionOutput]
	spend  lazy[Spend]
}

func newOutput(x *Explorer, outpoint model.Outpoint) *Output {
	return &Output{x: x, outpoint: outpoint}
}

func (o *Output) Outpoint() model.Outpoint {
	return o.outpoint
}

func (o *Output) TransactionHash() model.Hash {
	return o.outpoint.Hash
}

func (o *Output) Index() uint32 {
	return o.outpoint.Index
}

// Equal reports whether both proxies address the same outpoint.
func (o *Output) Equal(other *Output) bool {
	return other != nil && o.outpoint == other.outpoint
}

// ParentTx returns the funding transaction. It never calls the data source.
func (o *Output) ParentTx() *Transaction {
	return o.parent.getOrInit(func() *Transaction {
		return o.x.Transactions.ByHash(o.outpoint.Hash)
	})
}

func (o *Output) resolveBody(ctx context.Context) (model.TransactionOutput, error) {
	return o.body.get(func() (model.TransactionOutput, error) {
		o.x.logger.Debug("resolve output",
			zap.Stringer("txid", o.outpoint.Hash),
			zap.Uint32("index", o.outpoint.Index),
		)
		body, err := o.x.source.TransactionBody(ctx, o.outpoint.Hash)
		if err != nil {
			return model.TransactionOutput{}, remoteError(err, "output %s:%d", o.outpoint.Hash, o.outpoint.Index)
		}
		if int(o.outpoint.Index) >= len(body.Outputs) {
			return model.TransactionOutput{}, remoteError(chain.ErrNotFound,
				"output %s:%d of %d", o.outpoint.Hash, o.outpoint.Index, len(body.Outputs))
		}
		return body.Outputs[o.outpoint.Index], nil
	})
}

// Value returns the output amount in the coin's smallest unit.
func (o *Output) Value(ctx context.Context) (uint64, error) {
	body, err := o.resolveBody(ctx)
	return body.Value, err
}

func (o *Output) Script(ctx context.Context) ([]byte, error) {
	body, err := o.resolveBody(ctx)
	return body.Script, err
}

// Addresses decodes the addresses the output script pays to.
func (o *Output) Addresses(ctx context.Context) ([]string, error) {
	if o.x.codec == nil {
		return nil, errors.New("address codec is not configured")
	}
	script, err := o.Script(ctx)
	if err != nil {
		return nil, err
	}
	addresses, err := o.x.codec.DecodeAddresses(script)
	if err != nil {
		return nil, fmt.Errorf("decode addresses of output %s:%d: %w", o.outpoint.Hash, o.outpoint.Index, err)
	}
	return addresses, nil
}

// Spend looks up the input consuming this output once and caches the answer,
// including the answer that nothing spends it.
func (o *Output) Spend(ctx context.Context) (Spend, error) {
	return o.spend.get(func() (Spend, error) {
		o.x.logger.Debug("resolve spender",
			zap.Stringer("txid", o.outpoint.Hash),
			zap.Uint32("index", o.outpoint.Index),
		)
		inpoint, found, err := o.x.source.SpendingInput(ctx, o.outpoint)
		switch {
		case errors.Is(err, chain.ErrNotFound):
			// Some sources report a missing spender as a lookup failure.
			return Spend{State: SpendAbsent}, nil
		case err != nil:
			return Spend{}, remoteError(err, "spender of %s:%d", o.outpoint.Hash, o.outpoint.Index)
		case !found:
			return Spend{State: SpendAbsent}, nil
		}
		return Spend{State: SpendPresent, Input: newInput(o.x, inpoint.Hash, inpoint.Index)}, nil
	})
}

// PeekSpend returns the cached spend state without calling the data source.
func (o *Output) PeekSpend() Spend {
	spend, ok := o.spend.peek()
	if !ok {
		return Spend{State: SpendUnresolved}
	}
	return spend
}

func (o *Output) String() string {
	return fmt.Sprintf("<Output %s:%d>", o.outpoint.Hash.Short(), o.outpoint.Index)
}
