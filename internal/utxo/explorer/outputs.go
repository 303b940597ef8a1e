package explorer

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/workerpool"
	"go.uber.org/zap"
)

// Outputs looks up outputs credited to an address.
type Outputs struct {
	x *Explorer
}

// Get accepts only string keys.
func (o *Outputs) Get(ctx context.Context, key any) ([]*Output, error) {
	address, ok := key.(string)
	if !ok {
		return nil, fmt.Errorf("%w: address key of type %T", ErrInvalidKey, key)
	}
	return o.ByAddress(ctx, address)
}

// ByAddress returns one unresolved proxy per outpoint paid to address, in the
// order the data source reports them.
func (o *Outputs) ByAddress(ctx context.Context, address string) ([]*Output, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidKey)
	}
	if o.x.codec != nil {
		if err := o.x.codec.ValidateAddress(address); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
	}

	o.x.logger.Debug("resolve outputs for address", zap.String("address", address))
	outpoints, err := o.x.source.OutpointsForAddress(ctx, address)
	if err != nil {
		return nil, remoteError(err, "outputs of address %s", address)
	}

	outputs := make([]*Output, len(outpoints))
	for i, op := range outpoints {
		outputs[i] = newOutput(o.x, op)
	}
	return outputs, nil
}

// ResolveOutputs resolves the body and spender of every output using up to
// workers concurrent data source calls. It stops at the first failure.
func ResolveOutputs(ctx context.Context, outputs []*Output, workers int) error {
	return workerpool.Process(ctx, workers, outputs, func(ctx context.Context, out *Output) error {
		if _, err := out.Value(ctx); err != nil {
			return err
		}
		_, err := out.Spend(ctx)
		return err
	}, nil)
}

// Balance sums the values of the outputs that have no spender.
func Balance(ctx context.Context, outputs []*Output, workers int) (uint64, error) {
	values, err := workerpool.Map(ctx, workers, outputs, func(ctx context.Context, out *Output) (uint64, error) {
		spend, err := out.Spend(ctx)
		if err != nil {
			return 0, err
		}
		if spend.IsSpent() {
			return 0, nil
		}
		return out.Value(ctx)
	})
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, v := range values {
		total += v
	}
	return total, nil
}
