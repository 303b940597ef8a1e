package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/explorer"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/service/follower"
	"go.uber.org/zap"
)

type blockCommand struct {
	Args struct {
		Key string `positional-arg-name:"depth|hash" required:"yes"`
	} `positional-args:"yes"`
}

type txCommand struct {
	Args struct {
		Hash string `positional-arg-name:"txid" required:"yes"`
	} `positional-args:"yes"`
}

type addressCommand struct {
	Args struct {
		Address string `positional-arg-name:"address" required:"yes"`
	} `positional-args:"yes"`
}

type followCommand struct {
	From int64 `long:"from" description:"block index to start from, negative counts back from the tip" default:"-1"`
}

type app struct {
	explorer *explorer.Explorer
	out      io.Writer
	workers  int
	logger   *zap.Logger
}

// blockKey turns a command line argument into a Blocks key. Anything that
// parses as an integer is an index.
func blockKey(arg string) any {
	if idx, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return idx
	}
	return arg
}

func (a *app) showBlock(ctx context.Context, arg string) error {
	block, err := a.explorer.Blocks.Get(ctx, blockKey(arg))
	if err != nil {
		return err
	}
	if err := a.printBlock(ctx, block); err != nil {
		return err
	}

	txs, err := block.Transactions(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "transactions: %d\n", len(txs))
	for i, tx := range txs {
		fmt.Fprintf(a.out, "  %4d %s\n", i, tx.Hash())
	}
	return nil
}

func (a *app) printBlock(ctx context.Context, block *explorer.Block) error {
	depth, err := block.Depth(ctx)
	if err != nil {
		return err
	}
	hash, err := block.Hash(ctx)
	if err != nil {
		return err
	}
	header, err := block.Header(ctx)
	if err != nil {
		return err
	}
	ts, err := block.Timestamp(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "block %d %s\n", depth, hash)
	fmt.Fprintf(a.out, "  version   %d\n", header.Version)
	fmt.Fprintf(a.out, "  previous  %s\n", header.PreviousBlockHash)
	fmt.Fprintf(a.out, "  merkle    %s\n", header.MerkleRoot)
	fmt.Fprintf(a.out, "  time      %s\n", ts.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(a.out, "  bits      %08x\n", header.Bits)
	fmt.Fprintf(a.out, "  nonce     %d\n", header.Nonce)
	return nil
}

func (a *app) showTransaction(ctx context.Context, arg string) error {
	tx, err := a.explorer.Transactions.Get(arg)
	if err != nil {
		return err
	}
	depth, err := tx.Depth(ctx)
	if err != nil {
		return err
	}
	offset, err := tx.Offset(ctx)
	if err != nil {
		return err
	}
	version, err := tx.Version(ctx)
	if err != nil {
		return err
	}
	lockTime, err := tx.LockTime(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "transaction %s\n", tx.Hash())
	fmt.Fprintf(a.out, "  block     %d, position %d\n", depth, offset)
	fmt.Fprintf(a.out, "  version   %d\n", version)
	fmt.Fprintf(a.out, "  locktime  %d\n", lockTime)

	inputs, err := tx.Inputs(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "inputs: %d\n", len(inputs))
	for _, in := range inputs {
		coinbase, err := in.IsCoinbase(ctx)
		if err != nil {
			return err
		}
		if coinbase {
			fmt.Fprintf(a.out, "  %4d coinbase\n", in.Index())
			continue
		}
		prev, err := in.PreviousOutpoint(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "  %4d %s:%d\n", in.Index(), prev.Hash, prev.Index)
	}

	outputs, err := tx.Outputs(ctx)
	if err != nil {
		return err
	}
	if err := explorer.ResolveOutputs(ctx, outputs, a.workers); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "outputs: %d\n", len(outputs))
	for _, out := range outputs {
		if err := a.printOutput(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) showAddress(ctx context.Context, address string) error {
	outputs, err := a.explorer.Outputs.Get(ctx, address)
	if err != nil {
		return err
	}
	if err := explorer.ResolveOutputs(ctx, outputs, a.workers); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "address %s\n", address)
	for _, out := range outputs {
		if err := a.printOutput(ctx, out); err != nil {
			return err
		}
	}
	balance, err := explorer.Balance(ctx, outputs, a.workers)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "outputs: %d, unspent balance: %s\n", len(outputs), btcutil.Amount(balance))
	return nil
}

func (a *app) printOutput(ctx context.Context, out *explorer.Output) error {
	value, err := out.Value(ctx)
	if err != nil {
		return err
	}
	spend, err := out.Spend(ctx)
	if err != nil {
		return err
	}

	op := out.Outpoint()
	if spend.IsSpent() {
		in := spend.Input.Inpoint()
		fmt.Fprintf(a.out, "  %s:%d %s spent by %s:%d\n", op.Hash, op.Index, btcutil.Amount(value), in.Hash, in.Index)
		return nil
	}
	fmt.Fprintf(a.out, "  %s:%d %s %s\n", op.Hash, op.Index, btcutil.Amount(value), spend.State)
	return nil
}

func (a *app) follow(ctx context.Context, from int64, m follower.Metrics, blockSignal <-chan struct{}) error {
	svc, err := follower.NewService(a.explorer, follower.BlockHandlerFunc(a.printBlock), m, a.logger, blockSignal)
	if err != nil {
		return err
	}
	return svc.Run(ctx, from)
}
