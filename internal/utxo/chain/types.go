// Package chain defines the remote data source the explorer resolves entities through,
// together with decorators layered around it.
package chain

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ErrNotFound marks a record that does not exist upstream.
var ErrNotFound = errors.New("not found")

type (
	// Source answers point queries about the chain.
	Source interface {
		HeaderByDepth(ctx context.Context, depth uint64) (model.BlockHeader, error)
		HeaderByHash(ctx context.Context, hash model.Hash) (model.BlockHeader, error)
		DepthByHash(ctx context.Context, hash model.Hash) (uint64, error)
		CurrentHeight(ctx context.Context) (uint64, error)
		TransactionHashesByDepth(ctx context.Context, depth uint64) ([]model.Hash, error)
		TransactionHashesByHash(ctx context.Context, hash model.Hash) ([]model.Hash, error)
		TransactionBody(ctx context.Context, hash model.Hash) (model.TransactionBody, error)
		TransactionIndex(ctx context.Context, hash model.Hash) (model.TransactionIndex, error)
		OutpointsForAddress(ctx context.Context, address string) ([]model.Outpoint, error)
		// SpendingInput returns found == false with a nil error when no input spends the outpoint.
		SpendingInput(ctx context.Context, outpoint model.Outpoint) (model.Inpoint, bool, error)
	}

	// Metrics records the outcome of a source operation.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
