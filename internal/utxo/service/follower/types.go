package follower

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/explorer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveBlock(depth uint64)
		ObserveReorg()
	}

	// BlockHandler receives every block the follower walks onto. A block may
	// be handled again after a reorganization.
	BlockHandler interface {
		HandleBlock(ctx context.Context, block *explorer.Block) error
	}
)

// BlockHandlerFunc adapts a function to BlockHandler.
type BlockHandlerFunc func(ctx context.Context, block *explorer.Block) error

func (f BlockHandlerFunc) HandleBlock(ctx context.Context, block *explorer.Block) error {
	return f(ctx, block)
}
