package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
)

// Source implements chain.Source with a Bitcoin node for blocks and transactions
// and an Index for address and spend lookups. The node must run with txindex enabled.
type Source struct {
	rpc   RPCClient
	index Index
}

// NewSource creates a Source.
func NewSource(rpc RPCClient, index Index) (*Source, error) {
	if rpc == nil {
		return nil, errors.New("rpc client is required")
	}
	if index == nil {
		return nil, errors.New("index is required")
	}
	return &Source{rpc: rpc, index: index}, nil
}

var _ chain.Source = (*Source)(nil)

// CurrentHeight returns the depth of the chain tip.
func (s *Source) CurrentHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, rpcError(err, "get block count")
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

func (s *Source) blockHash(ctx context.Context, depth uint64) (*chainhash.Hash, error) {
	height, err := safe.Int64(depth)
	if err != nil {
		return nil, fmt.Errorf("block depth: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(height)
	if err != nil {
		return nil, rpcError(err, fmt.Sprintf("get block hash at depth %d", depth))
	}
	return hash, nil
}

// HeaderByDepth returns the header of the block at depth.
func (s *Source) HeaderByDepth(ctx context.Context, depth uint64) (model.BlockHeader, error) {
	hash, err := s.blockHash(ctx, depth)
	if err != nil {
		return model.BlockHeader{}, err
	}
	return s.header(hash)
}

// HeaderByHash returns the header of the block with the given hash.
func (s *Source) HeaderByHash(ctx context.Context, hash model.Hash) (model.BlockHeader, error) {
	if err := ctx.Err(); err != nil {
		return model.BlockHeader{}, err
	}
	h := hash.Chainhash()
	return s.header(&h)
}

func (s *Source) header(hash *chainhash.Hash) (model.BlockHeader, error) {
	src, err := s.rpc.GetBlockHeader(hash)
	if err != nil {
		return model.BlockHeader{}, rpcError(err, fmt.Sprintf("get block header %s", hash))
	}
	header, err := ConvertHeader(src)
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("block %s: %w", hash, err)
	}
	return header, nil
}

// DepthByHash returns the depth of the block with the given hash.
func (s *Source) DepthByHash(ctx context.Context, hash model.Hash) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	h := hash.Chainhash()
	return s.depth(&h)
}

func (s *Source) depth(hash *chainhash.Hash) (uint64, error) {
	verbose, err := s.rpc.GetBlockHeaderVerbose(hash)
	if err != nil {
		return 0, rpcError(err, fmt.Sprintf("get block header %s", hash))
	}
	depth, err := safe.Uint64(verbose.Height)
	if err != nil {
		return 0, fmt.Errorf("block %s height overflow: %w", hash, err)
	}
	return depth, nil
}

// TransactionHashesByDepth returns the transaction hashes of the block at depth in block order.
func (s *Source) TransactionHashesByDepth(ctx context.Context, depth uint64) ([]model.Hash, error) {
	hash, err := s.blockHash(ctx, depth)
	if err != nil {
		return nil, err
	}
	return s.transactionHashes(hash)
}

// TransactionHashesByHash returns the transaction hashes of the block with the given hash in block order.
func (s *Source) TransactionHashesByHash(ctx context.Context, hash model.Hash) ([]model.Hash, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h := hash.Chainhash()
	return s.transactionHashes(&h)
}

func (s *Source) transactionHashes(hash *chainhash.Hash) ([]model.Hash, error) {
	block, err := s.rpc.GetBlockVerbose(hash)
	if err != nil {
		return nil, rpcError(err, fmt.Sprintf("get block %s", hash))
	}
	hashes := make([]model.Hash, 0, len(block.Tx))
	for _, txid := range block.Tx {
		h, err := model.ParseHash(txid)
		if err != nil {
			return nil, fmt.Errorf("block %s tx id: %w", hash, err)
		}
		hashes = append(hashes, h)
	}
	return hashes, nil
}

// TransactionBody returns version, lock time, inputs and outputs of a transaction.
func (s *Source) TransactionBody(ctx context.Context, hash model.Hash) (model.TransactionBody, error) {
	if err := ctx.Err(); err != nil {
		return model.TransactionBody{}, err
	}
	h := hash.Chainhash()
	tx, err := s.rpc.GetRawTransaction(&h)
	if err != nil {
		return model.TransactionBody{}, rpcError(err, fmt.Sprintf("get raw transaction %s", hash))
	}
	body, err := ConvertTransaction(tx.MsgTx())
	if err != nil {
		return model.TransactionBody{}, fmt.Errorf("transaction %s: %w", hash, err)
	}
	return body, nil
}

// TransactionIndex returns the depth of the block holding a transaction and the
// transaction's position inside it.
func (s *Source) TransactionIndex(ctx context.Context, hash model.Hash) (model.TransactionIndex, error) {
	if err := ctx.Err(); err != nil {
		return model.TransactionIndex{}, err
	}
	h := hash.Chainhash()
	verbose, err := s.rpc.GetRawTransactionVerbose(&h)
	if err != nil {
		return model.TransactionIndex{}, rpcError(err, fmt.Sprintf("get raw transaction %s", hash))
	}
	if verbose.BlockHash == "" {
		return model.TransactionIndex{}, fmt.Errorf("transaction %s is unconfirmed: %w", hash, chain.ErrNotFound)
	}
	blockHash, err := chainhash.NewHashFromStr(verbose.BlockHash)
	if err != nil {
		return model.TransactionIndex{}, fmt.Errorf("transaction %s block hash: %w", hash, err)
	}
	depth, err := s.depth(blockHash)
	if err != nil {
		return model.TransactionIndex{}, err
	}
	block, err := s.rpc.GetBlockVerbose(blockHash)
	if err != nil {
		return model.TransactionIndex{}, rpcError(err, fmt.Sprintf("get block %s", blockHash))
	}
	txid := hash.String()
	for offset, id := range block.Tx {
		if id != txid {
			continue
		}
		pos, err := safe.Uint32(offset)
		if err != nil {
			return model.TransactionIndex{}, fmt.Errorf("transaction %s offset overflow: %w", hash, err)
		}
		return model.TransactionIndex{Depth: depth, Offset: pos}, nil
	}
	return model.TransactionIndex{}, fmt.Errorf("transaction %s missing from block %s: %w", hash, blockHash, chain.ErrNotFound)
}

// OutpointsForAddress returns the outputs credited to address.
func (s *Source) OutpointsForAddress(ctx context.Context, address string) ([]model.Outpoint, error) {
	outpoints, err := s.index.OutpointsByAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("outpoints for address %s: %w", address, err)
	}
	return outpoints, nil
}

// SpendingInput returns the input spending outpoint, if any.
func (s *Source) SpendingInput(ctx context.Context, outpoint model.Outpoint) (model.Inpoint, bool, error) {
	inpoint, found, err := s.index.SpendingInput(ctx, outpoint)
	if err != nil {
		return model.Inpoint{}, false, fmt.Errorf("spending input for %s:%d: %w", outpoint.Hash, outpoint.Index, err)
	}
	return inpoint, found, nil
}
