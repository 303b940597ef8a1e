package explorer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testHash(s string) model.Hash {
	return model.Hash(sha256.Sum256([]byte(s)))
}

// stubSource is an in-memory chain that counts calls per operation.
type stubSource struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
	delay time.Duration

	headers   []model.BlockHeader
	blockTxs  [][]model.Hash
	bodies    map[model.Hash]model.TransactionBody
	spends    map[model.Outpoint]model.Inpoint
	addresses map[string][]model.Outpoint
	spendErr  error
}

var _ chain.Source = (*stubSource)(nil)

var (
	spendTxHash = testHash("spend")
	payAddress  = "mipcBbFg9gMiCh81Kj8tqqdgoZub1ZJRfn"
)

// newStubSource builds a linked chain of height tip. Every block has a
// coinbase; block 2 also spends the coinbase output of block 1.
func newStubSource(tip int) *stubSource {
	s := &stubSource{
		calls:     make(map[string]int),
		bodies:    make(map[model.Hash]model.TransactionBody),
		spends:    make(map[model.Outpoint]model.Inpoint),
		addresses: make(map[string][]model.Outpoint),
	}

	var prev model.Hash
	for d := 0; d <= tip; d++ {
		coinbase := coinbaseHash(d)
		s.bodies[coinbase] = model.TransactionBody{
			Version: 1,
			Inputs: []model.TransactionInput{{
				Script:           []byte{0x04, byte(d)},
				Sequence:         0xffffffff,
				PreviousOutpoint: model.Outpoint{Index: model.CoinbaseIndex},
			}},
			Outputs: []model.TransactionOutput{
				{Value: 50_0000_0000, Script: []byte{0x76, 0xa9, byte(d)}},
			},
		}
		txs := []model.Hash{coinbase}
		if d == 2 {
			txs = append(txs, spendTxHash)
		}

		header := model.BlockHeader{
			Version:           1,
			PreviousBlockHash: prev,
			MerkleRoot:        testHash(fmt.Sprintf("merkle-%d", d)),
			Timestamp:         1296688602 + uint32(d)*600,
			Bits:              0x207fffff,
			Nonce:             uint32(d),
		}
		s.headers = append(s.headers, header)
		s.blockTxs = append(s.blockTxs, txs)
		prev = header.Hash()
	}

	funding := model.Outpoint{Hash: coinbaseHash(1), Index: 0}
	s.bodies[spendTxHash] = model.TransactionBody{
		Version:  2,
		LockTime: 101,
		Inputs: []model.TransactionInput{{
			Script:           []byte{0x47, 0x30},
			Sequence:         0xfffffffe,
			PreviousOutpoint: funding,
		}},
		Outputs: []model.TransactionOutput{
			{Value: 30_0000_0000, Script: []byte{0x00, 0x14}},
			{Value: 19_9999_0000, Script: []byte{0x00, 0x15}},
		},
	}
	s.spends[funding] = model.Inpoint{Hash: spendTxHash, Index: 0}
	s.addresses[payAddress] = []model.Outpoint{
		funding,
		{Hash: spendTxHash, Index: 1},
	}
	return s
}

func coinbaseHash(depth int) model.Hash {
	return testHash(fmt.Sprintf("coinbase-%d", depth))
}

func (s *stubSource) record(op string) error {
	s.mu.Lock()
	s.calls[op]++
	err := s.err
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return err
}

func (s *stubSource) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubSource) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *stubSource) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *stubSource) HeaderByDepth(_ context.Context, depth uint64) (model.BlockHeader, error) {
	if err := s.record("HeaderByDepth"); err != nil {
		return model.BlockHeader{}, err
	}
	if depth >= uint64(len(s.headers)) {
		return model.BlockHeader{}, chain.ErrNotFound
	}
	return s.headers[depth], nil
}

func (s *stubSource) HeaderByHash(_ context.Context, hash model.Hash) (model.BlockHeader, error) {
	if err := s.record("HeaderByHash"); err != nil {
		return model.BlockHeader{}, err
	}
	d, ok := s.depthOf(hash)
	if !ok {
		return model.BlockHeader{}, chain.ErrNotFound
	}
	return s.headers[d], nil
}

func (s *stubSource) DepthByHash(_ context.Context, hash model.Hash) (uint64, error) {
	if err := s.record("DepthByHash"); err != nil {
		return 0, err
	}
	d, ok := s.depthOf(hash)
	if !ok {
		return 0, chain.ErrNotFound
	}
	return d, nil
}

func (s *stubSource) CurrentHeight(context.Context) (uint64, error) {
	if err := s.record("CurrentHeight"); err != nil {
		return 0, err
	}
	return uint64(len(s.headers) - 1), nil
}

func (s *stubSource) TransactionHashesByDepth(_ context.Context, depth uint64) ([]model.Hash, error) {
	if err := s.record("TransactionHashesByDepth"); err != nil {
		return nil, err
	}
	if depth >= uint64(len(s.blockTxs)) {
		return nil, chain.ErrNotFound
	}
	return s.blockTxs[depth], nil
}

func (s *stubSource) TransactionHashesByHash(_ context.Context, hash model.Hash) ([]model.Hash, error) {
	if err := s.record("TransactionHashesByHash"); err != nil {
		return nil, err
	}
	d, ok := s.depthOf(hash)
	if !ok {
		return nil, chain.ErrNotFound
	}
	return s.blockTxs[d], nil
}

func (s *stubSource) TransactionBody(_ context.Context, hash model.Hash) (model.TransactionBody, error) {
	if err := s.record("TransactionBody"); err != nil {
		return model.TransactionBody{}, err
	}
	body, ok := s.bodies[hash]
	if !ok {
		return model.TransactionBody{}, chain.ErrNotFound
	}
	return body, nil
}

func (s *stubSource) TransactionIndex(_ context.Context, hash model.Hash) (model.TransactionIndex, error) {
	if err := s.record("TransactionIndex"); err != nil {
		return model.TransactionIndex{}, err
	}
	for d, txs := range s.blockTxs {
		for i, tx := range txs {
			if tx == hash {
				return model.TransactionIndex{Depth: uint64(d), Offset: uint32(i)}, nil
			}
		}
	}
	return model.TransactionIndex{}, chain.ErrNotFound
}

func (s *stubSource) OutpointsForAddress(_ context.Context, address string) ([]model.Outpoint, error) {
	if err := s.record("OutpointsForAddress"); err != nil {
		return nil, err
	}
	return s.addresses[address], nil
}

func (s *stubSource) SpendingInput(_ context.Context, outpoint model.Outpoint) (model.Inpoint, bool, error) {
	if err := s.record("SpendingInput"); err != nil {
		return model.Inpoint{}, false, err
	}
	if s.spendErr != nil {
		return model.Inpoint{}, false, s.spendErr
	}
	in, ok := s.spends[outpoint]
	return in, ok, nil
}

func (s *stubSource) depthOf(hash model.Hash) (uint64, bool) {
	for d, h := range s.headers {
		if h.Hash() == hash {
			return uint64(d), true
		}
	}
	return 0, false
}

func newTestExplorer(t *testing.T, source *stubSource) *Explorer {
	t.Helper()
	x, err := New(source, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	return x
}
