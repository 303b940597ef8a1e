package explorer

import (
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// Transactions looks up transactions by hash.
type Transactions struct {
	x *Explorer
}

// Get accepts the same hash key forms as Blocks.Get.
func (t *Transactions) Get(key any) (*Transaction, error) {
	hash, err := hashFromKey(key)
	if err != nil {
		return nil, err
	}
	return t.ByHash(hash), nil
}

// ByHash returns an unresolved transaction proxy without a remote call.
func (t *Transactions) ByHash(hash model.Hash) *Transaction {
	return newTransaction(t.x, hash)
}
