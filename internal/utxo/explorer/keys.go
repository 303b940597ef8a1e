package explorer

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// hashFromKey accepts a 64 character hex string, a 32 byte raw string or a
// 32 byte slice.
func hashFromKey(key any) (model.Hash, error) {
	switch k := key.(type) {
	case model.Hash:
		return k, nil
	case []byte:
		h, err := model.HashFromBytes(k)
		if err != nil {
			return model.Hash{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return h, nil
	case string:
		switch len(k) {
		case model.HashSize * 2:
			h, err := model.ParseHash(k)
			if err != nil {
				return model.Hash{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
			}
			return h, nil
		case model.HashSize:
			return model.HashFromBytes([]byte(k))
		default:
			return model.Hash{}, fmt.Errorf("%w: hash string of length %d", ErrInvalidKey, len(k))
		}
	default:
		return model.Hash{}, fmt.Errorf("%w: unsupported hash key type %T", ErrInvalidKey, key)
	}
}
