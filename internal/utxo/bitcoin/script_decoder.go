package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// ScriptDecoder translates between output scripts and addresses of one network.
type ScriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder initializes a decoder using params of the provided network.
func NewScriptDecoder(network model.Network) (*ScriptDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &ScriptDecoder{params: params}, nil
}

// DecodeAddresses extracts the addresses paid by a public key script.
func (d *ScriptDecoder) DecodeAddresses(script []byte) ([]string, error) {
	if len(script) == 0 {
		return nil, nil
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result, nil
}

// ValidateAddress checks that address decodes and belongs to the decoder's network.
func (d *ScriptDecoder) ValidateAddress(address string) error {
	addr, err := btcutil.DecodeAddress(address, d.params)
	if err != nil {
		return fmt.Errorf("decode address %q: %w", address, err)
	}
	if !addr.IsForNet(d.params) {
		return fmt.Errorf("address %q is not for %s", address, d.params.Name)
	}
	return nil
}

// ChainParams returns btcd chain parameters for a network name.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
