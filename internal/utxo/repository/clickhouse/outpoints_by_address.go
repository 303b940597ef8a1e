package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

const outpointsByAddressQuery = `
SELECT
	txid,
	output_index
FROM utxo_transaction_outputs
WHERE coin = ? AND network = ? AND has(addresses, ?)
ORDER BY block_height ASC, txid ASC, output_index ASC`

// OutpointsByAddress returns every output paying address in chain order.
func (r *Repository) OutpointsByAddress(ctx context.Context, address string) (outpoints []model.Outpoint, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("outpoints_by_address", r.coin, r.network, err, start)
	}()

	rows, err := r.conn.Query(ctx, outpointsByAddressQuery, r.coin, r.network, address)
	if err != nil {
		return nil, fmt.Errorf("query outpoints by address: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			txid     string
			outpoint model.Outpoint
		)
		if err = rows.Scan(&txid, &outpoint.Index); err != nil {
			return nil, fmt.Errorf("scan outpoint: %w", err)
		}
		if outpoint.Hash, err = model.ParseHash(txid); err != nil {
			return nil, fmt.Errorf("outpoint txid: %w", err)
		}
		outpoints = append(outpoints, outpoint)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outpoints: %w", err)
	}

	return outpoints, nil
}
