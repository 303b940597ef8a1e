package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

const spendingInputQuery = `
SELECT
	txid,
	input_index
FROM utxo_transaction_inputs
WHERE coin = ? AND network = ? AND prev_txid = CAST(? AS FixedString(64)) AND prev_vout = ?
LIMIT 1`

// SpendingInput returns the input consuming outpoint. found is false when the
// index holds no spender.
func (r *Repository) SpendingInput(ctx context.Context, outpoint model.Outpoint) (inpoint model.Inpoint, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("spending_input", r.coin, r.network, err, start)
	}()

	rows, err := r.conn.Query(ctx, spendingInputQuery, r.coin, r.network, outpoint.Hash.String(), outpoint.Index)
	if err != nil {
		return model.Inpoint{}, false, fmt.Errorf("query spending input: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Inpoint{}, false, fmt.Errorf("iterate spending input: %w", err)
		}
		return model.Inpoint{}, false, nil
	}

	var txid string
	if err = rows.Scan(&txid, &inpoint.Index); err != nil {
		return model.Inpoint{}, false, fmt.Errorf("scan spending input: %w", err)
	}
	if inpoint.Hash, err = model.ParseHash(txid); err != nil {
		return model.Inpoint{}, false, fmt.Errorf("spending input txid: %w", err)
	}
	return inpoint, true, nil
}
