package ingest

import (
	"fmt"

	"l2replay/internal/marketdata"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// Streams is the pair of pre-sorted event sequences the replay engine
// merges. Both CSVs are assumed to already be sorted by clockAtArrival;
// ingestion does not re-sort them.
type Streams struct {
	Orders []marketdata.Order
	Trades []marketdata.Trade
}

// Load reads the order and trade CSVs named by orderPath and tradePath.
// The two files have no dependency on each other, so they are parsed
// concurrently under a supervised goroutine pair; both are joined before
// Load returns, so nothing downstream ever observes partial or concurrent
// access to either slice. This does not reintroduce concurrency into the
// engine itself — SnapshotBuilder only ever sees the two slices after both
// goroutines have finished.
func Load(orderPath, tradePath string) (Streams, error) {
	runID := uuid.New()
	log.Info().
		Str("runId", runID.String()).
		Str("orderPath", orderPath).
		Str("tradePath", tradePath).
		Msg("loading market data streams")

	var (
		t      tomb.Tomb
		orders []marketdata.Order
		trades []marketdata.Trade
	)

	t.Go(func() error {
		rows, err := readRows(orderPath)
		if err != nil {
			return err
		}
		orders = make([]marketdata.Order, len(rows))
		for i, row := range rows {
			order, err := marketdata.OrderFromRow(row)
			if err != nil {
				return fmt.Errorf("ingest: order row %d: %w", i+2, err)
			}
			orders[i] = order
		}
		return nil
	})

	t.Go(func() error {
		rows, err := readRows(tradePath)
		if err != nil {
			return err
		}
		trades = make([]marketdata.Trade, len(rows))
		for i, row := range rows {
			trade, err := marketdata.TradeFromRow(row)
			if err != nil {
				return fmt.Errorf("ingest: trade row %d: %w", i+2, err)
			}
			trades[i] = trade
		}
		return nil
	})

	if err := t.Wait(); err != nil {
		return Streams{}, err
	}

	log.Info().
		Str("runId", runID.String()).
		Int("orders", len(orders)).
		Int("trades", len(trades)).
		Msg("loaded market data streams")

	return Streams{Orders: orders, Trades: trades}, nil
}
