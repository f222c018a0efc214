package engine

import (
	"l2replay/internal/marketdata"

	"github.com/rs/zerolog/log"
)

// Init seeds a fresh Book per instrument from externally supplied
// snapshots, for warm-starting a replay from a known session state. Any
// existing book for a seeded instrument is discarded and replaced.
func (s *SnapshotBuilder) Init(seeds []marketdata.Snapshot) {
	for _, seed := range seeds {
		book := NewBook(seed.StockID, s.cfg)
		book.timestamp = seed.ClockAtArrival
		book.cumVolume = seed.CumVolume
		book.cumAmount = int64(seed.CumAmount * s.cfg.PriceDivisor)
		book.numTrades = seed.NumTrades
		book.close = int64(seed.Close * s.cfg.PriceDivisor)
		book.openPrice = int64(seed.OpenPrice * s.cfg.PriceDivisor)

		seedLevel := func(side marketdata.Side, price float64, qty int64) {
			// A zero-padded level (see Book.ToSnapshot) carries no
			// liquidity; replaying it would insert a bogus zero-quantity
			// level and violate the "quantity > 0" invariant.
			if qty == 0 {
				return
			}
			book.applyChange(side, int64(price*s.cfg.PriceDivisor), qty)
		}

		seedLevel(marketdata.SideBid, seed.Bid1Price, seed.Bid1Qty)
		seedLevel(marketdata.SideBid, seed.Bid2Price, seed.Bid2Qty)
		seedLevel(marketdata.SideBid, seed.Bid3Price, seed.Bid3Qty)
		seedLevel(marketdata.SideBid, seed.Bid4Price, seed.Bid4Qty)
		seedLevel(marketdata.SideBid, seed.Bid5Price, seed.Bid5Qty)

		seedLevel(marketdata.SideAsk, seed.Ask1Price, seed.Ask1Qty)
		seedLevel(marketdata.SideAsk, seed.Ask2Price, seed.Ask2Qty)
		seedLevel(marketdata.SideAsk, seed.Ask3Price, seed.Ask3Qty)
		seedLevel(marketdata.SideAsk, seed.Ask4Price, seed.Ask4Qty)
		seedLevel(marketdata.SideAsk, seed.Ask5Price, seed.Ask5Qty)

		s.books.Set(&bookEntry{securityID: seed.StockID, book: book})
	}

	log.Info().
		Str("runId", s.RunID.String()).
		Int("instruments", len(seeds)).
		Msg("seeded books from snapshots")
}
