package engine

import (
	"l2replay/internal/marketdata"

	"github.com/rs/zerolog/log"
)

// trackedOrder is the slice of an incoming order that a later cancellation
// needs to recover: side, type, price and original quantity. The book
// keeps this copy rather than a reference to the full event — ingestion
// owns the event slice outright and the book's index can outlive whatever
// container held the original row.
type trackedOrder struct {
	side      marketdata.Side
	orderType marketdata.OrderType
	price     int64
	quantity  int64
}

// Book is the per-instrument Level-2 state: two sorted price-level
// sequences, the Best-order accumulators, the order index used to resolve
// cancellations, and the running session statistics.
type Book struct {
	instID int32
	cfg    BookConfig

	timestamp int64

	bidLevels []marketdata.Level // strictly descending in price
	askLevels []marketdata.Level // strictly ascending in price

	bidBestQty int64
	askBestQty int64

	orders map[int64]trackedOrder

	cumVolume int64
	cumAmount int64
	numTrades int64
	close     int64
	openPrice int64
}

// NewBook creates an empty book for the given instrument. A zero
// PriceDivisor falls back to DefaultBookConfig's divisor rather than
// dividing by zero in ToSnapshot; every other BookConfig field is used as
// given.
func NewBook(instID int32, cfg BookConfig) *Book {
	if cfg.PriceDivisor == 0 {
		cfg.PriceDivisor = DefaultBookConfig().PriceDivisor
	}
	return &Book{
		instID: instID,
		cfg:    cfg,
		orders: make(map[int64]trackedOrder),
	}
}

// Timestamp returns the clock of the last event applied to this book.
func (b *Book) Timestamp() int64 { return b.timestamp }

// applyChange inserts, adjusts or removes a level on one side. Side
// SideUnknown is silently ignored. A level whose quantity falls to zero or
// below after the update is removed.
func (b *Book) applyChange(side marketdata.Side, price, signedQty int64) {
	var levels *[]marketdata.Level
	switch side {
	case marketdata.SideBid:
		levels = &b.bidLevels
	case marketdata.SideAsk:
		levels = &b.askLevels
	default:
		return
	}

	idx := 0
	for idx < len(*levels) && moreAggressive(side, (*levels)[idx].Price, price) {
		idx++
	}

	if idx == len(*levels) || (*levels)[idx].Price != price {
		level := marketdata.Level{Price: price, Quantity: signedQty}
		*levels = insertLevel(*levels, idx, level)
		log.Debug().
			Int32("instrument", b.instID).
			Int64("clock", b.timestamp).
			Str("side", side.String()).
			Int64("price", price).
			Int64("quantity", signedQty).
			Int("index", idx).
			Msg("inserted new price level")
		return
	}

	(*levels)[idx].Quantity += signedQty
	if (*levels)[idx].Quantity <= 0 {
		*levels = append((*levels)[:idx], (*levels)[idx+1:]...)
	}
}

// moreAggressive reports whether price a is strictly more aggressive than
// price b on the given side: higher for bids, lower for asks.
func moreAggressive(side marketdata.Side, a, b int64) bool {
	if side == marketdata.SideBid {
		return a > b
	}
	return a < b
}

func insertLevel(levels []marketdata.Level, idx int, level marketdata.Level) []marketdata.Level {
	levels = append(levels, marketdata.Level{})
	copy(levels[idx+1:], levels[idx:])
	levels[idx] = level
	return levels
}

// HandleOrder ingests an order event. Only strictly stale events (clock <
// book timestamp) are dropped: events sharing the book's current clock are
// still applied, since two events can legitimately share one packet's
// clock. Do not use <= here — that would drop the second of a same-clock
// pair instead of keeping it.
func (b *Book) HandleOrder(order marketdata.Order) {
	if order.ClockAtArrival < b.timestamp {
		return
	}
	b.timestamp = order.ClockAtArrival
	b.orders[order.ApplSeqNum] = trackedOrder{
		side:      order.Side,
		orderType: order.OrderType,
		price:     order.Price,
		quantity:  order.OrderQty,
	}

	switch order.OrderType {
	case marketdata.OrderTypeLimit, marketdata.OrderTypeMarket:
		b.applyChange(order.Side, order.Price, order.OrderQty)
	case marketdata.OrderTypeBest:
		switch order.Side {
		case marketdata.SideBid:
			b.bidBestQty += order.OrderQty
		case marketdata.SideAsk:
			b.askBestQty += order.OrderQty
		}
	}

	if b.timestamp >= b.cfg.CrossThreshold && b.crossed() {
		b.resolveCross()
	}
}

// crossed reports whether the top of book is crossed: both sides non-empty
// and the best ask is at or below the best bid.
func (b *Book) crossed() bool {
	if len(b.bidLevels) == 0 || len(b.askLevels) == 0 {
		return false
	}
	return b.askLevels[0].Price <= b.bidLevels[0].Price
}

// resolveCross repeatedly drains the smaller of the top bid/ask quantities
// until the book is uncrossed. Each iteration removes at least one
// top-of-book level (or reduces both to zero), so it is guaranteed to
// terminate.
func (b *Book) resolveCross() {
	for b.crossed() {
		bid := b.bidLevels[0]
		ask := b.askLevels[0]
		qty := min(bid.Quantity, ask.Quantity)

		log.Debug().
			Int32("instrument", b.instID).
			Int64("bidPrice", bid.Price).
			Int64("askPrice", ask.Price).
			Int64("quantity", qty).
			Msg("resolving crossed book")

		// The price passed here only selects which level to drain, it is
		// not a trade price — crossing the book during the auction phase
		// never emits a simulated trade event, it only mutates the book.
		b.applyChange(marketdata.SideBid, bid.Price, -qty)
		b.applyChange(marketdata.SideAsk, ask.Price, -qty)
	}
}

// HandleTrade ingests a trade event: either a real fill (whose book-side
// effect was already produced by the cross resolver at order time, so only
// the session statistics move here) or a cancellation (which looks up the
// withdrawn order by sequence number and reverses its effect on the book).
func (b *Book) HandleTrade(trade marketdata.Trade) {
	if trade.ClockAtArrival < b.timestamp {
		return
	}
	b.timestamp = trade.ClockAtArrival

	switch trade.ExecType {
	case marketdata.ExecTypeTraded:
		b.numTrades++
		b.cumVolume += trade.TradeQty
		b.cumAmount += trade.TradeQty * trade.TradePrice
		b.close = trade.TradePrice
		if b.openPrice == 0 {
			b.openPrice = trade.TradePrice
		}

	case marketdata.ExecTypeCancelled:
		b.handleCancel(trade)
	}
}

func (b *Book) handleCancel(trade marketdata.Trade) {
	seq := trade.BidApplSeqNum
	if seq == 0 {
		seq = trade.OfferApplSeqNum
	}

	order, ok := b.orders[seq]
	if !ok {
		// A cancellation naming an order we never saw is dropped with a
		// warning rather than treated as fatal.
		log.Warn().
			Int32("instrument", b.instID).
			Int64("sequenceNo", seq).
			Msg("cancelled trade references unknown order, dropping")
		return
	}

	switch order.orderType {
	case marketdata.OrderTypeLimit, marketdata.OrderTypeMarket:
		b.applyChange(order.side, order.price, -trade.TradeQty)
	case marketdata.OrderTypeBest:
		// Uses the order's original quantity, not the trade's cancelled
		// quantity. Suspicious for a partial cancellation, but not
		// silently "fixed" here since the feed has never been observed
		// to send one.
		switch order.side {
		case marketdata.SideBid:
			b.bidBestQty -= order.quantity
		case marketdata.SideAsk:
			b.askBestQty -= order.quantity
		}
	}
}

// ToSnapshot materializes a Snapshot at the book's current timestamp. If
// fewer than five levels exist on a side, the missing levels are zero-padded
// rather than causing a panic.
func (b *Book) ToSnapshot() marketdata.Snapshot {
	ph := b.cfg.Placeholders
	div := b.cfg.PriceDivisor

	snap := marketdata.Snapshot{
		Ms:             ph.Ms,
		Clock:          b.timestamp,
		ThreadID:       ph.ThreadID,
		ClockAtArrival: b.timestamp,
		SequenceNo:     ph.SequenceNo,
		Source:         ph.Source,
		StockID:        b.instID,
		Exchange:       ph.Exchange,
		Time:           ph.Time,
		CumVolume:      b.cumVolume,
		CumAmount:      float64(b.cumAmount) / div,
		Close:          float64(b.close) / div,
		OrigTickSeq:    ph.OrigTickSeq,
		OpenPrice:      float64(b.openPrice) / div,
		NumTrades:      b.numTrades,
	}

	bidPrices := [5]*float64{&snap.Bid1Price, &snap.Bid2Price, &snap.Bid3Price, &snap.Bid4Price, &snap.Bid5Price}
	bidQtys := [5]*int64{&snap.Bid1Qty, &snap.Bid2Qty, &snap.Bid3Qty, &snap.Bid4Qty, &snap.Bid5Qty}
	askPrices := [5]*float64{&snap.Ask1Price, &snap.Ask2Price, &snap.Ask3Price, &snap.Ask4Price, &snap.Ask5Price}
	askQtys := [5]*int64{&snap.Ask1Qty, &snap.Ask2Qty, &snap.Ask3Qty, &snap.Ask4Qty, &snap.Ask5Qty}

	for i := 0; i < 5; i++ {
		if i < len(b.bidLevels) {
			*bidPrices[i] = float64(b.bidLevels[i].Price) / div
			*bidQtys[i] = b.bidLevels[i].Quantity
		}
		if i < len(b.askLevels) {
			*askPrices[i] = float64(b.askLevels[i].Price) / div
			*askQtys[i] = b.askLevels[i].Quantity
		}
	}

	return snap
}
