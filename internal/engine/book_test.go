package engine

import (
	"testing"

	"l2replay/internal/marketdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(clock int64, seq int64, side marketdata.Side, typ marketdata.OrderType, price, qty int64) marketdata.Order {
	return marketdata.Order{
		ClockAtArrival: clock,
		ApplSeqNum:     seq,
		SecurityID:     1,
		Side:           side,
		OrderType:      typ,
		Price:          price,
		OrderQty:       qty,
	}
}

func cancelTrade(clock int64, bidSeq, offerSeq, qty int64) marketdata.Trade {
	return marketdata.Trade{
		ClockAtArrival:  clock,
		SecurityID:      1,
		ExecType:        marketdata.ExecTypeCancelled,
		TradeQty:        qty,
		BidApplSeqNum:   bidSeq,
		OfferApplSeqNum: offerSeq,
	}
}

// Scenario 1: insert a new level on an empty side.
func TestBook_InsertNewLevel(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 1, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 3000))

	assert.Equal(t, []marketdata.Level{{Price: 51200, Quantity: 3000}}, b.bidLevels)
	assert.Empty(t, b.askLevels)
}

// Scenario 2: two orders at the same price aggregate into one level.
func TestBook_AggregateAtExistingLevel(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 1, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 3000))
	b.HandleOrder(order(200, 2, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 1500))

	require.Len(t, b.bidLevels, 1)
	assert.Equal(t, marketdata.Level{Price: 51200, Quantity: 4500}, b.bidLevels[0])
}

// Scenario 3: a cancellation fully drains a level.
func TestBook_CancellationDrainsLevel(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 7, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 3000))
	b.HandleTrade(cancelTrade(200, 7, 0, 3000))

	assert.Empty(t, b.bidLevels)
}

// Scenario 4: crossing the book past the threshold drains the smaller side.
func TestBook_CrossResolution(t *testing.T) {
	cfg := DefaultBookConfig()
	cfg.CrossThreshold = 0 // activate immediately for this test
	b := NewBook(1, cfg)

	b.HandleOrder(order(100, 1, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 2000))
	b.HandleOrder(order(200, 2, marketdata.SideAsk, marketdata.OrderTypeLimit, 51100, 500))

	require.Len(t, b.bidLevels, 1)
	assert.Equal(t, marketdata.Level{Price: 51200, Quantity: 1500}, b.bidLevels[0])
	assert.Empty(t, b.askLevels)
}

// Scenario 5: a Best order never touches the ordered levels.
func TestBook_BestOrderRouting(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 1, marketdata.SideBid, marketdata.OrderTypeBest, 0, 10000))

	assert.Empty(t, b.bidLevels)
	assert.Equal(t, int64(10000), b.bidBestQty)
}

// Two orders sharing one packet's clock are both applied: only strictly
// stale events (clock < timestamp) are dropped.
func TestBook_SameClockOrderApplied(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 1, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 3000))
	b.HandleOrder(order(100, 2, marketdata.SideBid, marketdata.OrderTypeLimit, 51300, 1000))

	require.Len(t, b.bidLevels, 2)
	assert.Equal(t, marketdata.Level{Price: 51300, Quantity: 1000}, b.bidLevels[0])
	assert.Equal(t, marketdata.Level{Price: 51200, Quantity: 3000}, b.bidLevels[1])
	assert.Equal(t, int64(100), b.timestamp)
}

func TestBook_StrictlyStaleOrderDropped(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 1, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 3000))
	b.HandleOrder(order(99, 2, marketdata.SideBid, marketdata.OrderTypeLimit, 51300, 1000))

	require.Len(t, b.bidLevels, 1)
	assert.Equal(t, int64(51200), b.bidLevels[0].Price)
	assert.Equal(t, int64(100), b.timestamp)
}

func TestBook_UnknownSideIgnored(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 1, marketdata.SideUnknown, marketdata.OrderTypeLimit, 51200, 3000))

	assert.Empty(t, b.bidLevels)
	assert.Empty(t, b.askLevels)
}

func TestBook_TradedUpdatesStatsNotLevels(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 1, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 3000))
	b.HandleTrade(marketdata.Trade{
		ClockAtArrival: 200,
		SecurityID:     1,
		ExecType:       marketdata.ExecTypeTraded,
		TradePrice:     51200,
		TradeQty:       500,
	})

	assert.Equal(t, int64(1), b.numTrades)
	assert.Equal(t, int64(500), b.cumVolume)
	assert.Equal(t, int64(500*51200), b.cumAmount)
	assert.Equal(t, int64(51200), b.close)
	assert.Equal(t, int64(51200), b.openPrice)
	// The level is untouched: the trade is assumed already reflected by
	// the cross resolver at order time.
	require.Len(t, b.bidLevels, 1)
	assert.Equal(t, int64(3000), b.bidLevels[0].Quantity)
}

func TestBook_CancelUnknownOrderDropped(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	// Does not panic, and leaves the book untouched.
	b.HandleTrade(cancelTrade(100, 999, 0, 10))
	assert.Empty(t, b.bidLevels)
}

func TestBook_BestOrderCancelUsesOriginalQuantity(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	b.HandleOrder(order(100, 5, marketdata.SideAsk, marketdata.OrderTypeBest, 0, 800))
	b.HandleTrade(marketdata.Trade{
		ClockAtArrival:  200,
		SecurityID:      1,
		ExecType:        marketdata.ExecTypeCancelled,
		TradeQty:        1, // the original quantity is used, not this
		OfferApplSeqNum: 5,
	})

	assert.Equal(t, int64(0), b.askBestQty)
}

func TestBook_ToSnapshotZeroPadsMissingLevels(t *testing.T) {
	b := NewBook(7, DefaultBookConfig())
	b.HandleOrder(order(100, 1, marketdata.SideBid, marketdata.OrderTypeLimit, 51200, 3000))

	snap := b.ToSnapshot()
	assert.Equal(t, 5.12, snap.Bid1Price)
	assert.Equal(t, int64(3000), snap.Bid1Qty)
	assert.Equal(t, 0.0, snap.Bid2Price)
	assert.Equal(t, int64(0), snap.Bid2Qty)
	assert.Equal(t, 0.0, snap.Ask1Price)
	assert.Equal(t, int32(7), snap.StockID)
}

// Invariant: within a side, prices stay strictly monotone and every level
// has a positive quantity, across an arbitrary sequence of orders.
func TestBook_LevelInvariant(t *testing.T) {
	b := NewBook(1, DefaultBookConfig())
	orders := []marketdata.Order{
		order(10, 1, marketdata.SideBid, marketdata.OrderTypeLimit, 100, 10),
		order(20, 2, marketdata.SideBid, marketdata.OrderTypeLimit, 105, 5),
		order(30, 3, marketdata.SideBid, marketdata.OrderTypeLimit, 100, 20),
		order(40, 4, marketdata.SideAsk, marketdata.OrderTypeLimit, 110, 7),
		order(50, 5, marketdata.SideAsk, marketdata.OrderTypeLimit, 108, 3),
	}
	for _, o := range orders {
		b.HandleOrder(o)
		assertStrictlyOrdered(t, b.bidLevels, true)
		assertStrictlyOrdered(t, b.askLevels, false)
	}
}

func assertStrictlyOrdered(t *testing.T, levels []marketdata.Level, descending bool) {
	t.Helper()
	for i, l := range levels {
		assert.Greater(t, l.Quantity, int64(0))
		if i == 0 {
			continue
		}
		if descending {
			assert.Less(t, levels[i].Price, levels[i-1].Price)
		} else {
			assert.Greater(t, levels[i].Price, levels[i-1].Price)
		}
	}
}
