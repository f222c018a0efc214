// Package engine implements the single-threaded, synchronous replay core:
// the per-instrument Book and the SnapshotBuilder that merges two
// independently sorted event streams in clock order and drives it.
package engine

import (
	"l2replay/internal/marketdata"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"
)

// bookEntry is the value stored in the instrument→Book index. Keying the
// btree on SecurityID (rather than using a Go map) makes BuildSnapshot's
// per-timestamp iteration over books deterministic — ascending by
// instrument — a useful property for callers comparing output across runs,
// though nothing guarantees it across implementations.
type bookEntry struct {
	securityID int32
	book       *Book
}

func newBookIndex() *btree.BTreeG[*bookEntry] {
	return btree.NewBTreeG(func(a, b *bookEntry) bool {
		return a.securityID < b.securityID
	})
}

// SnapshotBuilder owns the two input event sequences and the
// instrument→Book mapping, and drives a two-pointer merge over events in
// clock order.
type SnapshotBuilder struct {
	cfg BookConfig

	orders []marketdata.Order
	trades []marketdata.Trade

	books *btree.BTreeG[*bookEntry]

	orderIdx int
	tradeIdx int

	// RunID correlates every log line produced by one replay; it has no
	// bearing on engine semantics.
	RunID uuid.UUID
}

// NewSnapshotBuilder constructs a builder over pre-sorted order and trade
// sequences. Both slices are borrowed read-only; the caller must not
// mutate them while the builder is in use.
func NewSnapshotBuilder(orders []marketdata.Order, trades []marketdata.Trade, cfg BookConfig) *SnapshotBuilder {
	return &SnapshotBuilder{
		cfg:    cfg,
		orders: orders,
		trades: trades,
		books:  newBookIndex(),
		RunID:  uuid.New(),
	}
}

func (s *SnapshotBuilder) getOrCreateBook(securityID int32) *Book {
	if entry, ok := s.books.Get(&bookEntry{securityID: securityID}); ok {
		return entry.book
	}
	entry := &bookEntry{securityID: securityID, book: NewBook(securityID, s.cfg)}
	s.books.Set(entry)
	return entry.book
}

func (s *SnapshotBuilder) lookupBook(securityID int32) (*Book, bool) {
	entry, ok := s.books.Get(&bookEntry{securityID: securityID})
	if !ok {
		return nil, false
	}
	return entry.book, true
}

func (s *SnapshotBuilder) processOrder() {
	order := s.orders[s.orderIdx]
	book := s.getOrCreateBook(order.SecurityID)
	book.HandleOrder(order)
	s.orderIdx++
}

func (s *SnapshotBuilder) processTrade() {
	trade := s.trades[s.tradeIdx]
	// A trade cannot precede the first order for its instrument, so the
	// book normally exists already; a trade whose book does not exist is
	// dropped with a warning.
	book, ok := s.lookupBook(trade.SecurityID)
	if !ok {
		log.Warn().
			Int32("instrument", trade.SecurityID).
			Int64("clock", trade.ClockAtArrival).
			Msg("trade references instrument with no book yet, dropping")
		s.tradeIdx++
		return
	}
	book.HandleTrade(trade)
	s.tradeIdx++
}

// ProcessUntil advances the engine so that every event with
// ClockAtArrival < ts has been applied. Orders and trades sharing a clock
// are processed order-before-trade, so a Cancelled trade always finds its
// referenced order already indexed.
func (s *SnapshotBuilder) ProcessUntil(ts int64) {
	for s.orderIdx < len(s.orders) && s.orders[s.orderIdx].ClockAtArrival < ts &&
		s.tradeIdx < len(s.trades) && s.trades[s.tradeIdx].ClockAtArrival < ts {
		order := s.orders[s.orderIdx]
		trade := s.trades[s.tradeIdx]

		if order.ClockAtArrival <= trade.ClockAtArrival {
			s.processOrder()
		} else {
			s.processTrade()
		}
	}

	for s.tradeIdx < len(s.trades) && s.trades[s.tradeIdx].ClockAtArrival < ts {
		s.processTrade()
	}

	for s.orderIdx < len(s.orders) && s.orders[s.orderIdx].ClockAtArrival < ts {
		s.processOrder()
	}
}

// BuildSnapshot advances through timestamps in order, and for each one
// appends one Snapshot per currently known Book, in ascending SecurityID
// order. The ordering across books within a single timestamp is not part
// of the contract — see bookEntry's doc comment.
func (s *SnapshotBuilder) BuildSnapshot(timestamps []int64) []marketdata.Snapshot {
	snapshots := make([]marketdata.Snapshot, 0, len(timestamps)*max(1, s.books.Len()))

	for _, ts := range timestamps {
		s.ProcessUntil(ts)

		s.books.Scan(func(entry *bookEntry) bool {
			snapshots = append(snapshots, entry.book.ToSnapshot())
			return true
		})

		log.Info().
			Str("runId", s.RunID.String()).
			Int64("timestamp", ts).
			Int("books", s.books.Len()).
			Msg("built snapshot batch")
	}

	return snapshots
}

// Reset rewinds the two stream cursors to zero. Books are not cleared:
// a subsequent replay resumes against whatever state the books already
// hold.
func (s *SnapshotBuilder) Reset() {
	s.orderIdx = 0
	s.tradeIdx = 0
}
