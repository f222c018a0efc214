package engine

// Placeholders holds the non-computed fields of a Snapshot (ms, threadId,
// source, exchange, time, sequenceNo, __origTickSeq) whose provenance is
// external to the engine. They are injected at construction time rather
// than hard-coded, so a caller with its own feed-handler identity, source
// tag or session clock can supply it.
type Placeholders struct {
	Ms          string
	ThreadID    int32
	SequenceNo  int64
	Source      int8
	Exchange    string
	Time        string
	OrigTickSeq int8
}

// DefaultPlaceholders reproduces the session's recorded feed-handler
// identity and clock, so a caller that does not care about them still
// gets stable output.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		Ms:          "08:24:47.847788",
		ThreadID:    23994,
		SequenceNo:  -1,
		Source:      24,
		Exchange:    "SZ",
		Time:        "08:24:03.000",
		OrigTickSeq: -1,
	}
}

// BookConfig parameterizes the book's two magic constants (price divisor,
// cross-resolution activation threshold) along with the output
// placeholders, instead of baking them in as literals.
type BookConfig struct {
	// PriceDivisor converts an integer, ×10 000-scaled price into the
	// float64 emitted on a Snapshot.
	PriceDivisor float64

	// CrossThreshold is the clock (microseconds) at or after which a
	// crossed book triggers the cross resolver. Below this clock, orders
	// accumulate without matching, modeling the opening-auction phase.
	CrossThreshold int64

	Placeholders Placeholders
}

// DefaultBookConfig reproduces this session's recorded constants: a
// ×10 000 price divisor and a cross-activation clock of
// 1587605144280888 microseconds (~09:25 China time on the observed
// trading session).
func DefaultBookConfig() BookConfig {
	return BookConfig{
		PriceDivisor:   10000.0,
		CrossThreshold: 1587605144280888,
		Placeholders:   DefaultPlaceholders(),
	}
}
