package marketdata

// Snapshot is the structured record emitted once per instrument per
// requested timestamp. Ms, ThreadID, SequenceNo, Source, Exchange, Time and
// OrigTickSeq are non-computed placeholders whose provenance is external to
// the engine (see engine.Placeholders); every other field is derived from a
// Book at the moment the snapshot was taken.
type Snapshot struct {
	Ms             string
	Clock          int64
	ThreadID       int32
	ClockAtArrival int64
	SequenceNo     int64
	Source         int8
	StockID        int32
	Exchange       string
	Time           string
	CumVolume      int64
	CumAmount      float64
	Close          float64
	OrigTickSeq    int8

	Bid1Price float64
	Bid2Price float64
	Bid3Price float64
	Bid4Price float64
	Bid5Price float64
	Bid1Qty   int64
	Bid2Qty   int64
	Bid3Qty   int64
	Bid4Qty   int64
	Bid5Qty   int64

	Ask1Price float64
	Ask2Price float64
	Ask3Price float64
	Ask4Price float64
	Ask5Price float64
	Ask1Qty   int64
	Ask2Qty   int64
	Ask3Qty   int64
	Ask4Qty   int64
	Ask5Qty   int64

	OpenPrice float64
	NumTrades int64
}
