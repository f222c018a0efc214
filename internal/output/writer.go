// Package output writes reconstructed snapshots out as CSV records, in the
// column order external consumers of this pipeline expect.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"l2replay/internal/marketdata"
)

// Header is the exchange feed's snapshot column order.
var Header = []string{
	"ms", "clock", "threadId", "clockAtArrival", "sequenceNo", "source",
	"StockID", "exchange", "time", "cum_volume", "cum_amount", "close",
	"__origTickSeq",
	"bid1p", "bid2p", "bid3p", "bid4p", "bid5p",
	"bid1q", "bid2q", "bid3q", "bid4q", "bid5q",
	"ask1p", "ask2p", "ask3p", "ask4p", "ask5p",
	"ask1q", "ask2q", "ask3q", "ask4q", "ask5q",
	"openPrice", "numTrades",
}

// Writer serializes Snapshot records as CSV rows.
type Writer struct {
	csv *csv.Writer
}

// NewWriter wraps w and writes the header row immediately.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("output: write header: %w", err)
	}
	return &Writer{csv: cw}, nil
}

// WriteSnapshot writes one Snapshot as a CSV row.
func (w *Writer) WriteSnapshot(s marketdata.Snapshot) error {
	row := []string{
		s.Ms,
		strconv.FormatInt(s.Clock, 10),
		strconv.FormatInt(int64(s.ThreadID), 10),
		strconv.FormatInt(s.ClockAtArrival, 10),
		strconv.FormatInt(s.SequenceNo, 10),
		strconv.FormatInt(int64(s.Source), 10),
		strconv.FormatInt(int64(s.StockID), 10),
		s.Exchange,
		s.Time,
		strconv.FormatInt(s.CumVolume, 10),
		strconv.FormatFloat(s.CumAmount, 'f', 4, 64),
		strconv.FormatFloat(s.Close, 'f', 4, 64),
		strconv.FormatInt(int64(s.OrigTickSeq), 10),
		strconv.FormatFloat(s.Bid1Price, 'f', 4, 64),
		strconv.FormatFloat(s.Bid2Price, 'f', 4, 64),
		strconv.FormatFloat(s.Bid3Price, 'f', 4, 64),
		strconv.FormatFloat(s.Bid4Price, 'f', 4, 64),
		strconv.FormatFloat(s.Bid5Price, 'f', 4, 64),
		strconv.FormatInt(s.Bid1Qty, 10),
		strconv.FormatInt(s.Bid2Qty, 10),
		strconv.FormatInt(s.Bid3Qty, 10),
		strconv.FormatInt(s.Bid4Qty, 10),
		strconv.FormatInt(s.Bid5Qty, 10),
		strconv.FormatFloat(s.Ask1Price, 'f', 4, 64),
		strconv.FormatFloat(s.Ask2Price, 'f', 4, 64),
		strconv.FormatFloat(s.Ask3Price, 'f', 4, 64),
		strconv.FormatFloat(s.Ask4Price, 'f', 4, 64),
		strconv.FormatFloat(s.Ask5Price, 'f', 4, 64),
		strconv.FormatInt(s.Ask1Qty, 10),
		strconv.FormatInt(s.Ask2Qty, 10),
		strconv.FormatInt(s.Ask3Qty, 10),
		strconv.FormatInt(s.Ask4Qty, 10),
		strconv.FormatInt(s.Ask5Qty, 10),
		strconv.FormatFloat(s.OpenPrice, 'f', 4, 64),
		strconv.FormatInt(s.NumTrades, 10),
	}
	return w.csv.Write(row)
}

// Flush flushes any buffered rows and returns the first write error
// encountered, if any.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
