package marketdata

import "fmt"

// Trade is one row of the trade-execution CSV stream. Only ClockAtArrival,
// SecurityID, ExecType, TradePrice, TradeQty, BidApplSeqNum and
// OfferApplSeqNum are read by the replay engine.
type Trade struct {
	ClockAtArrival  int64
	SequenceNo      int64
	ExchID          int8
	SecurityType    int8
	IsRepeated      int8
	TransactTime    int64
	ChannelNo       int32
	ApplSeqNum      int64
	SecurityID      int32
	SecID           int32
	MDSource        int8
	ExecType        ExecType
	TradeBSFlag     byte
	OrigTickSeq     int8
	TradePrice      int64
	TradeQty        int64
	TradeMoney      int64
	BidApplSeqNum   int64
	OfferApplSeqNum int64
}

// TradeColumns is the number of positional fields a trade CSV row must
// carry.
const TradeColumns = 19

// TradeFromRow parses one already-split CSV row into a Trade. The row is
// expected to have at least TradeColumns fields, in the exchange feed's
// positional column order; fields past the first TradeColumns are ignored.
func TradeFromRow(row []string) (Trade, error) {
	if len(row) < TradeColumns {
		return Trade{}, fmt.Errorf("marketdata: trade row has %d fields, want %d", len(row), TradeColumns)
	}

	var (
		t   Trade
		err error
	)
	if t.ClockAtArrival, err = parseInt64(row[0]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.clockAtArrival: %w", err)
	}
	if t.SequenceNo, err = parseInt64(row[1]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.sequenceNo: %w", err)
	}
	if t.ExchID, err = parseInt8(row[2]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.exchId: %w", err)
	}
	if t.SecurityType, err = parseInt8(row[3]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.securityType: %w", err)
	}
	if t.IsRepeated, err = parseInt8(row[4]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.__isRepeated: %w", err)
	}
	if t.TransactTime, err = parseInt64(row[5]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.TransactTime: %w", err)
	}
	if t.ChannelNo, err = parseInt32(row[6]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.ChannelNo: %w", err)
	}
	if t.ApplSeqNum, err = parseInt64(row[7]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.ApplSeqNum: %w", err)
	}
	if t.SecurityID, err = parseInt32(row[8]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.SecurityID: %w", err)
	}
	if t.SecID, err = parseInt32(row[9]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.secid: %w", err)
	}
	if t.MDSource, err = parseInt8(row[10]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.mdSource: %w", err)
	}
	t.ExecType = ExecTypeFromString(row[11])
	if len(row[12]) > 0 {
		t.TradeBSFlag = row[12][0]
	}
	if t.OrigTickSeq, err = parseInt8(row[13]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.__origTickSeq: %w", err)
	}
	if t.TradePrice, err = parseInt64(row[14]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.TradePrice: %w", err)
	}
	if t.TradeQty, err = parseInt64(row[15]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.TradeQty: %w", err)
	}
	if t.TradeMoney, err = parseInt64(row[16]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.TradeMoney: %w", err)
	}
	if t.BidApplSeqNum, err = parseInt64(row[17]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.BidApplSeqNum: %w", err)
	}
	if t.OfferApplSeqNum, err = parseInt64(row[18]); err != nil {
		return Trade{}, fmt.Errorf("marketdata: trade.OfferApplSeqNum: %w", err)
	}
	return t, nil
}
