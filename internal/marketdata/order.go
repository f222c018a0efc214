package marketdata

import (
	"fmt"
	"strconv"
)

// Order is one row of the order-entry CSV stream. Only ClockAtArrival,
// ApplSeqNum, SecurityID, Side, OrderType, Price and OrderQty are read by
// the replay engine; the remaining fields are carried so ingestion stays a
// faithful column-for-column mapping of the exchange feed.
type Order struct {
	ClockAtArrival int64
	SequenceNo     int64
	ExchID         int8
	SecurityType   int8
	IsRepeated     int8
	TransactTime   int64
	ChannelNo      int32
	ApplSeqNum     int64
	SecurityID     int32
	SecID          int32
	MDSource       int8
	Side           Side
	OrderType      OrderType
	OrigTickSeq    int8
	Price          int64
	OrderQty       int64
}

// OrderColumns is the number of positional fields an order CSV row must
// carry.
const OrderColumns = 16

// OrderFromRow parses one already-split CSV row into an Order. The row is
// expected to have at least OrderColumns fields, in the exchange feed's
// positional column order; fields past the first OrderColumns are ignored.
func OrderFromRow(row []string) (Order, error) {
	if len(row) < OrderColumns {
		return Order{}, fmt.Errorf("marketdata: order row has %d fields, want %d", len(row), OrderColumns)
	}

	var (
		o   Order
		err error
	)
	if o.ClockAtArrival, err = parseInt64(row[0]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.clockAtArrival: %w", err)
	}
	if o.SequenceNo, err = parseInt64(row[1]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.sequenceNo: %w", err)
	}
	if o.ExchID, err = parseInt8(row[2]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.exchId: %w", err)
	}
	if o.SecurityType, err = parseInt8(row[3]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.securityType: %w", err)
	}
	if o.IsRepeated, err = parseInt8(row[4]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.__isRepeated: %w", err)
	}
	if o.TransactTime, err = parseInt64(row[5]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.TransactTime: %w", err)
	}
	if o.ChannelNo, err = parseInt32(row[6]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.ChannelNo: %w", err)
	}
	if o.ApplSeqNum, err = parseInt64(row[7]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.ApplSeqNum: %w", err)
	}
	if o.SecurityID, err = parseInt32(row[8]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.SecurityID: %w", err)
	}
	if o.SecID, err = parseInt32(row[9]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.secid: %w", err)
	}
	if o.MDSource, err = parseInt8(row[10]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.mdSource: %w", err)
	}
	o.Side = SideFromString(row[11])
	o.OrderType = OrderTypeFromString(row[12])
	if o.OrigTickSeq, err = parseInt8(row[13]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.__origTickSeq: %w", err)
	}
	if o.Price, err = parseInt64(row[14]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.Price: %w", err)
	}
	if o.OrderQty, err = parseInt64(row[15]); err != nil {
		return Order{}, fmt.Errorf("marketdata: order.OrderQty: %w", err)
	}
	return o, nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func parseInt8(s string) (int8, error) {
	v, err := strconv.ParseInt(s, 10, 8)
	return int8(v), err
}
