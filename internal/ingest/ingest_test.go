package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderHeader = "clockAtArrival,sequenceNo,exchId,securityType,__isRepeated,TransactTime,ChannelNo,ApplSeqNum,SecurityID,secid,mdSource,Side,OrderType,__origTickSeq,Price,OrderQty\n"
const tradeHeader = "clockAtArrival,sequenceNo,exchId,securityType,__isRepeated,TransactTime,ChannelNo,ApplSeqNum,SecurityID,secid,mdSource,ExecType,TradeBSFlag,__origTickSeq,TradePrice,TradeQty,TradeMoney,BidApplSeqNum,OfferApplSeqNum\n"

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ParsesBothStreams(t *testing.T) {
	dir := t.TempDir()
	orderPath := writeFile(t, dir, "orders.csv", orderHeader+
		"100,1,0,0,0,100,1,1,1,1,0,1,2,0,51200,3000\n")
	tradePath := writeFile(t, dir, "trades.csv", tradeHeader+
		"200,1,0,0,0,200,1,1,1,1,0,F,N,0,51200,500,25600000,0,0\n")

	streams, err := Load(orderPath, tradePath)
	require.NoError(t, err)

	require.Len(t, streams.Orders, 1)
	assert.Equal(t, int64(100), streams.Orders[0].ClockAtArrival)
	assert.Equal(t, int64(51200), streams.Orders[0].Price)

	require.Len(t, streams.Trades, 1)
	assert.Equal(t, int64(51200), streams.Trades[0].TradePrice)
}

func TestLoad_MissingFileIsError(t *testing.T) {
	dir := t.TempDir()
	tradePath := writeFile(t, dir, "trades.csv", tradeHeader)

	_, err := Load(filepath.Join(dir, "does-not-exist.csv"), tradePath)
	assert.Error(t, err)
}

func TestLoad_MalformedRowIsError(t *testing.T) {
	dir := t.TempDir()
	orderPath := writeFile(t, dir, "orders.csv", orderHeader+
		"not-a-number,1,0,0,0,100,1,1,1,1,0,1,2,0,51200,3000\n")
	tradePath := writeFile(t, dir, "trades.csv", tradeHeader)

	_, err := Load(orderPath, tradePath)
	assert.Error(t, err)
}
