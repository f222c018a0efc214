package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"l2replay/internal/marketdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WritesHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.WriteSnapshot(marketdata.Snapshot{
		StockID:   1,
		Bid1Price: 5.12,
		Bid1Qty:   100,
		NumTrades: 3,
	}))
	require.NoError(t, w.Flush())

	r := csv.NewReader(strings.NewReader(buf.String()))
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "1", rows[1][6]) // StockID column
	assert.Equal(t, "5.1200", rows[1][13]) // bid1p column
}
