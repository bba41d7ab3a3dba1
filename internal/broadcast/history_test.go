package broadcast_test

import (
	"testing"

	"github.com/isascarabelli/Chat-Distribuido/internal/broadcast"
	"github.com/stretchr/testify/require"
)

func TestHistoryEvictsOldestPast100(t *testing.T) {
	h := broadcast.NewHistory()
	for i := 1; i <= 150; i++ {
		h.Append(broadcast.TextMessage{LamportTimestamp: uint64(i)})
	}

	require.Equal(t, 100, h.Len())
	remaining := h.Since(0)
	require.Len(t, remaining, 100)
	require.EqualValues(t, 51, remaining[0].LamportTimestamp, "oldest 50 entries must have been evicted")
	require.EqualValues(t, 150, remaining[len(remaining)-1].LamportTimestamp)
}

func TestHistorySinceFiltersStrictlyGreater(t *testing.T) {
	h := broadcast.NewHistory()
	h.Append(broadcast.TextMessage{LamportTimestamp: 1})
	h.Append(broadcast.TextMessage{LamportTimestamp: 2})
	h.Append(broadcast.TextMessage{LamportTimestamp: 3})

	out := h.Since(1)
	require.Len(t, out, 2)
	require.EqualValues(t, 2, out[0].LamportTimestamp)
	require.EqualValues(t, 3, out[1].LamportTimestamp)
}
