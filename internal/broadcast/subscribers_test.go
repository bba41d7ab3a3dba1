package broadcast_test

import (
	"testing"

	"github.com/isascarabelli/Chat-Distribuido/internal/broadcast"
	"github.com/stretchr/testify/require"
)

func TestSubscriberRegistryAssignsIncreasingIDs(t *testing.T) {
	r := broadcast.NewSubscriberRegistry()

	s1 := r.Add()
	s2 := r.Add()
	require.Equal(t, broadcast.ClientID(1), s1.ID)
	require.Equal(t, broadcast.ClientID(2), s2.ID)
	require.Equal(t, 2, r.Count())
}

func TestSubscriberRegistryDoesNotReuseIDsAfterRemove(t *testing.T) {
	r := broadcast.NewSubscriberRegistry()

	s1 := r.Add()
	r.Remove(s1.ID)
	require.Equal(t, 0, r.Count())

	s2 := r.Add()
	require.NotEqual(t, s1.ID, s2.ID, "ClientID must not be recycled within a process lifetime")
}

func TestSubscriberRegistrySnapshotIsIndependentOfLiveState(t *testing.T) {
	r := broadcast.NewSubscriberRegistry()
	r.Add()
	snap := r.Snapshot()
	require.Len(t, snap, 1)

	r.Add()
	require.Len(t, snap, 1, "a previously taken snapshot must not see later additions")
	require.Equal(t, 2, r.Count())
}
