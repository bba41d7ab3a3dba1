package registry_test

import (
	"testing"

	"github.com/isascarabelli/Chat-Distribuido/internal/registry"
	"github.com/stretchr/testify/require"
)

func TestParseConfigExcludesSelf(t *testing.T) {
	r, err := registry.ParseConfig("1:host1:50051,2:host2:50051,3:host3:50051", 2)
	require.NoError(t, err)

	require.Equal(t, registry.ServerID(2), r.Self())

	addr, ok := r.Address(2)
	require.False(t, ok, "self must not appear in the peer table")
	require.Empty(t, addr)

	addr, ok = r.Address(1)
	require.True(t, ok)
	require.Equal(t, "host1:50051", addr)
}

func TestParseConfigEmptyString(t *testing.T) {
	r, err := registry.ParseConfig("", 1)
	require.NoError(t, err)
	require.Empty(t, r.Peers())
}

func TestParseConfigMalformedEntry(t *testing.T) {
	_, err := registry.ParseConfig("1:onlyhost", 1)
	require.Error(t, err)
}

func TestPeersSortedAscending(t *testing.T) {
	r, err := registry.ParseConfig("3:h3:1,1:h1:1,2:h2:1", 9)
	require.NoError(t, err)

	peers := r.Peers()
	require.Len(t, peers, 3)
	require.Equal(t, registry.ServerID(1), peers[0].ID)
	require.Equal(t, registry.ServerID(2), peers[1].ID)
	require.Equal(t, registry.ServerID(3), peers[2].ID)
}

func TestHigherThan(t *testing.T) {
	r, err := registry.ParseConfig("1:h1:1,2:h2:1,3:h3:1,4:h4:1", 2)
	require.NoError(t, err)

	higher := r.HigherThan(2)
	require.Len(t, higher, 2)
	require.Equal(t, registry.ServerID(3), higher[0].ID)
	require.Equal(t, registry.ServerID(4), higher[1].ID)
}
