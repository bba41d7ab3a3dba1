package bootstrap_test

import (
	"testing"
	"time"

	"github.com/isascarabelli/Chat-Distribuido/internal/bootstrap"
	"github.com/isascarabelli/Chat-Distribuido/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewWiresComponentsAndBindsListener(t *testing.T) {
	cfg := &config.Config{
		ServerID:             1,
		ListenAddr:           "127.0.0.1:0",
		Peers:                "",
		HealthPort:           0,
		InitialElectionDelay: time.Millisecond,
	}

	srv, err := bootstrap.New(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, srv)
}

func TestNewRejectsMalformedPeerList(t *testing.T) {
	cfg := &config.Config{
		ServerID:   1,
		ListenAddr: "127.0.0.1:0",
		Peers:      "not-a-valid-entry",
	}

	_, err := bootstrap.New(cfg, nil)
	require.Error(t, err)
}
