package health_test

import (
	"testing"
	"time"

	"github.com/isascarabelli/Chat-Distribuido/internal/health"
	"github.com/stretchr/testify/require"
)

func TestServeAnswersProbe(t *testing.T) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- health.Serve("127.0.0.1:18099", nil)
	}()

	require.Eventually(t, func() bool {
		return health.Probe("127.0.0.1:18099")
	}, 2*time.Second, 20*time.Millisecond)
}

func TestProbeFailsAgainstClosedPort(t *testing.T) {
	require.False(t, health.Probe("127.0.0.1:1"))
}
