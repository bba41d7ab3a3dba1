package broadcast_test

import (
	"testing"
	"time"

	"github.com/isascarabelli/Chat-Distribuido/internal/broadcast"
	"github.com/isascarabelli/Chat-Distribuido/internal/clock"
	"github.com/stretchr/testify/require"
)

func newEngine() (*broadcast.Engine, *broadcast.SubscriberRegistry, *broadcast.History) {
	subs := broadcast.NewSubscriberRegistry()
	hist := broadcast.NewHistory()
	return broadcast.NewEngine(clock.New(), subs, hist, nil), subs, hist
}

func TestAcceptStampsStrictlyIncreasingTimestamps(t *testing.T) {
	engine, _, _ := newEngine()

	first := engine.Accept(broadcast.TextMessage{ClientIDFrom: 1, Content: "hi"})
	second := engine.Accept(broadcast.TextMessage{ClientIDFrom: 2, Content: "there"})

	require.Greater(t, second.LamportTimestamp, first.LamportTimestamp)
}

func TestAcceptSkipsSenderAndDeliversOthers(t *testing.T) {
	engine, subs, _ := newEngine()
	sender := subs.Add()
	other := subs.Add()

	engine.Accept(broadcast.TextMessage{ClientIDFrom: sender.ID, Content: "hello"})

	select {
	case msg := <-other.Queue:
		require.Equal(t, "hello", msg.Content)
	default:
		t.Fatal("expected message delivered to the other subscriber")
	}

	select {
	case <-sender.Queue:
		t.Fatal("sender must not receive its own message back")
	default:
	}
}

func TestAcceptDropsOnFullQueueWithoutBlocking(t *testing.T) {
	engine, subs, _ := newEngine()
	subs.Add() // never drained, so its queue fills up

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			engine.Accept(broadcast.TextMessage{ClientIDFrom: 99, Content: "spam"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Accept blocked instead of dropping on a full subscriber queue")
	}
}

func TestAcceptRecordsHistory(t *testing.T) {
	engine, _, hist := newEngine()
	engine.Accept(broadcast.TextMessage{ClientIDFrom: 1, Content: "a"})
	engine.Accept(broadcast.TextMessage{ClientIDFrom: 1, Content: "b"})
	require.Equal(t, 2, hist.Len())
}
