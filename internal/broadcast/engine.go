package broadcast

import (
	"github.com/isascarabelli/Chat-Distribuido/internal/clock"
	"github.com/sirupsen/logrus"
)

// Engine accepts client messages on the leader, stamps them with a
// fresh Lamport timestamp, appends them to bounded history, and fans
// them out to every subscriber but the sender. It is grounded on
// original_source/chat_server.py's SendMessageToServer/PushMessageToClients
// pair, generalized from a single global lock into the registry's and
// history's own fine-grained mutexes.
type Engine struct {
	clock       *clock.Lamport
	subscribers *SubscriberRegistry
	history     *History
	log         *logrus.Entry
}

// NewEngine wires an Engine to its clock, subscriber registry and
// history. Every replica builds one at startup, but Accept is called
// only on the leader path; a non-leader never calls Accept (spec.md
// §4.6's unary send RPC declines locally instead).
func NewEngine(c *clock.Lamport, subs *SubscriberRegistry, hist *History, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{clock: c, subscribers: subs, history: hist, log: log.WithField("component", "broadcast")}
}

// Accept observes the sender's Lamport timestamp to obtain a new
// server timestamp, records the resulting message in history, and
// enqueues it on every currently-live subscriber except the sender.
// Delivery is at-most-once and best-effort: a full queue is logged
// and dropped without disconnecting that subscriber.
func (e *Engine) Accept(msg TextMessage) TextMessage {
	newTS := e.clock.Observe(msg.LamportTimestamp)
	out := TextMessage{
		ClientIDFrom:     msg.ClientIDFrom,
		Content:          msg.Content,
		LamportTimestamp: newTS,
	}
	e.history.Append(out)

	delivered := 0
	for _, slot := range e.subscribers.Snapshot() {
		if slot.ID == msg.ClientIDFrom {
			continue
		}
		select {
		case slot.Queue <- out:
			delivered++
		default:
			e.log.WithFields(logrus.Fields{
				"subscriber": slot.ID,
				"timestamp":  out.LamportTimestamp,
			}).Warn("subscriber queue full, dropping message")
		}
	}

	e.log.WithFields(logrus.Fields{
		"sender":    msg.ClientIDFrom,
		"timestamp": out.LamportTimestamp,
		"recipients": delivered,
	}).Debug("broadcast message accepted")

	return out
}

// HistorySince exposes History.Since for the ReplicationService RPC.
func (e *Engine) HistorySince(lastTimestamp uint64) []TextMessage {
	return e.history.Since(lastTimestamp)
}
