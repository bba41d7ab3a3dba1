package broadcast

import "sync"

// historyLimit is the maximum number of retained messages (invariant
// 5 of spec.md §3): newest appended, oldest evicted past this count.
const historyLimit = 100

// History is the leader's in-memory ring of the last historyLimit
// accepted messages. It is lost on restart; spec.md explicitly rules
// out durable storage.
type History struct {
	mu   sync.Mutex
	msgs []TextMessage
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds msg, evicting the oldest entry if the history would
// otherwise exceed historyLimit.
func (h *History) Append(msg TextMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msg)
	if len(h.msgs) > historyLimit {
		h.msgs = h.msgs[len(h.msgs)-historyLimit:]
	}
}

// Since returns every retained message whose Lamport timestamp is
// strictly greater than lastTimestamp, in acceptance order. This
// backs the ReplicationService.SyncState extension hook; spec.md §9
// reserves it for replica catch-up and it is not invoked by any
// in-scope code path.
func (h *History) Since(lastTimestamp uint64) []TextMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]TextMessage, 0, len(h.msgs))
	for _, m := range h.msgs {
		if m.LamportTimestamp > lastTimestamp {
			out = append(out, m)
		}
	}
	return out
}

// Len reports the current history length, for tests asserting
// invariant 5.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.msgs)
}
