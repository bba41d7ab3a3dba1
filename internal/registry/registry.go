// Package registry holds the static, immutable-after-construction
// mapping from server identifier to peer network address.
package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ServerID is a small positive integer, unique across the cluster. The
// total order over ServerIDs is the Bully tie-breaker.
type ServerID uint32

// Peer is one entry of the cluster topology: a server identifier and
// the address its gRPC server listens on.
type Peer struct {
	ID      ServerID
	Address string
}

// Registry is the immutable peer table built at startup.
type Registry struct {
	self  ServerID
	peers map[ServerID]string
}

// New builds a Registry from an explicit peer list, excluding self.
func New(self ServerID, peers []Peer) *Registry {
	r := &Registry{self: self, peers: make(map[ServerID]string, len(peers))}
	for _, p := range peers {
		if p.ID == self {
			continue
		}
		r.peers[p.ID] = p.Address
	}
	return r
}

// ParseConfig parses the startup peer-list string of the form
// "id:host:port[,id:host:port]*", dropping the entry matching self.
// Parsing this string is a bootstrap concern, not the Registry's own
// responsibility, per the component boundary in spec.md §4.2 — this
// function exists precisely to be called from bootstrap code.
func ParseConfig(raw string, self ServerID) (*Registry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return New(self, nil), nil
	}

	var peers []Peer
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed peer entry %q: want id:host:port", entry)
		}
		id, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed peer id in %q: %w", entry, err)
		}
		peers = append(peers, Peer{
			ID:      ServerID(id),
			Address: parts[1] + ":" + parts[2],
		})
	}
	return New(self, peers), nil
}

// Self returns this process's own server identifier.
func (r *Registry) Self() ServerID {
	return r.self
}

// Address returns the PeerAddress for id, and whether it is known.
func (r *Registry) Address(id ServerID) (string, bool) {
	addr, ok := r.peers[id]
	return addr, ok
}

// Peers enumerates all known peers, excluding self, in ascending
// ServerID order (deterministic iteration keeps election/broadcast
// logs and retries reproducible).
func (r *Registry) Peers() []Peer {
	out := make([]Peer, 0, len(r.peers))
	for id, addr := range r.peers {
		out = append(out, Peer{ID: id, Address: addr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HigherThan returns the peers whose ServerID is greater than id, used
// by the election engine to compute H = { p | p.id > self.id }.
func (r *Registry) HigherThan(id ServerID) []Peer {
	var out []Peer
	for _, p := range r.Peers() {
		if p.ID > id {
			out = append(out, p)
		}
	}
	return out
}
