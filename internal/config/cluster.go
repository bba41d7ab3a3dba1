package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClusterTopology mirrors the teacher's DockerCompose/Service shape
// (cmd/coordinator/config.go) but describes chat servers directly
// instead of deriving monitoring targets from docker-compose.yml.
type ClusterTopology struct {
	Servers []ClusterServer `yaml:"servers"`
}

// ClusterServer is one entry of the cluster topology file.
type ClusterServer struct {
	ID      uint32 `yaml:"id"`
	Address string `yaml:"address"`
}

// LoadClusterFile reads and parses a YAML cluster topology file.
func LoadClusterFile(path string) (*ClusterTopology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cluster file %s: %w", path, err)
	}
	var topo ClusterTopology
	if err := yaml.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("parse cluster file %s: %w", path, err)
	}
	return &topo, nil
}

// PeerConfigFor renders the topology into the "id:host:port,..." form
// internal/registry.ParseConfig expects, plus this server's own
// listen address, given its ServerID.
func (t *ClusterTopology) PeerConfigFor(self uint32) (peers string, selfAddr string, err error) {
	var entries []string
	for _, s := range t.Servers {
		if s.ID == self {
			selfAddr = s.Address
			continue
		}
		entries = append(entries, fmt.Sprintf("%d:%s", s.ID, s.Address))
	}
	if selfAddr == "" {
		return "", "", fmt.Errorf("cluster file has no entry for server id %d", self)
	}
	return strings.Join(entries, ","), selfAddr, nil
}
