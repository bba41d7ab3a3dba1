// Package config layers spf13/viper over spf13/cobra flags and env
// vars, generalizing the teacher's getEnv(key, default) helper
// (cmd/coordinator/main.go) and its gopkg.in/yaml.v3 peer-file parsing
// (cmd/coordinator/config.go) into one bindable Config struct.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the bootstrap collaborator's view of startup configuration
// (spec.md §6 "Startup configuration").
type Config struct {
	ServerID    uint32
	ListenAddr  string
	Peers       string // "id:host:port[,id:host:port]*"
	ClusterFile string // optional YAML topology file, see cluster.go
	HealthPort  int

	InitialElectionDelay time.Duration
}

// BindFlags registers the flags this config understands on cmd, to be
// read back by Load once cobra has parsed argv.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Uint32("id", 1, "this server's unique ServerId")
	flags.String("listen", "0.0.0.0:50051", "gRPC listen address")
	flags.String("peers", "", "comma-separated id:host:port peer list, excluding self")
	flags.String("cluster-file", "", "optional YAML file describing the full cluster topology")
	flags.Int("health-port", 0, "TCP port for the plain-text PING/PONG liveness probe (0 disables it)")
	flags.Duration("initial-election-delay", time.Second, "delay before the first election, letting peer gRPC servers finish binding")
}

// Load resolves a Config from flags, environment variables (CHAT_
// prefix) and, if set, the optional YAML cluster file.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHAT")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	cfg := &Config{
		ServerID:             v.GetUint32("id"),
		ListenAddr:           v.GetString("listen"),
		Peers:                v.GetString("peers"),
		ClusterFile:          v.GetString("cluster-file"),
		HealthPort:           v.GetInt("health-port"),
		InitialElectionDelay: v.GetDuration("initial-election-delay"),
	}

	if cfg.ClusterFile != "" {
		topo, err := LoadClusterFile(cfg.ClusterFile)
		if err != nil {
			return nil, fmt.Errorf("load cluster file: %w", err)
		}
		peers, self, err := topo.PeerConfigFor(cfg.ServerID)
		if err != nil {
			return nil, err
		}
		cfg.Peers = peers
		if cfg.ListenAddr == "" {
			cfg.ListenAddr = self
		}
	}

	return cfg, nil
}
