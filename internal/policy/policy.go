// Package policy loads operator overrides for the reconnection and
// gossip tuning constants pkg/meta defines as fixed defaults. A node
// operator can narrow or relax these without recompiling; pkg/meta
// itself stays free of configuration concerns.
package policy

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shurlinet/zaddr/pkg/meta"
)

// CurrentVersion is the highest policy file version this binary understands.
const CurrentVersion = 1

// Policy holds the tunable knobs a node operator may override. Any
// field left unset in the YAML file falls back to the matching
// pkg/meta constant.
type Policy struct {
	MinPeerReconnectionDelay  time.Duration
	MaxPeerActiveForGossip    time.Duration
	MinPeerConnectionInterval time.Duration
	MinPeerGetAddrInterval    time.Duration
	GetAddrFanout             int
	MaxGossipBatchSize        int
}

// Default returns the Policy implied by pkg/meta's own constants, with
// no operator overrides applied.
func Default() Policy {
	return Policy{
		MinPeerReconnectionDelay:  meta.MinPeerReconnectionDelay,
		MaxPeerActiveForGossip:    meta.MaxPeerActiveForGossip,
		MinPeerConnectionInterval: meta.MinPeerConnectionInterval,
		MinPeerGetAddrInterval:    meta.MinPeerGetAddrInterval,
		GetAddrFanout:             meta.GetAddrFanout,
		MaxGossipBatchSize:        int(meta.MaxGossipListLen),
	}
}

type rawPolicy struct {
	Version                   int    `yaml:"version,omitempty"`
	MinPeerReconnectionDelay  string `yaml:"min_peer_reconnection_delay,omitempty"`
	MaxPeerActiveForGossip    string `yaml:"max_peer_active_for_gossip,omitempty"`
	MinPeerConnectionInterval string `yaml:"min_peer_connection_interval,omitempty"`
	MinPeerGetAddrInterval    string `yaml:"min_peer_get_addr_interval,omitempty"`
	GetAddrFanout             int    `yaml:"get_addr_fanout,omitempty"`
	MaxGossipBatchSize        int    `yaml:"max_gossip_batch_size,omitempty"`
}

// checkFilePermissions rejects a group- or world-readable policy file;
// loosely tuned reconnection policy can be used to fingerprint or
// degrade a node's peering behavior, so the file deserves the same
// care as the node's identity key.
func checkFilePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if mode := info.Mode().Perm(); mode&0077 != 0 {
		return fmt.Errorf("policy file %s has overly permissive mode %04o; expected 0600 — fix with: chmod 600 %s", path, mode, path)
	}
	return nil
}

// Load reads a policy override file at path and layers it over
// Default(). A missing file is not an error; Default() is returned
// unchanged.
func Load(path string) (Policy, error) {
	p := Default()

	if err := checkFilePermissions(path); err != nil {
		return Policy{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return Policy{}, fmt.Errorf("policy: read %s: %w", path, err)
	}

	var raw rawPolicy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Policy{}, fmt.Errorf("policy: parse %s: %w", path, err)
	}

	if raw.Version > CurrentVersion {
		return Policy{}, fmt.Errorf("%w: version %d, supported up to %d", ErrConfigVersionTooNew, raw.Version, CurrentVersion)
	}

	if raw.MinPeerReconnectionDelay != "" {
		d, err := time.ParseDuration(raw.MinPeerReconnectionDelay)
		if err != nil {
			return Policy{}, fmt.Errorf("policy: invalid min_peer_reconnection_delay: %w", err)
		}
		p.MinPeerReconnectionDelay = d
	}
	if raw.MaxPeerActiveForGossip != "" {
		d, err := time.ParseDuration(raw.MaxPeerActiveForGossip)
		if err != nil {
			return Policy{}, fmt.Errorf("policy: invalid max_peer_active_for_gossip: %w", err)
		}
		p.MaxPeerActiveForGossip = d
	}
	if raw.MinPeerConnectionInterval != "" {
		d, err := time.ParseDuration(raw.MinPeerConnectionInterval)
		if err != nil {
			return Policy{}, fmt.Errorf("policy: invalid min_peer_connection_interval: %w", err)
		}
		p.MinPeerConnectionInterval = d
	}
	if raw.MinPeerGetAddrInterval != "" {
		d, err := time.ParseDuration(raw.MinPeerGetAddrInterval)
		if err != nil {
			return Policy{}, fmt.Errorf("policy: invalid min_peer_get_addr_interval: %w", err)
		}
		p.MinPeerGetAddrInterval = d
	}
	if raw.GetAddrFanout != 0 {
		p.GetAddrFanout = raw.GetAddrFanout
	}
	if raw.MaxGossipBatchSize != 0 {
		if raw.MaxGossipBatchSize > int(meta.MaxGossipListLen) {
			return Policy{}, fmt.Errorf("policy: max_gossip_batch_size %d exceeds wire limit %d", raw.MaxGossipBatchSize, meta.MaxGossipListLen)
		}
		p.MaxGossipBatchSize = raw.MaxGossipBatchSize
	}

	return p, nil
}
