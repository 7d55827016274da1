package addrbook

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"os"
	"time"

	"github.com/shurlinet/zaddr/internal/netaddr"
	"github.com/shurlinet/zaddr/pkg/meta"
)

// wireRecord is the JSON-on-disk form of a meta.PeerRecord. meta.PeerRecord
// is kept free of struct tags and marshaling concerns (pkg/meta has no
// I/O of its own), so Book owns the translation to and from this shape.
type wireRecord struct {
	IP                string           `json:"ip"`
	Port              uint16           `json:"port"`
	Services          meta.ServiceFlags `json:"services"`
	State             meta.PeerState    `json:"state"`
	UntrustedLastSeen *meta.Timestamp   `json:"untrusted_last_seen,omitempty"`
	LastResponse      *meta.Timestamp   `json:"last_response,omitempty"`
	LastAttempt       *time.Time        `json:"last_attempt,omitempty"`
	LastFailure       *time.Time        `json:"last_failure,omitempty"`
}

func toWire(r meta.PeerRecord) wireRecord {
	return wireRecord{
		IP:                r.Endpoint.IP.String(),
		Port:              r.Endpoint.Port,
		Services:          r.Services,
		State:             r.State,
		UntrustedLastSeen: r.UntrustedLastSeen,
		LastResponse:      r.LastResponse,
		LastAttempt:       r.LastAttempt,
		LastFailure:       r.LastFailure,
	}
}

func fromWire(w wireRecord) (meta.PeerRecord, error) {
	ip, err := netip.ParseAddr(w.IP)
	if err != nil {
		return meta.PeerRecord{}, fmt.Errorf("addrbook: parse stored IP %q: %w", w.IP, err)
	}
	return meta.PeerRecord{
		Endpoint:          netaddr.Canonical(ip, w.Port),
		Services:          w.Services,
		State:             w.State,
		UntrustedLastSeen: w.UntrustedLastSeen,
		LastResponse:      w.LastResponse,
		LastAttempt:       w.LastAttempt,
		LastFailure:       w.LastFailure,
	}, nil
}

// Load replaces the book's contents with the records stored at path. A
// missing file is not an error; the book is left empty, mirroring how a
// node starts with no prior address knowledge.
func (b *Book) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("addrbook: read %s: %w", path, err)
	}

	var wire map[string]wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("addrbook: parse %s: %w", path, err)
	}

	records := make(map[netaddr.Endpoint]meta.PeerRecord, len(wire))
	for _, w := range wire {
		r, err := fromWire(w)
		if err != nil {
			return err
		}
		records[r.Endpoint] = r
	}

	b.mu.Lock()
	b.records = records
	b.mu.Unlock()
	return nil
}

// Save writes the book's current contents to path atomically, via a
// temp file in the same directory followed by a rename.
func (b *Book) Save(path string) error {
	b.mu.RLock()
	wire := make(map[string]wireRecord, len(b.records))
	for ep, r := range b.records {
		wire[ep.IP.String()+"/"+fmt.Sprint(ep.Port)] = toWire(r)
	}
	b.mu.RUnlock()

	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return fmt.Errorf("addrbook: marshal: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("addrbook: write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("addrbook: rename temp file: %w", err)
	}
	return nil
}
