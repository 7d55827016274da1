package addrbook

import (
	"context"
	"net/netip"
	"path/filepath"
	"testing"
	"time"

	"github.com/shurlinet/zaddr/internal/netaddr"
	"github.com/shurlinet/zaddr/pkg/meta"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ep(t *testing.T, addr string, port uint16) netaddr.Endpoint {
	t.Helper()
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		t.Fatalf("ParseAddr(%q): %v", addr, err)
	}
	return netaddr.Canonical(ip, port)
}

func TestApplyStoresAndRetrieves(t *testing.T) {
	b := New()
	e := ep(t, "192.0.2.1", 8233)

	r, ok, err := b.Apply(meta.NewGossipedChange(e, meta.NodeNetwork, meta.Timestamp(1000)))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !ok {
		t.Fatal("expected new record to be created")
	}
	if r.Endpoint != e {
		t.Errorf("expected endpoint %v, got %v", e, r.Endpoint)
	}

	got, err := b.Get(e)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != meta.NeverAttemptedGossiped {
		t.Errorf("expected NeverAttemptedGossiped, got %v", got.State)
	}

	if b.Len() != 1 {
		t.Errorf("expected 1 record, got %d", b.Len())
	}
}

func TestApplyAndGossipBatchFailAfterClose(t *testing.T) {
	b := New()
	b.Start(context.Background())
	b.Close()

	e := ep(t, "192.0.2.1", 8233)
	if _, _, err := b.Apply(meta.NewGossipedChange(e, meta.NodeNetwork, meta.Timestamp(1))); err != ErrClosed {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
	if _, err := b.GossipBatch(time.Now(), 10); err != ErrClosed {
		t.Errorf("expected ErrClosed from GossipBatch after Close, got %v", err)
	}
}

func TestCandidatesExcludeRecentlyFailed(t *testing.T) {
	b := New()
	now := time.Unix(1_000_000, 0)

	older := ep(t, "192.0.2.1", 8233)
	newer := ep(t, "192.0.2.2", 8233)

	longAgo := now.Add(-48 * time.Hour)
	recentlyFailed := now.Add(-time.Minute)

	// An Update change needs an existing record, so seed each endpoint
	// from gossip first.
	if _, _, err := b.Apply(meta.NewGossipedChange(older, meta.NodeNetwork, meta.NewTimestamp(longAgo))); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, _, err := b.Apply(meta.NewGossipedChange(newer, meta.NodeNetwork, meta.NewTimestamp(longAgo))); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, _, err := b.Apply(meta.NewFailedChange(older, nil, longAgo)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, _, err := b.Apply(meta.NewFailedChange(newer, nil, recentlyFailed)); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	candidates := b.Candidates(now)
	if len(candidates) != 1 {
		t.Fatalf("expected only the long-ago failure to be ready for a connection attempt, got %d", len(candidates))
	}
	if candidates[0].Endpoint != older {
		t.Errorf("expected the long-ago-failed peer as the only candidate, got %v", candidates[0].Endpoint)
	}
}

func TestGossipBatchSanitizesAndBounds(t *testing.T) {
	b := New()
	now := time.Unix(1_000_000, 0)

	for i := 0; i < 5; i++ {
		e := ep(t, "192.0.2.1", uint16(1000+i))
		if _, _, err := b.Apply(meta.NewGossipedChange(e, meta.NodeNetwork, meta.NewTimestamp(now))); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if _, _, err := b.Apply(meta.NewRespondedChange(e, meta.NodeNetwork, meta.NewTimestamp(now))); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	batch, err := b.GossipBatch(now, 3)
	if err != nil {
		t.Fatalf("GossipBatch: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("expected batch bounded to 3, got %d", len(batch))
	}
	for _, r := range batch {
		if r.State != meta.NeverAttemptedGossiped {
			t.Errorf("expected sanitized records to report NeverAttemptedGossiped, got %v", r.State)
		}
		if r.LastAttempt != nil || r.LastFailure != nil {
			t.Error("expected sanitized records to have no trust-sensitive fields")
		}
	}
}

func TestEvictDropsInactiveRecords(t *testing.T) {
	b := New()
	now := time.Unix(1_000_000, 0)

	stale := ep(t, "192.0.2.1", 8233)
	fresh := ep(t, "192.0.2.2", 8233)

	if _, _, err := b.Apply(meta.NewGossipedChange(stale, meta.NodeNetwork, meta.NewTimestamp(now.Add(-30*24*time.Hour)))); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, _, err := b.Apply(meta.NewGossipedChange(fresh, meta.NodeNetwork, meta.NewTimestamp(now))); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, _, err := b.Apply(meta.NewRespondedChange(stale, meta.NodeNetwork, meta.NewTimestamp(now.Add(-30*24*time.Hour)))); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, _, err := b.Apply(meta.NewRespondedChange(fresh, meta.NodeNetwork, meta.NewTimestamp(now))); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	evicted := b.evict(now)
	if evicted != 1 {
		t.Fatalf("expected 1 eviction, got %d", evicted)
	}
	if _, err := b.Get(fresh); err != nil {
		t.Error("expected the fresh record to survive eviction")
	}
	if _, err := b.Get(stale); err != ErrUnknownEndpoint {
		t.Error("expected the stale record to have been evicted")
	}
}

func TestStartCloseStopsBackgroundSweep(t *testing.T) {
	b := New()
	b.Start(context.Background())
	b.Close()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peers.json")

	b := New()
	now := time.Unix(1_700_000_000, 0)
	e := ep(t, "192.0.2.1", 8233)
	if _, _, err := b.Apply(meta.NewGossipedChange(e, meta.NodeNetwork, meta.NewTimestamp(now))); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, _, err := b.Apply(meta.NewRespondedChange(e, meta.NodeNetwork, meta.NewTimestamp(now))); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if err := b.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := New()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got, err := loaded.Get(e)
	if err != nil {
		t.Fatalf("Get after Load: %v", err)
	}
	if got.Services != meta.NodeNetwork {
		t.Errorf("expected NodeNetwork to round-trip, got %v", got.Services)
	}
	if got.LastResponse == nil || *got.LastResponse != meta.NewTimestamp(now) {
		t.Errorf("expected last_response to round-trip, got %v", got.LastResponse)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	b := New()
	if err := b.Load(filepath.Join(t.TempDir(), "does-not-exist.json")); err != nil {
		t.Errorf("expected missing file to be a no-op, got %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("expected empty book, got %d records", b.Len())
	}
}

