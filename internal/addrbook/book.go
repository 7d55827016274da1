// Package addrbook maintains the local node's table of known peer
// addresses on top of pkg/meta's pure change-application core. It adds
// the concurrency-safe map, background eviction, and gossip-batch
// assembly that pkg/meta deliberately leaves out.
package addrbook

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shurlinet/zaddr/internal/netaddr"
	"github.com/shurlinet/zaddr/pkg/meta"
)

// evictionSweepInterval is how often the background sweep checks for
// records that are no longer active for gossip and can be dropped.
// It is much shorter than meta.MaxPeerActiveForGossip, so a record is
// dropped at most ten minutes after it stops being active for gossip.
const evictionSweepInterval = 10 * time.Minute

// Book is a concurrency-safe table of PeerRecords keyed by their
// canonical endpoint. All mutation goes through Apply, which delegates
// the actual merge logic to meta.Apply so the security properties of
// that fold (churn rejection, pointwise-max merge) hold for the whole
// table, not just a single record.
type Book struct {
	mu      sync.RWMutex
	records map[netaddr.Endpoint]meta.PeerRecord
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an empty Book.
func New() *Book {
	return &Book{
		records: make(map[netaddr.Endpoint]meta.PeerRecord),
	}
}

// Start begins the background eviction sweep. Call Close to stop it.
func (b *Book) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.wg.Add(1)
	go b.evictionLoop()
	slog.Info("addrbook: started", "records", b.Len())
}

// Close stops the background sweep and waits for it to finish. After
// Close, Apply and GossipBatch return ErrClosed.
func (b *Book) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
}

func (b *Book) evictionLoop() {
	defer b.wg.Done()

	ticker := time.NewTicker(evictionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			evicted := b.evict(time.Now())
			if evicted > 0 {
				slog.Info("addrbook: evicted stale records", "count", evicted)
			}
		}
	}
}

// evict drops every record that is no longer active for gossip. It is
// separated from evictionLoop so tests can drive it directly without
// waiting on the ticker.
func (b *Book) evict(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	evicted := 0
	for ep, r := range b.records {
		if !r.IsActiveForGossip(now) {
			delete(b.records, ep)
			evicted++
		}
	}
	return evicted
}

// Apply folds change onto the book's current record for change's
// endpoint (or onto no record, if this is the first change seen for
// that endpoint) and stores the result. It reports whether the record
// was created or updated; a false result means meta.Apply rejected the
// change (an Update change for an endpoint with no record, or a New…
// change against an already-attempted record) and the book is
// unchanged.
func (b *Book) Apply(change meta.Change) (meta.PeerRecord, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return meta.PeerRecord{}, false, ErrClosed
	}

	var previous *meta.PeerRecord
	if r, ok := b.records[change.Endpoint]; ok {
		previous = &r
	}

	next, ok := meta.Apply(change, previous)
	if !ok {
		return meta.PeerRecord{}, false, nil
	}

	b.records[change.Endpoint] = next
	return next, true, nil
}

// Get returns the record for ep, if any.
func (b *Book) Get(ep netaddr.Endpoint) (meta.PeerRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.records[ep]
	if !ok {
		return meta.PeerRecord{}, ErrUnknownEndpoint
	}
	return r, nil
}

// Len reports the number of records currently held.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// Candidates returns every record ready for an outbound connection
// attempt at now, ordered by meta.Less (oldest-attempted first, so
// callers can dial down the slice in order).
func (b *Book) Candidates(now time.Time) []meta.PeerRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []meta.PeerRecord
	for _, r := range b.records {
		if r.IsReadyForConnectionAttempt(now) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return meta.Less(out[i], out[j]) })
	return out
}

// GossipBatch returns up to max sanitized records suitable for
// advertising to a peer: local/trust-sensitive fields stripped and
// timestamps truncated, via meta.Sanitize. Records that fail
// sanitization (not valid for outbound, or no last-seen time) are
// skipped rather than propagated.
func (b *Book) GossipBatch(now time.Time, max int) ([]meta.PeerRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, ErrClosed
	}

	out := make([]meta.PeerRecord, 0, max)
	for _, r := range b.records {
		if len(out) >= max {
			break
		}
		sanitized, ok := meta.Sanitize(r)
		if !ok {
			continue
		}
		out = append(out, sanitized)
	}
	return out, nil
}
