// Package libp2pwatch bridges a libp2p host's connectedness events into
// pkg/meta changes applied to an addrbook.Book, so the address book
// reflects live connection outcomes without either side depending on
// the other's internals.
package libp2pwatch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/libp2p/go-libp2p/core/event"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/shurlinet/zaddr/internal/addrbook"
	"github.com/shurlinet/zaddr/internal/clock"
	"github.com/shurlinet/zaddr/internal/netaddr"
	"github.com/shurlinet/zaddr/pkg/meta"
)

// Watcher subscribes to a libp2p host's EvtPeerConnectednessChanged
// events and folds each transition into the book as a meta.Change: a
// successful connection becomes an UpdateResponded change, and a lost
// or failed connection becomes an UpdateFailed change.
type Watcher struct {
	host  host.Host
	book  *addrbook.Book
	clock clock.Clock

	mu        sync.Mutex
	endpoints map[peer.ID]netaddr.Endpoint

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Watcher over h, folding connectedness changes into
// book, stamping newly-seen endpoints with meta.NodeNetwork and change
// times from clk.
func New(h host.Host, book *addrbook.Book, clk clock.Clock) *Watcher {
	return &Watcher{
		host:      h,
		book:      book,
		clock:     clk,
		endpoints: make(map[peer.ID]netaddr.Endpoint),
	}
}

// Start subscribes to the host's event bus and begins folding events
// into the book. Call Close to unsubscribe and stop.
func (w *Watcher) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	sub, err := w.host.EventBus().Subscribe(new(event.EvtPeerConnectednessChanged))
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.eventLoop(sub)
	return nil
}

// Close stops the event loop and waits for it to finish.
func (w *Watcher) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) eventLoop(sub event.Subscription) {
	defer w.wg.Done()
	defer sub.Close()

	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-sub.Out():
			if !ok {
				return
			}
			e := evt.(event.EvtPeerConnectednessChanged)
			w.handle(e.Peer, e.Connectedness)
		}
	}
}

func (w *Watcher) handle(p peer.ID, c network.Connectedness) {
	now := w.clock.Now()
	var change meta.Change

	switch c {
	case network.Connected:
		ep, ok := w.resolveAndCacheEndpoint(p)
		if !ok {
			return
		}
		// A peer we've never recorded before needs a New… change to
		// seed a record; meta.Apply rejects an Update change when no
		// previous record exists. The connection's own remote address
		// is the handshake-reported self-address, so it is an
		// Alternate observation, not untrusted gossip.
		if _, err := w.book.Get(ep); err != nil {
			if _, _, err := w.book.Apply(meta.NewAlternateChange(ep, meta.NodeNetwork)); err != nil {
				slog.Warn("libp2pwatch: seed apply failed", "peer", p, "error", err)
			}
		}
		change = meta.NewRespondedChange(ep, meta.NodeNetwork, meta.NewTimestamp(now))
	case network.NotConnected:
		ep, ok := w.cachedEndpoint(p)
		if !ok {
			return
		}
		change = meta.NewFailedChange(ep, nil, now)
	default:
		return
	}

	if _, _, err := w.book.Apply(change); err != nil {
		slog.Warn("libp2pwatch: apply failed", "peer", p, "error", err)
	}
}

// resolveAndCacheEndpoint reads the peer's current remote address off
// an active connection and remembers it, so a later disconnect event
// (when no connection remains to read an address from) can still be
// folded against the same endpoint.
func (w *Watcher) resolveAndCacheEndpoint(p peer.ID) (netaddr.Endpoint, bool) {
	conns := w.host.Network().ConnsToPeer(p)
	if len(conns) == 0 {
		return w.cachedEndpoint(p)
	}

	ep, err := netaddr.FromMultiaddr(conns[0].RemoteMultiaddr())
	if err != nil {
		return netaddr.Endpoint{}, false
	}

	w.mu.Lock()
	w.endpoints[p] = ep
	w.mu.Unlock()
	return ep, true
}

func (w *Watcher) cachedEndpoint(p peer.ID) (netaddr.Endpoint, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ep, ok := w.endpoints[p]
	return ep, ok
}
