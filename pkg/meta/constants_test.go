package meta

import "testing"

// TestReconnectionDelayMatchesComponents pins MinPeerReconnectionDelay
// to the sum of the constants it's defined from, so a future edit to
// one without the other is caught immediately.
func TestReconnectionDelayMatchesComponents(t *testing.T) {
	constructed := HeartbeatInterval + RequestTimeout + RequestTimeout + RequestTimeout
	if MinPeerReconnectionDelay != constructed {
		t.Fatalf("MinPeerReconnectionDelay = %v, want %v", MinPeerReconnectionDelay, constructed)
	}
}

func TestTimeoutsConsistent(t *testing.T) {
	if HandshakeTimeout > RequestTimeout {
		t.Error("handshakes are requests, so the handshake timeout can't exceed the request timeout")
	}
	if EWMADefaultRTT <= RequestTimeout {
		t.Error("default EWMA RTT must exceed the request timeout, or new peers aren't required to prove they're fast")
	}
	if EWMADecayTime <= RequestTimeout {
		t.Error("EWMA decay time must exceed the request timeout, or timed-out peers aren't penalised")
	}
}

func TestMaxGossipListLen(t *testing.T) {
	want := (MaxProtocolMessageLen - 3) / 30
	if MaxGossipListLen != want {
		t.Errorf("MaxGossipListLen = %d, want %d", MaxGossipListLen, want)
	}
}
