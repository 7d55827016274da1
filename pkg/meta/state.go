package meta

// PeerState captures the outcome of our last interaction with a peer.
// Its zero value is Responded, the same state an UpdateResponded
// change produces, so a PeerState declared without an initializer
// means Responded.
type PeerState int

const (
	// Responded means we have completed a handshake or received a
	// valid post-handshake message. Peers remain Responded even after
	// they stop answering; liveness is derived from last_response and
	// the current time, not from this label.
	Responded PeerState = iota

	// NeverAttemptedGossiped means the address was learned from a
	// peer-gossip message and has never been dialed.
	NeverAttemptedGossiped

	// NeverAttemptedAlternate means the address was learned as the
	// self-reported address in a handshake message from some other
	// peer, and has never been dialed in this role.
	NeverAttemptedAlternate

	// Failed means the most recent outbound attempt or open
	// connection terminated abnormally.
	Failed

	// AttemptPending means an outbound dial is currently in progress.
	AttemptPending
)

func (s PeerState) String() string {
	switch s {
	case Responded:
		return "Responded"
	case NeverAttemptedGossiped:
		return "NeverAttemptedGossiped"
	case NeverAttemptedAlternate:
		return "NeverAttemptedAlternate"
	case Failed:
		return "Failed"
	case AttemptPending:
		return "AttemptPending"
	default:
		return "PeerState(unknown)"
	}
}

// IsNeverAttempted reports whether s is one of the two
// never-attempted states.
func (s PeerState) IsNeverAttempted() bool {
	switch s {
	case NeverAttemptedGossiped, NeverAttemptedAlternate:
		return true
	default:
		return false
	}
}

// stateRank gives the total order over states required by §4.1:
// Responded < NeverAttemptedGossiped < NeverAttemptedAlternate <
// Failed < AttemptPending. It is distinct from the iota declaration
// order above only in that it's named and tested separately, so a
// future reordering of the const block doesn't silently change
// reconnection priority without a test catching it.
func stateRank(s PeerState) int {
	switch s {
	case Responded:
		return 0
	case NeverAttemptedGossiped:
		return 1
	case NeverAttemptedAlternate:
		return 2
	case Failed:
		return 3
	case AttemptPending:
		return 4
	default:
		panic("meta: unknown PeerState")
	}
}

// compareState orders two states per §4.1.
func compareState(a, b PeerState) int {
	ra, rb := stateRank(a), stateRank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}
