package meta

import "testing"

func TestIsNeverAttempted(t *testing.T) {
	cases := map[PeerState]bool{
		Responded:               false,
		NeverAttemptedGossiped:  true,
		NeverAttemptedAlternate: true,
		Failed:                  false,
		AttemptPending:          false,
	}
	for state, want := range cases {
		if got := state.IsNeverAttempted(); got != want {
			t.Errorf("%v.IsNeverAttempted() = %v, want %v", state, got, want)
		}
	}
}

func TestStateTotalOrder(t *testing.T) {
	order := []PeerState{
		Responded,
		NeverAttemptedGossiped,
		NeverAttemptedAlternate,
		Failed,
		AttemptPending,
	}
	for i := range order {
		for j := range order {
			got := compareState(order[i], order[j])
			switch {
			case i < j && got >= 0:
				t.Errorf("expected %v < %v", order[i], order[j])
			case i > j && got <= 0:
				t.Errorf("expected %v > %v", order[i], order[j])
			case i == j && got != 0:
				t.Errorf("expected %v == %v", order[i], order[j])
			}
		}
	}
}
