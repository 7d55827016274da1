package meta

import (
	"testing"
	"time"
)

func TestNewTimestampRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	ts := NewTimestamp(now)
	if ts.Time() != now {
		t.Errorf("expected round-trip, got %v want %v", ts.Time(), now)
	}
}

func TestNewTimestampClampsNegative(t *testing.T) {
	before := time.Unix(-100, 0)
	if got := NewTimestamp(before); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestSaturatingElapsedFuture(t *testing.T) {
	now := time.Unix(1_000, 0).UTC()
	future := NewTimestamp(time.Unix(2_000, 0).UTC())
	if d := future.SaturatingElapsed(now); d != 0 {
		t.Errorf("expected 0 for future timestamp, got %v", d)
	}
}

func TestSaturatingElapsedPast(t *testing.T) {
	now := time.Unix(1_000, 0).UTC()
	past := NewTimestamp(time.Unix(400, 0).UTC())
	if d := past.SaturatingElapsed(now); d != 600*time.Second {
		t.Errorf("expected 600s, got %v", d)
	}
}

func TestCheckedSub(t *testing.T) {
	ts := Timestamp(1_234_567)
	got, ok := ts.CheckedSub(567)
	if !ok || got != 1_234_000 {
		t.Errorf("expected 1234000, got %d ok=%v", got, ok)
	}

	if _, ok := Timestamp(10).CheckedSub(20); ok {
		t.Errorf("expected underflow to report false")
	}
}

func TestTruncateTo(t *testing.T) {
	ts := Timestamp(1_234_567)
	got := ts.TruncateTo(1800)
	if got != 1_233_000 {
		t.Errorf("expected 1233000, got %d", got)
	}
}

func TestMaxTimestamp(t *testing.T) {
	a := Timestamp(10)
	b := Timestamp(20)

	if got := maxTimestamp(&a, &b); *got != 20 {
		t.Errorf("expected 20, got %d", *got)
	}
	if got := maxTimestamp(nil, &b); *got != 20 {
		t.Errorf("expected b when a is nil, got %v", got)
	}
	if got := maxTimestamp(&a, nil); *got != 10 {
		t.Errorf("expected a when b is nil, got %v", got)
	}
	if got := maxTimestamp(nil, nil); got != nil {
		t.Errorf("expected nil when both absent")
	}
}
