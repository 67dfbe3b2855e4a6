package engine

import (
	"testing"
	"time"
)

func TestMoveTimeBudget(t *testing.T) {
	var th timeHandler
	th.startTimer(Limits{MoveTime: 500 * time.Millisecond}, true)
	if !th.limited {
		t.Fatalf("movetime search must be limited")
	}
	if th.soft != th.hard {
		t.Errorf("movetime: soft %v and hard %v must match", th.soft, th.hard)
	}
	if want := 500*time.Millisecond - moveOverhead; th.hard != want {
		t.Errorf("budget %v, want %v", th.hard, want)
	}
}

func TestClockBudget(t *testing.T) {
	var th timeHandler
	th.startTimer(Limits{WhiteTime: 60 * time.Second, WhiteInc: time.Second}, true)
	if !th.limited {
		t.Fatalf("clock search must be limited")
	}
	if th.soft > th.hard {
		t.Errorf("soft %v exceeds hard %v", th.soft, th.hard)
	}
	if th.hard > 30*time.Second {
		t.Errorf("hard limit %v exceeds half the remaining clock", th.hard)
	}
	if th.soft < time.Millisecond {
		t.Errorf("soft limit %v below the floor", th.soft)
	}

	// The black clock drives the budget when black is to move.
	var thb timeHandler
	thb.startTimer(Limits{WhiteTime: time.Second, BlackTime: 60 * time.Second}, false)
	if thb.soft <= th.soft/100 {
		t.Errorf("black budget %v ignored the black clock", thb.soft)
	}
}

func TestUnlimitedSearches(t *testing.T) {
	for _, limits := range []Limits{
		{},
		{Depth: 8},
		{Infinite: true},
		{Infinite: true, WhiteTime: time.Second, BlackTime: time.Second},
	} {
		var th timeHandler
		th.startTimer(limits, true)
		if th.limited {
			t.Errorf("%+v: must not be time limited", limits)
		}
		if th.softExpired() || th.hardExpired() {
			t.Errorf("%+v: unlimited search reports expiry", limits)
		}
	}
}

func TestExpiry(t *testing.T) {
	var th timeHandler
	th.startTimer(Limits{MoveTime: 30 * time.Millisecond}, true)
	if th.hardExpired() {
		t.Fatalf("expired immediately")
	}
	time.Sleep(40 * time.Millisecond)
	if !th.softExpired() || !th.hardExpired() {
		t.Fatalf("budget of 30ms not expired after 40ms")
	}
}
