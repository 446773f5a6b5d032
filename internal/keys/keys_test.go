package keys

import (
	"io"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestKeyMapping(t *testing.T) {
	cases := []struct {
		key     byte
		forward float64
		turn    float64
	}{
		{'w', 1, 0},
		{'s', -1, 0},
		{'q', 0, -1},
		{'e', 0, 1},
		{'W', 1, 0},
	}

	for _, tc := range cases {
		s := &Source{hold: time.Minute}
		s.handleKey(tc.key)
		c := s.Control()
		if c.Forward != tc.forward || c.Turn != tc.turn {
			t.Errorf("key %q gave %+v, want forward=%v turn=%v",
				tc.key, c, tc.forward, tc.turn)
		}
	}
}

func TestUnknownKeysIgnored(t *testing.T) {
	s := &Source{hold: time.Minute}
	s.handleKey('w')
	s.handleKey('x')
	if c := s.Control(); c.Forward != 1 {
		t.Errorf("unknown key overwrote control: %+v", c)
	}
}

func TestHoldDecay(t *testing.T) {
	s := &Source{hold: 10 * time.Millisecond}
	s.handleKey('w')

	if c := s.Control(); c.Forward != 1 {
		t.Fatalf("fresh key gave %+v", c)
	}

	time.Sleep(30 * time.Millisecond)
	if c := s.Control(); c.Forward != 0 || c.Turn != 0 {
		t.Errorf("control did not decay to neutral: %+v", c)
	}
}

func TestReadLoopConsumesReader(t *testing.T) {
	r, w := io.Pipe()
	s := NewSource(r)
	defer w.Close()

	io.WriteString(w, "e")
	waitFor(t, func() bool { return s.Control().Turn == 1 }, "turn command from reader")
}

func TestNeutralBeforeAnyKey(t *testing.T) {
	s := &Source{hold: time.Minute}
	if c := s.Control(); c.Forward != 0 || c.Turn != 0 {
		t.Errorf("initial control not neutral: %+v", c)
	}
}
