package sampler

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/joy"
)

const testTimeout = 10 * time.Millisecond

// newTestSampler runs the read loop against an in-memory pipe standing in
// for the serial port.
func newTestSampler(t *testing.T) (*Sampler, *io.PipeWriter) {
	t.Helper()
	r, w := io.Pipe()
	s := newSampler(r, "testport", testTimeout)
	go s.readLoop()
	t.Cleanup(func() {
		s.Close()
		w.Close()
	})
	return s, w
}

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

func TestPollReturnsSamplesInArrivalOrder(t *testing.T) {
	s, w := newTestSampler(t)

	io.WriteString(w, "{\"x\":1,\"y\":10}\n{\"x\":2,\"y\":20}\n{\"x\":3,\"y\":30}\n")

	var got []joy.Sample
	waitFor(t, func() bool {
		got = append(got, s.Poll()...)
		return len(got) >= 3
	}, "three samples")

	for i, want := range []int{1, 2, 3} {
		if got[i].X != want {
			t.Errorf("sample %d has x=%d, want %d", i, got[i].X, want)
		}
	}

	// Drained samples are gone: no sample is ever applied twice.
	if extra := s.Poll(); len(extra) != 0 {
		t.Errorf("second Poll returned %d samples, want 0", len(extra))
	}
}

func TestPartialLineStaysBuffered(t *testing.T) {
	s, w := newTestSampler(t)

	io.WriteString(w, "{\"x\":7,")
	time.Sleep(20 * time.Millisecond)
	if got := s.Poll(); len(got) != 0 {
		t.Fatalf("incomplete line produced %d samples", len(got))
	}

	io.WriteString(w, "\"y\":9}\n")
	var got []joy.Sample
	waitFor(t, func() bool {
		got = append(got, s.Poll()...)
		return len(got) >= 1
	}, "completed sample")

	if got[0].X != 7 || got[0].Y != 9 {
		t.Errorf("got %+v, want x=7 y=9", got[0])
	}
}

func TestMalformedLinesAreDiscardedSilently(t *testing.T) {
	s, w := newTestSampler(t)

	io.WriteString(w, "{\"x\":1023,\"y\":512}\n=== Arduino Started ===\n{\"x\":0,\"y\":512}\n")

	var got []joy.Sample
	waitFor(t, func() bool {
		got = append(got, s.Poll()...)
		return len(got) >= 2
	}, "two valid samples")

	if got[0].X != 1023 || got[1].X != 0 {
		t.Errorf("valid samples corrupted by interleaved noise: %+v", got)
	}
	if s.Discarded() != 1 {
		t.Errorf("discarded count = %d, want 1", s.Discarded())
	}
}

func TestConnectedFlipsOnFirstSample(t *testing.T) {
	s, w := newTestSampler(t)

	if s.State() != Connecting {
		t.Fatalf("initial state = %v, want connecting", s.State())
	}

	// Noise alone must not flip the state.
	io.WriteString(w, "booting...\n")
	time.Sleep(20 * time.Millisecond)
	if s.State() != Connecting {
		t.Fatalf("state after noise = %v, want connecting", s.State())
	}

	io.WriteString(w, "X=512;Y=512\n")
	waitFor(t, func() bool { return s.State() == Connected }, "connected state")
}

func TestOverflowKeepsNewestSample(t *testing.T) {
	s, w := newTestSampler(t)

	total := queueSize + 16
	for i := 0; i < total; i++ {
		fmt.Fprintf(w, "{\"x\":%d,\"y\":0}\n", i)
	}
	// Lines are handled in order, so once this marker hits the discard
	// counter every sample before it has been pushed.
	io.WriteString(w, "end-of-burst\n")
	waitFor(t, func() bool { return s.Discarded() == 1 }, "reader to finish the burst")

	if len(s.samples) != queueSize {
		t.Fatalf("queue holds %d samples, want full at %d", len(s.samples), queueSize)
	}

	got := s.Poll()
	if len(got) == 0 || len(got) > queueSize {
		t.Fatalf("drained %d samples, want 1..%d", len(got), queueSize)
	}
	if last := got[len(got)-1]; last.X != total-1 {
		t.Errorf("newest sample x=%d, want %d (oldest dropped, not newest)", last.X, total-1)
	}
}

func TestDeviceErrorFlipsStateToDisconnected(t *testing.T) {
	s, w := newTestSampler(t)

	io.WriteString(w, "{\"x\":1,\"y\":2}\n")
	waitFor(t, func() bool { return s.State() == Connected }, "connected state")

	// The device dropping mid-session must re-engage the fallback, not
	// leave the last control driving under a stale connected state.
	w.CloseWithError(errors.New("device gone"))
	waitFor(t, func() bool { return s.State() == Disconnected }, "disconnected state")

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Error("reader goroutine still running after device error")
	}
}

func TestCleanEOFTreatedAsDeviceLoss(t *testing.T) {
	s, w := newTestSampler(t)

	io.WriteString(w, "{\"x\":1,\"y\":2}\n")
	waitFor(t, func() bool { return s.State() == Connected }, "connected state")

	// A stream that ends cleanly keeps reporting (0, io.EOF) with no
	// delay; the reader must exit instead of spinning on it.
	w.Close()
	waitFor(t, func() bool { return s.State() == Disconnected }, "disconnected state")

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Error("reader goroutine still running after end of stream")
	}
}

func TestCloseIsIdempotentAndBounded(t *testing.T) {
	s, _ := newTestSampler(t)

	start := time.Now()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Close took %v, want bounded by a few read timeouts", elapsed)
	}

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Error("reader goroutine still running after Close")
	}
}

func TestPickPortPrefersBluetooth(t *testing.T) {
	ports := []PortInfo{
		{Name: "COM1", Description: "Communications Port"},
		{Name: "COM5", Description: "Standard Serial over Bluetooth link"},
	}
	name, err := pickPort(ports)
	if err != nil {
		t.Fatal(err)
	}
	if name != "COM5" {
		t.Errorf("picked %s, want COM5", name)
	}
}

func TestPickPortHC05ByName(t *testing.T) {
	ports := []PortInfo{
		{Name: "/dev/ttyUSB0", Description: "USB-UART"},
		{Name: "/dev/cu.HC-05-DevB", Description: ""},
	}
	name, err := pickPort(ports)
	if err != nil {
		t.Fatal(err)
	}
	if name != "/dev/cu.HC-05-DevB" {
		t.Errorf("picked %s, want the HC-05 port", name)
	}
}

func TestPickPortFallsBackToFirst(t *testing.T) {
	ports := []PortInfo{
		{Name: "COM3", Description: "USB Serial Device"},
		{Name: "COM4", Description: "USB Serial Device"},
	}
	name, err := pickPort(ports)
	if err != nil {
		t.Fatal(err)
	}
	if name != "COM3" {
		t.Errorf("picked %s, want first port COM3", name)
	}
}

func TestPickPortEmpty(t *testing.T) {
	if _, err := pickPort(nil); !errors.Is(err, ErrPortNotFound) {
		t.Errorf("err = %v, want ErrPortNotFound", err)
	}
}
