package sampler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/joy"
)

// queueSize bounds the pending-sample queue. The stick sends at most a few
// hundred lines per second, so a frame at 60 FPS never sees more than a
// handful; overflow drops the oldest sample so the newest always survives.
const queueSize = 64

// Sampler owns the serial byte stream. A background goroutine accumulates
// bytes into newline-delimited records, parses them and queues the result;
// the frame loop drains the queue with Poll. Malformed records are counted
// and dropped, never surfaced.
type Sampler struct {
	port     io.ReadCloser
	portName string

	readTimeout time.Duration

	samples chan joy.Sample
	stop    chan struct{}
	done    chan struct{}

	state     atomic.Int32
	discarded atomic.Uint64

	closeOnce sync.Once
}

// Open resolves the device identifier (running auto-discovery for "auto"),
// opens the port and starts the background reader.
//
// Errors: ErrPortNotFound if discovery yields no candidate,
// ErrPortUnavailable if the device cannot be opened.
func Open(cfg config.SerialConfig) (*Sampler, error) {
	name := cfg.Port
	if name == "auto" {
		var err error
		name, err = Discover()
		if err != nil {
			return nil, err
		}
		log.Printf("sampler: auto-discovery selected %s", name)
	}

	// MinimumReadSize 0 with an inter-character timeout makes Read return
	// periodically even when the device is silent, so the reader can
	// observe the stop signal.
	timeoutMs := uint(cfg.ReadTimeoutMs)
	if timeoutMs < 100 {
		timeoutMs = 100
	}
	opts := serial.OpenOptions{
		PortName:              name,
		BaudRate:              cfg.Baud,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		MinimumReadSize:       0,
		InterCharacterTimeout: timeoutMs,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrPortUnavailable, name, err)
	}
	log.Printf("sampler: serial port opened on %s at %d baud", name, cfg.Baud)

	s := newSampler(port, name, time.Duration(timeoutMs)*time.Millisecond)
	go s.readLoop()
	return s, nil
}

// newSampler wires a sampler around an arbitrary byte stream. Split out of
// Open so tests can feed the read loop without a device.
func newSampler(port io.ReadCloser, name string, readTimeout time.Duration) *Sampler {
	s := &Sampler{
		port:        port,
		portName:    name,
		readTimeout: readTimeout,
		samples:     make(chan joy.Sample, queueSize),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	s.state.Store(int32(Connecting))
	return s
}

// Poll returns the samples accumulated since the previous call, in arrival
// order, without blocking. Each sample is returned exactly once; bytes that
// do not yet form a complete line stay buffered in the reader.
func (s *Sampler) Poll() []joy.Sample {
	var out []joy.Sample
	for {
		select {
		case smp := <-s.samples:
			out = append(out, smp)
		default:
			return out
		}
	}
}

// State reports the connection state. Connected flips on the first valid
// sample and reverts to Disconnected only if the device dies mid-session.
func (s *Sampler) State() ConnState {
	return ConnState(s.state.Load())
}

// Port returns the resolved device identifier.
func (s *Sampler) Port() string {
	return s.portName
}

// Discarded returns the number of lines dropped by the tolerance policy.
// Diagnostics only.
func (s *Sampler) Discarded() uint64 {
	return s.discarded.Load()
}

// Close signals the reader to stop, waits for it (bounded by a few read
// timeouts, not indefinitely) and releases the port. Safe to call more
// than once.
func (s *Sampler) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		select {
		case <-s.done:
		case <-time.After(3 * s.readTimeout):
			log.Printf("sampler: reader did not stop in time, closing port anyway")
		}
		if err := s.port.Close(); err != nil {
			log.Printf("sampler: port close error: %v", err)
		}
	})
	return nil
}

// readLoop runs on its own goroutine: it never touches the frame loop and
// a stalled device can only ever stall this goroutine.
func (s *Sampler) readLoop() {
	defer close(s.done)

	buf := make([]byte, 256)
	var pending []byte

	emptyEOF := 0

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		start := time.Now()
		n, err := s.port.Read(buf)
		if n > 0 {
			pending = s.consume(append(pending, buf[:n]...))
		}
		if err == nil {
			emptyEOF = 0
			continue
		}
		if errors.Is(err, io.EOF) {
			if n > 0 {
				emptyEOF = 0
				continue
			}
			// A timed-out read on a silent port reports EOF with no data
			// after roughly one timeout interval; that is the pacing
			// tick. A clean EOF returns immediately, and a run of those
			// means the stream itself has ended.
			if time.Since(start) >= s.readTimeout/2 {
				emptyEOF = 0
				continue
			}
			emptyEOF++
			if emptyEOF < 3 {
				continue
			}
		}

		select {
		case <-s.stop:
			return
		default:
		}
		s.state.Store(int32(Disconnected))
		log.Printf("sampler: %v: %v", ErrDeviceClosed, err)
		return
	}
}

// consume splits off every complete line in pending, handles each, and
// returns the unterminated tail for the next read.
func (s *Sampler) consume(pending []byte) []byte {
	for {
		i := bytes.IndexByte(pending, '\n')
		if i < 0 {
			return pending
		}
		line := string(pending[:i])
		pending = pending[i+1:]
		s.handleLine(line)
	}
}

func (s *Sampler) handleLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	smp, ok := joy.ParseLine(trimmed)
	if !ok {
		// Deliberate tolerance: the device interleaves diagnostic text
		// ("=== Arduino Started ===") with data lines.
		s.discarded.Add(1)
		return
	}

	if s.state.CompareAndSwap(int32(Connecting), int32(Connected)) {
		log.Printf("sampler: receiving joystick data on %s", s.portName)
	}
	s.push(smp)
}

// push enqueues without ever blocking the reader. On overflow the oldest
// sample is dropped; the consumer only cares about the latest anyway.
func (s *Sampler) push(smp joy.Sample) {
	select {
	case s.samples <- smp:
		return
	default:
	}
	select {
	case <-s.samples:
	default:
	}
	select {
	case s.samples <- smp:
	default:
	}
}
