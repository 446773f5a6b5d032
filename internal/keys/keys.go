// Package keys is the local fallback input: when no joystick has been
// seen, control comes from single-key commands on stdin so the motion
// pipeline keeps running in the same shape.
package keys

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/motion"
)

// Terminal input arrives as discrete bytes, not held-key state, so a
// press keeps driving the control vector for a short hold window instead.
const defaultHold = 250 * time.Millisecond

// Source turns key bytes from a reader (normally stdin) into the same
// Control shape the device path produces:
//
//	w/s  forward +1 / -1
//	q/e  turn -1 / +1
type Source struct {
	mu      sync.Mutex
	control motion.Control
	stamp   time.Time

	hold time.Duration
}

// NewSource starts reading keys from r on a background goroutine. The
// goroutine exits when r does.
func NewSource(r io.Reader) *Source {
	s := &Source{hold: defaultHold}
	go s.readLoop(r)
	return s
}

// Control returns the current fallback control vector. A key older than
// the hold window has decayed back to neutral.
func (s *Source) Control() motion.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.stamp) > s.hold {
		return motion.Control{}
	}
	return s.control
}

func (s *Source) readLoop(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		s.handleKey(b)
	}
}

func (s *Source) handleKey(b byte) {
	var c motion.Control
	switch b {
	case 'w', 'W':
		c.Forward = 1
	case 's', 'S':
		c.Forward = -1
	case 'q', 'Q':
		c.Turn = -1
	case 'e', 'E':
		c.Turn = 1
	default:
		return
	}

	s.mu.Lock()
	s.control = c
	s.stamp = time.Now()
	s.mu.Unlock()
}
