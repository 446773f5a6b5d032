package sampler

// ConnState tracks whether a live input device is attached.
type ConnState int32

const (
	// Disconnected: no device; control comes from the local fallback.
	Disconnected ConnState = iota
	// Connecting: port opened, no data seen yet.
	Connecting
	// Connected: at least one valid sample has arrived. Reverts to
	// Disconnected if the device dies mid-session; never back to
	// Connecting.
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}
