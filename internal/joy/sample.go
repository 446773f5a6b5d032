package joy

import "encoding/json"

// Sample is a single raw joystick reading as sent by the device,
// one reading per line on the wire.
type Sample struct {
	X int // raw axis, 0..1023 on the 10-bit sticks
	Y int

	Button    int
	HasButton bool
}

// sampleWire is the JSON form. Button is present exactly when the device
// reported one, so a button held at 0 survives the round trip.
type sampleWire struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Button *int `json:"button,omitempty"`
}

func (s Sample) MarshalJSON() ([]byte, error) {
	w := sampleWire{X: s.X, Y: s.Y}
	if s.HasButton {
		w.Button = &s.Button
	}
	return json.Marshal(w)
}

func (s *Sample) UnmarshalJSON(data []byte) error {
	var w sampleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.X, s.Y = w.X, w.Y
	s.Button, s.HasButton = 0, false
	if w.Button != nil {
		s.Button, s.HasButton = *w.Button, true
	}
	return nil
}
