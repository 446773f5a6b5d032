package joy

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLineJSON(t *testing.T) {
	s, ok := ParseLine(`{"x":512,"y":512}`)
	if !ok {
		t.Fatal("valid JSON line rejected")
	}
	if s.X != 512 || s.Y != 512 {
		t.Errorf("got x=%d y=%d, want 512/512", s.X, s.Y)
	}
	if s.HasButton {
		t.Error("button reported for a line without one")
	}
}

func TestParseLineJSONButton(t *testing.T) {
	s, ok := ParseLine(`{"x":100,"y":900,"button":1}`)
	if !ok {
		t.Fatal("valid JSON line with button rejected")
	}
	if !s.HasButton || s.Button != 1 {
		t.Errorf("button = (%v, %d), want (true, 1)", s.HasButton, s.Button)
	}
}

func TestParseLineJSONRoundTrip(t *testing.T) {
	payload, err := json.Marshal(Sample{X: 512, Y: 512})
	if err != nil {
		t.Fatal(err)
	}
	s, ok := ParseLine(string(payload))
	if !ok {
		t.Fatalf("own encoding %q rejected", payload)
	}
	if s.X != 512 || s.Y != 512 {
		t.Errorf("round trip gave x=%d y=%d", s.X, s.Y)
	}
}

func TestSampleButtonPresenceSurvivesRoundTrip(t *testing.T) {
	// A button held at 0 must stay on the wire, and its absence must stay
	// absent.
	payload, err := json.Marshal(Sample{X: 1, Y: 2, Button: 0, HasButton: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(payload), `"button":0`) {
		t.Errorf("held-at-0 button dropped from the wire: %s", payload)
	}
	var s Sample
	if err := json.Unmarshal(payload, &s); err != nil {
		t.Fatal(err)
	}
	if !s.HasButton || s.Button != 0 {
		t.Errorf("round trip lost the button: %+v", s)
	}

	payload, err = json.Marshal(Sample{X: 1, Y: 2})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(payload), "button") {
		t.Errorf("buttonless sample grew a button field: %s", payload)
	}
	s = Sample{}
	if err := json.Unmarshal(payload, &s); err != nil {
		t.Fatal(err)
	}
	if s.HasButton {
		t.Errorf("buttonless wire form unmarshaled with HasButton set: %+v", s)
	}
}

func TestParseLineKeyValue(t *testing.T) {
	s, ok := ParseLine("X=300;Y=700")
	if !ok {
		t.Fatal("valid key=value line rejected")
	}
	if s.X != 300 || s.Y != 700 {
		t.Errorf("got x=%d y=%d, want 300/700", s.X, s.Y)
	}
}

func TestParseLineCSV(t *testing.T) {
	s, ok := ParseLine("512,480,1")
	if !ok {
		t.Fatal("valid CSV line rejected")
	}
	if s.X != 512 || s.Y != 480 {
		t.Errorf("got x=%d y=%d, want 512/480", s.X, s.Y)
	}
	if !s.HasButton || s.Button != 1 {
		t.Errorf("button = (%v, %d), want (true, 1)", s.HasButton, s.Button)
	}
}

func TestParseLineTrimsWhitespace(t *testing.T) {
	if _, ok := ParseLine("  {\"x\":1,\"y\":2}\r"); !ok {
		t.Error("line with surrounding whitespace rejected")
	}
}

func TestParseLineMalformed(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"=== Arduino Started ===",
		"hello world",
		"{\"x\":512}",              // missing y
		"{\"a\":1,\"b\":2}",        // wrong keys
		"{\"x\":\"512\",\"y\":1}",  // string axis
		"{\"x\":51.5,\"y\":512}",   // non-integer axis
		"{\"x\":512,\"y\":",        // truncated
		"X=512",                    // missing Y
		"X=abc;Y=512",              // non-numeric
		"Z=1;W=2",                  // wrong keys
		"512,480",                  // two CSV fields
		"512,480,1,7",              // four CSV fields
		"512,abc,1",                // non-numeric CSV field
	}
	for _, line := range bad {
		if s, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) accepted as %+v, want discard", line, s)
		}
	}
}

func TestParseLineInterleavedDiagnostics(t *testing.T) {
	// Diagnostic text between valid records must not poison the stream.
	lines := []string{
		`{"x":1023,"y":512}`,
		"=== Arduino Started ===",
		`{"x":0,"y":512}`,
	}
	var got []Sample
	for _, line := range lines {
		if s, ok := ParseLine(line); ok {
			got = append(got, s)
		}
	}
	if len(got) != 2 {
		t.Fatalf("parsed %d samples, want 2", len(got))
	}
	if got[0].X != 1023 || got[1].X != 0 {
		t.Errorf("samples out of order or corrupted: %+v", got)
	}
}
