package joy

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseLine parses one line of device output into a Sample. The second
// return value is false for anything that is not a well-formed reading:
// diagnostic banners, partial lines and corrupted payloads all land there
// and are skipped by the caller, never reported as errors.
//
// Three wire forms are accepted:
//
//	{"x":512,"y":512}        JSON, optional "button"
//	X=512;Y=512              key=value pairs
//	512,512,0                CSV, third field is the button state
func ParseLine(line string) (Sample, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Sample{}, false
	}

	switch {
	case strings.HasPrefix(line, "{"):
		return parseJSON(line)
	case strings.Contains(line, "="):
		return parseKeyValue(line)
	case strings.Contains(line, ","):
		return parseCSV(line)
	}
	return Sample{}, false
}

func parseJSON(line string) (Sample, bool) {
	var obj struct {
		X      *int `json:"x"`
		Y      *int `json:"y"`
		Button *int `json:"button"`
	}
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		return Sample{}, false
	}
	if obj.X == nil || obj.Y == nil {
		return Sample{}, false
	}
	s := Sample{X: *obj.X, Y: *obj.Y}
	if obj.Button != nil {
		s.Button = *obj.Button
		s.HasButton = true
	}
	return s, true
}

func parseKeyValue(line string) (Sample, bool) {
	var s Sample
	var haveX, haveY bool
	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return Sample{}, false
		}
		v, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return Sample{}, false
		}
		switch strings.ToUpper(strings.TrimSpace(kv[0])) {
		case "X":
			s.X = v
			haveX = true
		case "Y":
			s.Y = v
			haveY = true
		case "B", "BTN", "BUTTON":
			s.Button = v
			s.HasButton = true
		default:
			return Sample{}, false
		}
	}
	if !haveX || !haveY {
		return Sample{}, false
	}
	return s, true
}

func parseCSV(line string) (Sample, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Sample{}, false
	}
	vals := make([]int, 3)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Sample{}, false
		}
		vals[i] = v
	}
	return Sample{X: vals[0], Y: vals[1], Button: vals[2], HasButton: true}, true
}
