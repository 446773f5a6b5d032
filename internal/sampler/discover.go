package sampler

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// PortInfo is one enumerated serial port.
type PortInfo struct {
	Name        string
	Description string
}

// Substrings that identify a Bluetooth serial module in a port's
// descriptive name. HC-05/HC-06 are the modules the joystick firmware
// ships with.
var bluetoothHints = []string{"bluetooth", "hc-05", "hc-06"}

// ListPorts enumerates the serial ports visible to the system as
// (identifier, description) pairs.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("serial port enumeration: %w", err)
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{Name: d.Name, Description: d.Product})
	}
	return ports, nil
}

// Discover picks the port to use when none is configured: the first port
// whose name or description looks like a Bluetooth serial module, else the
// first port at all, else ErrPortNotFound.
func Discover() (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	return pickPort(ports)
}

func pickPort(ports []PortInfo) (string, error) {
	if len(ports) == 0 {
		return "", ErrPortNotFound
	}
	for _, p := range ports {
		desc := strings.ToLower(p.Name + " " + p.Description)
		for _, hint := range bluetoothHints {
			if strings.Contains(desc, hint) {
				return p.Name, nil
			}
		}
	}
	return ports[0].Name, nil
}
