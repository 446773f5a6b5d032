package app

import (
	"fmt"
	"log"
	"strings"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/sampler"
)

// RunScanPorts enumerates the serial ports, opens each candidate briefly
// and reports the first line of data it emits. Handy for finding the
// right Bluetooth COM port before configuring it.
func RunScanPorts(cfg *config.Config) error {
	ports, err := sampler.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		return sampler.ErrPortNotFound
	}

	log.Printf("scanning %d serial port(s) at %d baud", len(ports), cfg.Serial.Baud)

	for _, p := range ports {
		desc := p.Description
		if desc == "" {
			desc = "no description"
		}
		fmt.Printf("testing %s (%s)\n", p.Name, desc)

		line, err := probePort(p.Name, cfg.Serial.Baud)
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			continue
		}
		if line == "" {
			fmt.Println("  no data")
			continue
		}

		fmt.Printf("  data received: %q\n", line)
		fmt.Printf("\nfound active device on %s\n", p.Name)
		return nil
	}

	fmt.Println("\nscan complete, no active device found")
	return nil
}

// probePort opens the port with a short read timeout and returns the
// first chunk of text it sends, if any.
func probePort(name string, baud uint) (string, error) {
	opts := serial.OpenOptions{
		PortName:              name,
		BaudRate:              baud,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		MinimumReadSize:       0,
		InterCharacterTimeout: 1000,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", sampler.ErrPortUnavailable, err)
	}
	defer port.Close()

	buf := make([]byte, 256)
	n, _ := port.Read(buf)
	return strings.TrimSpace(string(buf[:n])), nil
}
