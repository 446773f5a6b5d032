package app

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/joy"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/motion"
)

// StateReport is the per-frame snapshot published on the state topic and
// consumed by the console and web viewers.
type StateReport struct {
	Mode string `json:"mode"` // "game" or "pad"

	State   motion.State   `json:"state"`
	Camera  motion.Camera  `json:"camera"`
	Control motion.Control `json:"control"`

	// 2D variant only.
	Pad     *motion.PlanarState `json:"pad,omitempty"`
	Pressed bool                `json:"pressed,omitempty"`

	Conn      string      `json:"conn"`
	Port      string      `json:"port,omitempty"`
	Joy       *joy.Sample `json:"joy,omitempty"`
	Discarded uint64      `json:"discarded"`
}

func connectMQTT(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	log.Printf("connected to MQTT broker at %s", broker)
	return client, nil
}
