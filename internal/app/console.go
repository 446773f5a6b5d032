package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
)

// RunConsole subscribes to the state topic and pretty-prints each report.
func RunConsole(cfg *config.Config) error {
	client, err := connectMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientIDConsole)
	if err != nil {
		return err
	}

	token := client.Subscribe(cfg.MQTT.TopicState, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var rep StateReport
		if err := json.Unmarshal(msg.Payload(), &rep); err != nil {
			log.Printf("console: state unmarshal error: %v", err)
			return
		}
		printReport(rep)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.MQTT.TopicState)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}

func printReport(rep StateReport) {
	if rep.Mode == "pad" && rep.Pad != nil {
		fmt.Printf(
			"[PAD ]  x=%7.1f y=%7.1f  pressed=%-5v  conn=%s\n",
			rep.Pad.X, rep.Pad.Y, rep.Pressed, rep.Conn,
		)
		return
	}

	fmt.Printf(
		"[STATE] pos=(%7.1f %7.1f %7.1f)  yaw=%7.2f  fwd=%5.2f turn=%5.2f  conn=%s",
		rep.State.Pos.X, rep.State.Pos.Y, rep.State.Pos.Z,
		rep.State.Yaw, rep.Control.Forward, rep.Control.Turn, rep.Conn,
	)
	if rep.Joy != nil {
		fmt.Printf("  joy=%4d,%4d", rep.Joy.X, rep.Joy.Y)
	}
	fmt.Println()
}
