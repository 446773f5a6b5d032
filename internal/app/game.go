package app

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/keys"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/motion"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/sampler"
)

// RunGame runs the 3D pipeline: joystick samples drive a heading/position
// state with a follow camera, published as a StateReport every frame for
// the console and web viewers.
func RunGame(cfg *config.Config) error {
	smp := openSampler(cfg, "game")
	if smp != nil {
		defer smp.Close()
	}

	fallback := keys.NewSource(os.Stdin)
	pipe := newPipeline(cfg, smp, fallback)

	client, err := connectMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientIDGame)
	if err != nil {
		log.Printf("game: %v, running without telemetry", err)
	} else {
		defer client.Disconnect(250)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Screen.FPS))
	defer ticker.Stop()

	log.Println("game: starting frame loop")

	prev := time.Now()
	for {
		select {
		case <-sigCh:
			log.Println("game: shutting down")
			return nil
		case t := <-ticker.C:
			dt := t.Sub(prev).Seconds()
			prev = t

			pipe.step(dt)

			rep := pipe.report("game")
			rep.Camera = motion.FollowCamera(pipe.state,
				cfg.Camera.FollowDistance, cfg.Camera.FollowHeight)
			publish(client, cfg.MQTT.TopicState, rep)
		}
	}
}

// openSampler opens the device, degrading to keyboard-only operation on
// any connect-time error. Input failures never terminate the loop.
func openSampler(cfg *config.Config, who string) *sampler.Sampler {
	smp, err := sampler.Open(cfg.Serial)
	if err != nil {
		log.Printf("%s: %v", who, err)
		log.Printf("%s: no joystick, keyboard controls active (w/s forward, q/e turn)", who)
		return nil
	}
	return smp
}

func publish(client mqtt.Client, topic string, rep StateReport) {
	if client == nil {
		return
	}
	payload, err := json.Marshal(rep)
	if err != nil {
		log.Printf("state marshal error: %v", err)
		return
	}
	token := client.Publish(topic, 0, true, payload)
	token.Wait()
	if token.Error() != nil {
		log.Printf("state publish error: %v", token.Error())
	}
}
