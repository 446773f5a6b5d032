package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/keys"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/motion"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/scene"
)

// RunPad runs the 2D variant: the stick moves a square around the screen
// plane directly, the stick button toggles its color. Same sampler, same
// normalization, planar integration with window-bounds clamping.
func RunPad(cfg *config.Config) error {
	smp := openSampler(cfg, "pad")
	if smp != nil {
		defer smp.Close()
	}

	fallback := keys.NewSource(os.Stdin)
	pipe := newPipeline(cfg, smp, fallback)

	client, err := connectMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientIDPad)
	if err != nil {
		log.Printf("pad: %v, running without telemetry", err)
	} else {
		defer client.Disconnect(250)
	}

	// The square stays fully on screen.
	half := float64(scene.PadSquare) / 2
	bounds := motion.Bounds{
		MinX: half,
		MinY: half,
		MaxX: float64(cfg.Screen.Width) - half,
		MaxY: float64(cfg.Screen.Height) - half,
	}
	st := motion.PlanarState{
		X: float64(cfg.Screen.Width) / 2,
		Y: float64(cfg.Screen.Height) / 2,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Screen.FPS))
	defer ticker.Stop()

	log.Println("pad: starting frame loop")

	prev := time.Now()
	for {
		select {
		case <-sigCh:
			log.Println("pad: shutting down")
			return nil
		case t := <-ticker.C:
			dt := t.Sub(prev).Seconds()
			prev = t

			dx, dy := pipe.planarControl()
			st = motion.IntegratePlanar(st, dx, dy, dt,
				cfg.Motion.PadSpeed, cfg.Motion.MaxDT, bounds)

			rep := pipe.report("pad")
			rep.Pad = &st
			rep.Pressed = pipe.pressed()
			publish(client, cfg.MQTT.TopicState, rep)
		}
	}
}
