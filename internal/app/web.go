package app

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"log"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/scene"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local viewer, any origin
	},
}

// cubeSpinRate matches the reference scene's idle cube rotation.
const cubeSpinRate = 25.0 // degrees per second

// RunWeb serves the browser viewer: latest state as JSON on /api/state,
// rendered PNG frames streamed over /ws, static files from ./web.
func RunWeb(cfg *config.Config) error {
	var (
		mu         sync.RWMutex
		lastReport StateReport
		haveReport bool
	)

	// 1) Subscribe to the state topic and keep the latest report.
	client, err := connectMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientIDWeb)
	if err != nil {
		return err
	}

	token := client.Subscribe(cfg.MQTT.TopicState, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var rep StateReport
		if err := json.Unmarshal(msg.Payload(), &rep); err != nil {
			log.Printf("web: state unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastReport = rep
		haveReport = true
		mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.MQTT.TopicState)

	// 2) Render loop feeding connected websocket clients.
	hub := newFrameHub()
	renderer := scene.NewRenderer(cfg.Screen.Width, cfg.Screen.Height, cfg.Camera.FOV)

	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.Screen.FPS))
		defer ticker.Stop()

		start := time.Now()
		var buf bytes.Buffer

		for t := range ticker.C {
			if hub.empty() {
				continue
			}

			mu.RLock()
			rep, ok := lastReport, haveReport
			mu.RUnlock()
			if !ok {
				continue
			}

			spin := t.Sub(start).Seconds() * cubeSpinRate
			img := renderFrame(renderer, rep, spin)

			buf.Reset()
			if err := png.Encode(&buf, img); err != nil {
				log.Printf("web: frame encode error: %v", err)
				continue
			}
			hub.broadcast(buf.Bytes())
		}
	}()

	// 3) JSON API endpoint: latest report.
	http.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveReport {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastReport); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Frame stream.
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		hub.add(conn)
	})

	// 5) Static files from ./web as the root.
	http.Handle("/", http.FileServer(http.Dir("web")))

	log.Printf("web: server listening on %s", cfg.Web.Listen)
	return http.ListenAndServe(cfg.Web.Listen, nil)
}

func renderFrame(r *scene.Renderer, rep StateReport, spin float64) *image.NRGBA {
	if rep.Mode == "pad" && rep.Pad != nil {
		return r.RenderPad(scene.PadFrame{
			State:     *rep.Pad,
			Pressed:   rep.Pressed,
			Connected: rep.Conn == "connected",
			Port:      rep.Port,
		})
	}

	frame := scene.Frame{
		State:     rep.State,
		Camera:    rep.Camera,
		Control:   rep.Control,
		CubeAngle: spin,
		Connected: rep.Conn == "connected",
		Port:      rep.Port,
	}
	if rep.Joy != nil {
		frame.LastSample = *rep.Joy
		frame.HaveSample = true
	}
	return r.Render(frame)
}

// frameHub fans rendered frames out to the connected viewers. A slow or
// dead client is dropped rather than allowed to stall the render loop.
type frameHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newFrameHub() *frameHub {
	return &frameHub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *frameHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	log.Printf("web: viewer connected (%d active)", n)

	// Drain (and discard) client messages so closes are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(conn)
				return
			}
		}
	}()
}

func (h *frameHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	delete(h.conns, conn)
	n := len(h.conns)
	h.mu.Unlock()

	if ok {
		conn.Close()
		log.Printf("web: viewer disconnected (%d active)", n)
	}
}

func (h *frameHub) empty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns) == 0
}

func (h *frameHub) broadcast(frame []byte) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(time.Second))
		if err := c.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			h.remove(c)
		}
	}
}
