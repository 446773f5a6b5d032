package app

import (
	"strings"
	"testing"
	"time"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/keys"
)

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestPipelineFallsBackToKeysWithoutDevice(t *testing.T) {
	src := keys.NewSource(strings.NewReader("w"))
	p := newPipeline(config.Default(), nil, src)

	waitFor(t, func() bool { return src.Control().Forward == 1 }, "key command")

	p.step(0.05)
	if p.state.Pos.Z <= 0 {
		t.Errorf("keyboard forward did not move the state: %+v", p.state)
	}
	if p.state.Yaw != 0 {
		t.Errorf("keyboard forward changed yaw: %v", p.state.Yaw)
	}
}

func TestPipelineNeutralWithoutAnyInput(t *testing.T) {
	src := keys.NewSource(strings.NewReader(""))
	p := newPipeline(config.Default(), nil, src)

	p.step(0.05)
	if p.state.Pos.X != 0 || p.state.Pos.Z != 0 || p.state.Yaw != 0 {
		t.Errorf("no input moved the state: %+v", p.state)
	}
}

func TestReportWithoutDevice(t *testing.T) {
	src := keys.NewSource(strings.NewReader(""))
	p := newPipeline(config.Default(), nil, src)

	rep := p.report("game")
	if rep.Conn != "disconnected" {
		t.Errorf("conn = %q, want disconnected", rep.Conn)
	}
	if rep.Joy != nil {
		t.Errorf("report includes a sample that never arrived: %+v", rep.Joy)
	}
	if rep.Mode != "game" {
		t.Errorf("mode = %q, want game", rep.Mode)
	}
}

func TestPlanarControlFallback(t *testing.T) {
	src := keys.NewSource(strings.NewReader("e"))
	p := newPipeline(config.Default(), nil, src)

	waitFor(t, func() bool { return src.Control().Turn == 1 }, "turn key")

	dx, dy := p.planarControl()
	if dx != 1 || dy != 0 {
		t.Errorf("planar fallback = (%v, %v), want (1, 0)", dx, dy)
	}
}
