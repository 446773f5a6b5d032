package app

import (
	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/joy"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/keys"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/motion"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/sampler"
)

// pipeline wires the input sampler to the motion integrator for one
// session. Exactly one writer advances the state (step, once per frame);
// everything downstream reads snapshots.
type pipeline struct {
	smp      *sampler.Sampler // nil when no device could be opened
	fallback *keys.Source
	params   motion.Params

	state   motion.State
	control motion.Control

	last       joy.Sample
	haveSample bool
}

func newPipeline(cfg *config.Config, smp *sampler.Sampler, fallback *keys.Source) *pipeline {
	return &pipeline{
		smp:      smp,
		fallback: fallback,
		params: motion.Params{
			AxisMin:         float64(cfg.Input.AxisMin),
			AxisMax:         float64(cfg.Input.AxisMax),
			Deadzone:        cfg.Input.Deadzone,
			MoveSensitivity: cfg.Input.MoveSensitivity,
			TurnSensitivity: cfg.Input.TurnSensitivity,
			ForwardSpeed:    cfg.Motion.ForwardSpeed,
			RotSpeed:        cfg.Motion.RotSpeed,
			MaxDT:           cfg.Motion.MaxDT,
		},
	}
}

func (p *pipeline) connected() bool {
	return p.smp != nil && p.smp.State() == sampler.Connected
}

// drain applies every sample queued since the last frame in arrival
// order; the control vector ends up reflecting the most recent one.
func (p *pipeline) drain() {
	if p.smp == nil {
		return
	}
	for _, s := range p.smp.Poll() {
		p.last = s
		p.haveSample = true
		p.control = motion.ControlFrom(s, p.params)
	}
}

// activeControl picks the control source for this frame: the device while
// it is connected, the local fallback otherwise (including after a
// mid-session device loss). Between device samples the last device control
// keeps driving, which is what makes N silent frames straight-line
// constant-velocity motion.
func (p *pipeline) activeControl() motion.Control {
	if p.connected() {
		return p.control
	}
	return p.fallback.Control()
}

// step advances one frame: drain the queue, pick the control source and
// integrate.
func (p *pipeline) step(dt float64) motion.Control {
	p.drain()
	ctrl := p.activeControl()
	p.state = motion.Integrate(p.state, ctrl, dt, p.params)
	return ctrl
}

// planarControl is the 2D variant of step's control selection: raw
// normalized axes, no Y inversion, stick deflection maps straight to
// screen-plane velocity.
func (p *pipeline) planarControl() (dx, dy float64) {
	p.drain()
	if p.connected() {
		dx = motion.Normalize(float64(p.last.X), p.params.AxisMin, p.params.AxisMax, p.params.Deadzone)
		dy = motion.Normalize(float64(p.last.Y), p.params.AxisMin, p.params.AxisMax, p.params.Deadzone)
		return dx, dy
	}
	c := p.fallback.Control()
	return c.Turn, -c.Forward
}

func (p *pipeline) pressed() bool {
	return p.haveSample && p.last.HasButton && p.last.Button != 0
}

func (p *pipeline) report(mode string) StateReport {
	rep := StateReport{
		Mode:    mode,
		State:   p.state,
		Control: p.activeControl(),
		Conn:    sampler.Disconnected.String(),
	}
	if p.smp != nil {
		rep.Conn = p.smp.State().String()
		rep.Port = p.smp.Port()
		rep.Discarded = p.smp.Discarded()
	}
	if p.haveSample {
		s := p.last
		rep.Joy = &s
	}
	return rep
}
