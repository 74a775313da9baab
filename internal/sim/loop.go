// Package sim drives the fixed-order frame: clicks, physics, objects, controls, render.
package sim

import (
	"card-toss/internal/interactable"
	"card-toss/internal/logger"
	"card-toss/internal/physics"
	"card-toss/internal/picking"
	"card-toss/internal/scene"
)

// DefaultStep is the fixed physics timestep in seconds.
const DefaultStep = float32(1.0 / 60)

// Context is the explicit state shared by the loop and its components. It is
// built once by the process and passed down; nothing reads it globally.
type Context struct {
	Scene   *scene.Scene
	World   *physics.World
	Picker  *picking.Controller
	Objects []*interactable.Object
	Log     *logger.Logger
}

// Controls moves the camera from the latest input.
type Controls interface {
	Update(c *scene.Camera)
}

// Renderer draws the scene through its camera.
type Renderer interface {
	Render(s *scene.Scene)
}

// Host supplies frames and input. PollInput runs between ticks; clicks it
// produces must be queued on sink so they apply at the start of the next tick.
type Host interface {
	ShouldClose() bool
	PollInput(camera scene.Camera, sink ClickSink)
}

// ClickSink receives pointer presses.
type ClickSink interface {
	Enqueue(click picking.Click)
}

// Loop runs one tick per frame with a fixed dt.
type Loop struct {
	ctx      *Context
	step     float32
	controls Controls
	renderer Renderer
	ticks    uint64
}

// NewLoop returns a loop over ctx. A non-positive step falls back to DefaultStep.
func NewLoop(ctx *Context, step float32, controls Controls, renderer Renderer) *Loop {
	if step <= 0 {
		step = DefaultStep
	}
	if ctx.Picker == nil {
		ctx.Picker = picking.New(ctx.Log)
	}
	return &Loop{ctx: ctx, step: step, controls: controls, renderer: renderer}
}

// Step returns the fixed timestep.
func (l *Loop) Step() float32 { return l.step }

// Ticks returns how many ticks have completed.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Tick runs one frame to completion: queued clicks, physics step, object
// updates, camera controls, render.
func (l *Loop) Tick() {
	s := l.ctx.Scene
	l.ctx.Picker.Flush(s)

	l.ctx.World.Step(l.step)

	cam := s.Camera.Pose()
	for _, o := range l.ctx.Objects {
		o.Update(cam)
	}

	if l.controls != nil {
		l.controls.Update(&s.Camera)
	}
	if l.renderer != nil {
		l.renderer.Render(s)
	}
	l.ticks++
}

// Run ticks until the host asks to close.
func (l *Loop) Run(host Host) {
	if l.ctx.Log != nil {
		l.ctx.Log.Logf("loop started: %d cards, step %.4fs", len(l.ctx.Objects), l.step)
	}
	for !host.ShouldClose() {
		host.PollInput(l.ctx.Scene.Camera, l.ctx.Picker)
		l.Tick()
	}
	if l.ctx.Log != nil {
		l.ctx.Log.Logf("loop stopped after %d ticks", l.ticks)
	}
}
