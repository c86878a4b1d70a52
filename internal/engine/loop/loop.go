// Package loop drives the per-frame update and draw of a scene.
package loop

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tubescene/internal/logger"
)

// ClockStep is how far the clock advances per tick. Animation is tied to
// frames, not wall time.
const ClockStep float32 = 0.05

// State is the play state of a Loop.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// ErrQuit is returned by a FrameSource when the host wants to exit.
var ErrQuit = errors.New("quit requested")

// Frame is passed to Scene.Update.
type Frame struct {
	Clock float32 // accumulated clock after this tick's advance
	Index uint64  // ticks so far, starting at 1
}

// Scene is what the loop updates and draws each tick.
type Scene interface {
	Update(Frame)
	Draw()
}

// FrameSource paces the loop. Next blocks until the display is ready for the
// next frame, handling host events on the way, and returns ErrQuit when the
// host is closing. Present shows what was drawn.
type FrameSource interface {
	Next(ctx context.Context) error
	Present()
}

// Loop owns the clock and the play state. It is driven from one goroutine.
type Loop struct {
	scene Scene
	step  float32
	state State
	clock float32
	index uint64

	log *zap.Logger
}

// New creates a loop in the Playing state.
func New(scene Scene, step float32) *Loop {
	if step <= 0 {
		step = ClockStep
	}
	return &Loop{
		scene: scene,
		step:  step,
		state: Playing,
		log:   logger.Named("loop"),
	}
}

// State returns the current play state.
func (l *Loop) State() State { return l.state }

// Playing reports whether ticks advance the clock.
func (l *Loop) Playing() bool { return l.state == Playing }

// Clock returns the accumulated clock.
func (l *Loop) Clock() float32 { return l.clock }

// Frames returns how many ticks have run.
func (l *Loop) Frames() uint64 { return l.index }

// Play resumes ticking. Playing twice changes nothing.
func (l *Loop) Play() {
	if l.state == Playing {
		return
	}
	l.state = Playing
	l.log.Debug("play", zap.Float32("clock", l.clock))
}

// Stop pauses the loop. The next tick does nothing.
func (l *Loop) Stop() {
	if l.state == Stopped {
		return
	}
	l.state = Stopped
	l.log.Debug("stop", zap.Float32("clock", l.clock))
}

// Toggle flips between playing and stopped.
func (l *Loop) Toggle() {
	if l.state == Playing {
		l.Stop()
	} else {
		l.Play()
	}
}

// Tick advances the clock, updates and draws the scene. It reports whether
// anything was drawn; a stopped loop draws nothing.
func (l *Loop) Tick() bool {
	if l.state != Playing {
		return false
	}
	l.clock += l.step
	l.index++
	l.scene.Update(Frame{Clock: l.clock, Index: l.index})
	l.scene.Draw()
	return true
}

// Run ticks once per frame from src until ctx is done or src reports ErrQuit.
// Frames are presented only when a tick drew something.
func (l *Loop) Run(ctx context.Context, src FrameSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := src.Next(ctx); err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
				l.log.Info("loop finished", zap.Uint64("frames", l.index))
				return nil
			}
			return fmt.Errorf("waiting for frame: %w", err)
		}
		if l.Tick() {
			src.Present()
		}
	}
}
