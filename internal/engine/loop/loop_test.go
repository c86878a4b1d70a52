package loop

import (
	"context"
	"errors"
	"testing"
)

type countingScene struct {
	updates []Frame
	draws   int
}

func (s *countingScene) Update(f Frame) { s.updates = append(s.updates, f) }
func (s *countingScene) Draw() { s.draws++ }

// scriptedSource yields n frames, then quits. onFrame runs before each tick.
type scriptedSource struct {
	n        int
	served   int
	presents int
	onFrame  func(i int)
	err      error
}

func (s *scriptedSource) Next(ctx context.Context) error {
	if s.served == s.n {
		if s.err != nil {
			return s.err
		}
		return ErrQuit
	}
	if s.onFrame != nil {
		s.onFrame(s.served)
	}
	s.served++
	return nil
}

func (s *scriptedSource) Present() { s.presents++ }

func TestTickAdvancesClock(t *testing.T) {
	scene := &countingScene{}
	l := New(scene, 0)
	for i := 0; i < 3; i++ {
		l.Tick()
	}
	if l.Frames() != 3 || scene.draws != 3 {
		t.Errorf("frames=%d draws=%d, want 3", l.Frames(), scene.draws)
	}
	if got := l.Clock(); got < 0.1499 || got > 0.1501 {
		t.Errorf("Clock = %f, want 0.15", got)
	}
	if scene.updates[0].Clock != ClockStep || scene.updates[2].Index != 3 {
		t.Errorf("unexpected frames %+v", scene.updates)
	}
}

func TestStopHaltsEverything(t *testing.T) {
	scene := &countingScene{}
	l := New(scene, 0)
	l.Tick()
	l.Stop()
	for i := 0; i < 5; i++ {
		if l.Tick() {
			t.Fatal("stopped loop drew")
		}
	}
	if l.Clock() != ClockStep || scene.draws != 1 || len(scene.updates) != 1 {
		t.Errorf("clock=%f draws=%d updates=%d", l.Clock(), scene.draws, len(scene.updates))
	}
}

func TestPlayResumesOnce(t *testing.T) {
	scene := &countingScene{}
	l := New(scene, 0)
	l.Stop()
	l.Play()
	l.Play()
	if l.State() != Playing {
		t.Fatalf("state = %v", l.State())
	}
	l.Tick()
	if scene.draws != 1 {
		t.Errorf("draws = %d, want exactly 1 per tick", scene.draws)
	}
}

func TestToggle(t *testing.T) {
	l := New(&countingScene{}, 0)
	l.Toggle()
	if l.Playing() {
		t.Error("toggle from playing should stop")
	}
	l.Toggle()
	if !l.Playing() {
		t.Error("toggle from stopped should play")
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	scene := &countingScene{}
	l := New(scene, 0)
	src := &scriptedSource{n: 10, onFrame: func(i int) {
		if i == 4 {
			l.Stop()
		}
	}}
	if err := l.Run(context.Background(), src); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if scene.draws != 4 || src.presents != 4 {
		t.Errorf("draws=%d presents=%d, want 4", scene.draws, src.presents)
	}
}

func TestRunReturnsSourceError(t *testing.T) {
	boom := errors.New("display lost")
	l := New(&countingScene{}, 0)
	err := l.Run(context.Background(), &scriptedSource{n: 2, err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := New(&countingScene{}, 0)
	src := &scriptedSource{n: 100, onFrame: func(i int) {
		if i == 2 {
			cancel()
		}
	}}
	if err := l.Run(ctx, src); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if l.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", l.Frames())
	}
}
