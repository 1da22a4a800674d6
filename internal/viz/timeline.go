package viz

import (
	"time"

	"github.com/san-kum/helixviz/internal/scene"
)

// Timeline replays a scene's frames against a wall clock. Frame 0 is the
// initial state; frames 1..Len are the scene frames.
type Timeline struct {
	frames  int
	delay   time.Duration
	frame   int
	playing bool
	acc     time.Duration
}

func NewTimeline(sc *scene.Scene) *Timeline {
	return &Timeline{frames: len(sc.Frames), delay: sc.FrameDuration()}
}

func (t *Timeline) Frame() int           { return t.frame }
func (t *Timeline) Len() int             { return t.frames }
func (t *Timeline) Playing() bool        { return t.playing }
func (t *Timeline) Delay() time.Duration { return t.delay }

// Play starts playback from the current frame, or from the beginning when
// the last frame is already showing.
func (t *Timeline) Play() {
	if t.frame >= t.frames {
		t.frame = 0
	}
	t.playing = t.frames > 0
	t.acc = 0
}

func (t *Timeline) Pause() {
	t.playing = false
	t.acc = 0
}

func (t *Timeline) Toggle() {
	if t.playing {
		t.Pause()
	} else {
		t.Play()
	}
}

// Seek jumps to frame k, clamped to the valid range. Playback continues.
func (t *Timeline) Seek(k int) {
	t.frame = max(0, min(k, t.frames))
	t.acc = 0
}

func (t *Timeline) Step(delta int) { t.Seek(t.frame + delta) }

func (t *Timeline) Reset() {
	t.Pause()
	t.frame = 0
}

// Advance moves the clock forward by elapsed and returns the number of
// frames shown. A zero delay shows one frame per call. Playback pauses on
// the last frame.
func (t *Timeline) Advance(elapsed time.Duration) int {
	if !t.playing {
		return 0
	}

	n := 1
	if t.delay > 0 {
		t.acc += elapsed
		n = int(t.acc / t.delay)
		t.acc -= time.Duration(n) * t.delay
	}

	moved := min(n, t.frames-t.frame)
	t.frame += moved
	if t.frame >= t.frames {
		t.Pause()
	}
	return moved
}
