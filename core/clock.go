package core

import "fmt"

// FrameClock turns a monotonic time source into per-frame deltas.
type FrameClock struct {
	now       func() float64
	last      float64
	started   bool
	Elapsed   float64 // seconds since Start
	startTime float64
}

func NewFrameClock(now func() float64) *FrameClock {
	return &FrameClock{now: now}
}

func (c *FrameClock) Start() {
	c.startTime = c.now()
	c.last = c.startTime
	c.Elapsed = 0
	c.started = true
}

// Tick returns the seconds since the previous Tick (or Start).
func (c *FrameClock) Tick() float32 {
	if !c.started {
		c.Start()
		return 0
	}
	t := c.now()
	dt := t - c.last
	c.last = t
	c.Elapsed = t - c.startTime
	return float32(dt)
}

// FrameStats counts frames over one-second windows.
type FrameStats struct {
	frames      int
	accumulated float64
	FPS         int
	MSPerFrame  float64
}

// Add records a frame and reports whether a new one-second window closed.
func (s *FrameStats) Add(dt float64) bool {
	s.frames++
	s.accumulated += dt
	if s.accumulated < 1.0 {
		return false
	}
	s.FPS = s.frames
	s.MSPerFrame = 1000.0 / float64(s.frames)
	s.frames = 0
	s.accumulated -= 1.0
	return true
}

func (s *FrameStats) String() string {
	return fmt.Sprintf("%.2f ms/frame, %d fps", s.MSPerFrame, s.FPS)
}
