package easel

// FrameStats describes one fired frame.
type FrameStats struct {
	// Number counts fired frames starting at 1.
	Number   uint64
	Rendered bool

	DeltaMs    float64
	DeltaKnown bool

	FPS      float64
	FPSKnown bool
}

// Observer receives frame loop events. Methods are called synchronously from
// the frame callback and must not block.
type Observer interface {
	// FrameScheduled is called after every frame request.
	FrameScheduled()
	// FrameFired is called once per fired frame, before rendering.
	FrameFired(stats FrameStats)
	// FrameCancelled is called when Close withdraws an outstanding request.
	FrameCancelled()
	// PauseChanged is called after every pause transition.
	PauseChanged(paused bool)
}

type nopObserver struct{}

func (nopObserver) FrameScheduled()       {}
func (nopObserver) FrameFired(FrameStats) {}
func (nopObserver) FrameCancelled()       {}
func (nopObserver) PauseChanged(bool)     {}
