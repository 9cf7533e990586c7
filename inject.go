package aevum

// syntheticKind identifies an injected event.
type syntheticKind uint8

const (
	syntheticScroll   syntheticKind = iota // relative scroll by dy
	syntheticScrollTo                      // absolute scroll offset
	syntheticClick                         // click at screen coordinates
	syntheticResize                        // viewport resize
	syntheticHover                         // pointer moved to screen coordinates
)

// syntheticEvent is a single injected input event. Screen coordinates are
// used for clicks and hovers and converted to world coordinates through the camera,
// identical to real mouse input.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	amount float64
}

// InjectScroll queues a relative scroll by dy document units. The event is
// consumed on the next frame.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScroll, amount: dy})
}

// InjectScrollTo queues a jump to an absolute scroll offset.
func (s *Scene) InjectScrollTo(offset float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScrollTo, amount: offset})
}

// InjectSmoothScroll queues scroll events that move by total over frames
// frames, one event per frame. Minimum frames is 1.
func (s *Scene) InjectSmoothScroll(total float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := total / float64(frames)
	for i := 0; i < frames; i++ {
		s.InjectScroll(step)
	}
}

// InjectClick queues a left click at the given screen coordinates.
func (s *Scene) InjectClick(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticClick, x: x, y: y})
}

// InjectHover queues a pointer move to the given screen coordinates.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticHover, x: x, y: y})
}

// InjectResize queues a viewport resize.
func (s *Scene) InjectResize(w, h float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticResize, x: w, y: h})
}

// processInjected pops one event from the inject queue and applies it.
func (s *Scene) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticScroll:
		s.camera.ScrollBy(evt.amount)
	case syntheticScrollTo:
		s.camera.SetScrollOffset(evt.amount)
	case syntheticClick:
		s.click(evt.x, evt.y, MouseButtonLeft)
	case syntheticResize:
		s.Resize(evt.x, evt.y)
	case syntheticHover:
		s.hover(evt.x, evt.y)
	}
	return true
}
