package aevum

// frameRequest is one pending frame callback.
type frameRequest struct {
	fn        func()
	cancelled bool
}

// FrameHandle cancels a pending frame callback. The zero value is inert.
type FrameHandle struct {
	req *frameRequest
}

// Cancel prevents the callback from running. Safe to call more than once and
// after the callback ran.
func (h FrameHandle) Cancel() {
	if h.req != nil {
		h.req.cancelled = true
		h.req.fn = nil
	}
}

// Pending reports whether the callback is still waiting to run.
func (h FrameHandle) Pending() bool {
	return h.req != nil && h.req.fn != nil && !h.req.cancelled
}

// frameScheduler runs callbacks on the next frame, like an animation-frame
// queue. Callbacks requested while the queue is flushing wait for the
// following frame.
type frameScheduler struct {
	queue []*frameRequest
	spare []*frameRequest
}

func (f *frameScheduler) request(fn func()) FrameHandle {
	req := &frameRequest{fn: fn}
	f.queue = append(f.queue, req)
	return FrameHandle{req: req}
}

// flush runs every callback queued before the call and returns how many ran.
func (f *frameScheduler) flush() int {
	if len(f.queue) == 0 {
		return 0
	}
	run := f.queue
	f.queue = f.spare[:0]
	ran := 0
	for i, req := range run {
		run[i] = nil
		if req.cancelled || req.fn == nil {
			continue
		}
		fn := req.fn
		req.fn = nil
		fn()
		ran++
	}
	f.spare = run[:0]
	return ran
}

func (f *frameScheduler) pending() int {
	n := 0
	for _, req := range f.queue {
		if !req.cancelled && req.fn != nil {
			n++
		}
	}
	return n
}

// RequestFrame schedules fn to run during the next frame, before the scroll
// sample for that frame is published.
func (s *Scene) RequestFrame(fn func()) FrameHandle {
	return s.frames.request(fn)
}
