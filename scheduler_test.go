package aevum

import "testing"

func TestRequestFrameRunsNextTick(t *testing.T) {
	s := NewScene(800, 600)
	ran := 0
	h := s.RequestFrame(func() { ran++ })
	if !h.Pending() || s.PendingFrames() != 1 {
		t.Fatalf("Pending=%v PendingFrames=%d, want true and 1", h.Pending(), s.PendingFrames())
	}
	tickN(t, s, 1)
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if h.Pending() {
		t.Error("handle still pending after running")
	}
	tickN(t, s, 2)
	if ran != 1 {
		t.Errorf("ran = %d after more ticks, want 1", ran)
	}
}

func TestRequestFrameCancel(t *testing.T) {
	s := NewScene(800, 600)
	ran := false
	h := s.RequestFrame(func() { ran = true })
	h.Cancel()
	h.Cancel()
	tickN(t, s, 1)
	if ran {
		t.Error("cancelled callback ran")
	}
	if s.PendingFrames() != 0 {
		t.Errorf("PendingFrames = %d, want 0", s.PendingFrames())
	}
}

func TestRequestFrameFromCallbackWaitsAFrame(t *testing.T) {
	s := NewScene(800, 600)
	var frames []uint64
	s.RequestFrame(func() {
		frames = append(frames, s.Frame())
		s.RequestFrame(func() { frames = append(frames, s.Frame()) })
	})
	tickN(t, s, 3)
	if len(frames) != 2 || frames[1] != frames[0]+1 {
		t.Errorf("frames = %v, want consecutive frames", frames)
	}
}

func TestFrameHandleZeroValue(t *testing.T) {
	var h FrameHandle
	h.Cancel()
	if h.Pending() {
		t.Error("zero FrameHandle should not be pending")
	}
}

func TestFrameSchedulerOrder(t *testing.T) {
	var f frameScheduler
	var got []int
	for i := 0; i < 4; i++ {
		f.request(func() { got = append(got, i) })
	}
	if n := f.flush(); n != 4 {
		t.Errorf("flush ran %d, want 4", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v, want 0..3", got)
		}
	}
	if f.flush() != 0 {
		t.Error("second flush should run nothing")
	}
}
