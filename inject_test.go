package aevum

import "testing"

func TestInjectScrollConsumedNextFrame(t *testing.T) {
	s := newScrollScene(3000)
	s.InjectScroll(120)
	if len(s.injectQueue) != 1 {
		t.Fatalf("queued = %d, want 1", len(s.injectQueue))
	}
	if s.Camera().ScrollOffset() != 0 {
		t.Fatal("injection should not apply before the frame")
	}
	tickN(t, s, 1)
	if got := s.Camera().ScrollOffset(); got != 120 {
		t.Errorf("offset = %v, want 120", got)
	}
	if len(s.injectQueue) != 0 {
		t.Errorf("queued = %d, want 0", len(s.injectQueue))
	}
}

func TestInjectSmoothScrollOneEventPerFrame(t *testing.T) {
	s := newScrollScene(3000)
	s.InjectSmoothScroll(300, 3)
	if len(s.injectQueue) != 3 {
		t.Fatalf("queued = %d, want 3", len(s.injectQueue))
	}
	for i, want := range []float64{100, 200, 300} {
		tickN(t, s, 1)
		if got := s.Camera().ScrollOffset(); got != want {
			t.Errorf("frame %d: offset = %v, want %v", i+1, got, want)
		}
	}
}

func TestInjectSmoothScrollMinimumFrames(t *testing.T) {
	s := newScrollScene(3000)
	s.InjectSmoothScroll(50, 0)
	if len(s.injectQueue) != 1 || s.injectQueue[0].amount != 50 {
		t.Errorf("queue = %+v, want one 50 unit step", s.injectQueue)
	}
}

func TestInjectScrollToClamps(t *testing.T) {
	s := newScrollScene(3000)
	s.InjectScrollTo(9000)
	s.InjectScroll(-5000)
	tickN(t, s, 1)
	if got := s.Camera().ScrollOffset(); got != 2400 {
		t.Errorf("offset = %v, want 2400", got)
	}
	tickN(t, s, 1)
	if got := s.Camera().ScrollOffset(); got != 0 {
		t.Errorf("offset = %v, want 0", got)
	}
}

func TestInjectScrollVisibleToProgressSameFrame(t *testing.T) {
	s := newScrollScene(3000)
	var got []float64
	s.Progress().Subscribe(func(p ProgressSample) { got = append(got, p.Value) })

	s.InjectScrollTo(600)
	tickN(t, s, 1)
	if len(got) == 0 || got[len(got)-1] != 0.25 {
		t.Errorf("progress = %v, want last 0.25", got)
	}
}

func TestInjectClick(t *testing.T) {
	s := newScrollScene(3000)
	btn := linkedRect(s.Root(), "btn", 0, 0, 100, 100, "")
	clicks := 0
	btn.OnClick = func(ClickContext) { clicks++ }

	s.InjectClick(50, 50)
	if clicks != 0 {
		t.Fatal("click fired before the frame")
	}
	tickN(t, s, 1)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestInjectResize(t *testing.T) {
	s := newScrollScene(3000)
	s.InjectResize(1024, 1000)
	tickN(t, s, 1)
	if s.Camera().Viewport.Width != 1024 || s.Camera().Viewport.Height != 1000 {
		t.Errorf("viewport = %+v", s.Camera().Viewport)
	}
	if got := s.Camera().ScrollExtent(); got != 2000 {
		t.Errorf("ScrollExtent = %v, want 2000", got)
	}
}

func TestInjectEventsInOrder(t *testing.T) {
	s := newScrollScene(3000)
	s.InjectScroll(100)
	s.InjectScroll(50)
	s.InjectScrollTo(10)
	var offsets []float64
	for i := 0; i < 3; i++ {
		tickN(t, s, 1)
		offsets = append(offsets, s.Camera().ScrollOffset())
	}
	if offsets[0] != 100 || offsets[1] != 150 || offsets[2] != 10 {
		t.Errorf("offsets = %v, want [100 150 10]", offsets)
	}
}

func TestInjectHover(t *testing.T) {
	s := newScrollScene(3000)
	card := NewRect("card", 100, 100, ColorWhite)
	card.Interactable = true
	entered := 0
	card.OnHover = func(over bool) {
		if over {
			entered++
		}
	}
	s.Root().AddChild(card)

	s.InjectHover(50, 50)
	if entered != 0 {
		t.Fatal("injection should not apply before the frame")
	}
	tickN(t, s, 1)
	if entered != 1 || s.Hovered() != card {
		t.Errorf("entered=%d Hovered=%v, want 1 and card", entered, s.Hovered())
	}
}
