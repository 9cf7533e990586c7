package aevum

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observeLogs swaps the package logger for an in-memory one for the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = prev })
	return logs
}

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, substr) {
			t.Errorf("panic %q should mention %q", msg, substr)
		}
	}()
	fn()
}

func TestDebugModeDisposedChildPanics(t *testing.T) {
	s := NewScene(800, 600)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	s.Root().AddChild(parent)
	child := NewRect("child", 10, 10, ColorWhite)
	child.Dispose()

	expectPanic(t, "disposed", func() { parent.AddChild(child) })
}

func TestDebugModeDisposedParentPanics(t *testing.T) {
	s := NewScene(800, 600)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	parent.Dispose()
	expectPanic(t, "disposed", func() { parent.AddChild(NewContainer("child")) })
}

func TestDebugModeRemoveFromDisposedPanics(t *testing.T) {
	s := NewScene(800, 600)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.Dispose()
	expectPanic(t, "RemoveChild", func() { parent.RemoveChild(child) })
}

func TestDebugModeOffNoPanic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	child.Dispose()
	// Without debug mode the operation is silently allowed.
	parent.AddChild(child)
}

func TestDebugTreeDepthWarning(t *testing.T) {
	logs := observeLogs(t)
	s := NewScene(800, 600)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := s.Root()
	for i := 0; i < debugMaxTreeDepth+1; i++ {
		c := NewContainer(fmt.Sprintf("level-%d", i))
		n.AddChild(c)
		n = c
	}
	if logs.FilterMessage("tree depth exceeds limit").Len() == 0 {
		t.Error("expected a tree depth warning")
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	logs := observeLogs(t)
	s := NewScene(800, 600)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("wide")
	s.Root().AddChild(parent)
	for i := 0; i <= debugMaxChildCount; i++ {
		parent.AddChild(NewContainer("c"))
	}
	entries := logs.FilterMessage("child count exceeds limit").All()
	if len(entries) != 1 {
		t.Fatalf("warnings = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["node"]; got != "wide" {
		t.Errorf("node field = %v, want wide", got)
	}
}

func TestDebugFrameLog(t *testing.T) {
	logs := observeLogs(t)
	s := NewScene(800, 600)
	s.SetDocumentHeight(1600)
	s.Camera().SetScrollOffset(500)

	tickN(t, s, 1)
	if logs.FilterMessage("frame").Len() != 0 {
		t.Fatal("frame stats logged with debug mode off")
	}

	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	tickN(t, s, 1)
	entries := logs.FilterMessage("frame").All()
	if len(entries) != 1 {
		t.Fatalf("frame logs = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["frame"] != uint64(2) {
		t.Errorf("frame field = %v, want 2", fields["frame"])
	}
	if fields["progress"] != 0.5 {
		t.Errorf("progress field = %v, want 0.5", fields["progress"])
	}
}

func TestNodeFieldDisposed(t *testing.T) {
	n := NewContainer("gone")
	n.Dispose()
	if f := nodeField("node", n); f.String != "gone (disposed)" {
		t.Errorf("field = %q", f.String)
	}
	if f := nodeField("node", nil); f.String != "<nil>" {
		t.Errorf("nil field = %q", f.String)
	}
}
