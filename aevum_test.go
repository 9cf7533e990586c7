package aevum

import (
	"os"
	"testing"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	Init(InitConfig{Logger: zap.NewNop()})
	os.Exit(m.Run())
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"right edge", 110, 40, true},
		{"top edge", 50, 20, true},
		{"bottom edge", 50, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
		{"far outside", 999, 999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"adjacent bottom", Rect{10, 110, 50, 50}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint above", Rect{10, -100, 50, 50}, false},
		{"disjoint below", Rect{10, 111, 50, 50}, false},
		{"same rect", Rect{10, 10, 100, 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

// --- Enums ---

func TestEnumValues(t *testing.T) {
	if NodeTypeContainer != 0 || NodeTypeRect != 1 || NodeTypeText != 2 {
		t.Errorf("NodeType values = %d,%d,%d, want 0,1,2", NodeTypeContainer, NodeTypeRect, NodeTypeText)
	}
	if MouseButtonLeft != 0 {
		t.Errorf("MouseButtonLeft = %d, want 0", MouseButtonLeft)
	}
	if TimelineIdle != 0 {
		t.Errorf("TimelineIdle = %d, want 0", TimelineIdle)
	}
	if TextAlignRight != 2 {
		t.Errorf("TextAlignRight = %d, want 2", TextAlignRight)
	}
}

func TestStringers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{TimelineScrubbing.String(), "scrubbing"},
		{TimelineSettled.String(), "settled"},
		{EventRevealScheduled.String(), "reveal-scheduled"},
		{EventEntranceCompleted.String(), "entrance-completed"},
		{ClaimTimeline.String(), "scrub timeline"},
		{ClaimReveal.String(), "reveal group"},
		{PropAlpha.String(), "alpha"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

// --- Color ---

func TestColorWhite(t *testing.T) {
	if ColorWhite.R != 1 || ColorWhite.G != 1 || ColorWhite.B != 1 || ColorWhite.A != 1 {
		t.Errorf("ColorWhite = %v, want {1,1,1,1}", ColorWhite)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"ff000080", Color{1, 0, 0, 128.0 / 255}},
		{" #00ff00 ", Color{0, 1, 0, 1}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "#1234567"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q) should fail", in)
		}
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{1, 1, 1, 0.5}.toRGBA()
	if got.A != 127 || got.R != 127 {
		t.Errorf("toRGBA = %v, want premultiplied 127s", got)
	}
}

// --- Benchmarks ---

func BenchmarkRectContains(b *testing.B) {
	r := Rect{0, 0, 100, 100}
	b.ReportAllocs()
	for b.Loop() {
		_ = r.Contains(50, 50)
	}
}

func BenchmarkRectIntersects(b *testing.B) {
	r1 := Rect{0, 0, 100, 100}
	r2 := Rect{50, 50, 100, 100}
	b.ReportAllocs()
	for b.Loop() {
		_ = r1.Intersects(r2)
	}
}
