package aevum

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// easings maps config names to easing functions. Populated by Init; read-only
// afterwards.
var easings = map[string]ease.TweenFunc{}

// defaultEasings covers the names used by the landing page motion config.
// The powerN names follow the GSAP convention (power1 = quad, power2 = cubic,
// power3 = quart, power4 = quint).
func defaultEasings() map[string]ease.TweenFunc {
	return map[string]ease.TweenFunc{
		"linear":       ease.Linear,
		"none":         ease.Linear,
		"easein":       ease.InQuad,
		"easeout":      ease.OutQuad,
		"easeinout":    ease.InOutQuad,
		"power1.in":    ease.InQuad,
		"power1.out":   ease.OutQuad,
		"power1.inout": ease.InOutQuad,
		"power2.in":    ease.InCubic,
		"power2.out":   ease.OutCubic,
		"power2.inout": ease.InOutCubic,
		"power3.in":    ease.InQuart,
		"power3.out":   ease.OutQuart,
		"power3.inout": ease.InOutQuart,
		"power4.in":    ease.InQuint,
		"power4.out":   ease.OutQuint,
		"power4.inout": ease.InOutQuint,
		"sine.inout":   ease.InOutSine,
		"back.out":     ease.OutBack,
		"elastic.out":  ease.OutElastic,
		"bounce.out":   ease.OutBounce,
	}
}

// builtinEasings backs lookups made before Init, such as config validation.
var builtinEasings = defaultEasings()

// Ease looks up a named easing function. The empty name is linear.
func Ease(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	table := easings
	if !Initialized() {
		table = builtinEasings
	}
	fn, ok := table[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("aevum: unknown easing %q", name)
	}
	return fn, nil
}

// easeUnit evaluates fn over the unit interval.
func easeUnit(fn ease.TweenFunc, t float64) float64 {
	if fn == nil {
		return t
	}
	return float64(fn(float32(t), 0, 1, 1))
}
