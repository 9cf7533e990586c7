package aevum

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Range is a sub-interval of [0,1] with Start < End.
type Range struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// FullRange covers all of [0,1].
var FullRange = Range{Start: 0, End: 1}

// Validate reports ErrInvalidRange unless 0 <= Start < End <= 1.
func (r Range) Validate() error {
	if r.Start < 0 || r.End > 1 || r.Start >= r.End {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// Local maps p into r's own [0,1], clamping outside the range.
func (r Range) Local(p float64) float64 {
	if r.End <= r.Start {
		if p >= r.End {
			return 1
		}
		return 0
	}
	return clamp01((p - r.Start) / (r.End - r.Start))
}

// Interval is an output interval. From may be greater than To.
type Interval struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

// MapValue maps progress p through domain onto out. Outside the domain the
// result clamps to the nearest boundary's output. A nil easing is linear.
func MapValue(p float64, domain Range, out Interval, fn ease.TweenFunc) float64 {
	t := easeUnit(fn, domain.Local(p))
	return out.From + (out.To-out.From)*t
}

// ProgressBinding drives node properties continuously from global scroll
// progress through MapValue.
type ProgressBinding struct {
	Node   *Node
	Domain Range
	Props  map[Property]Interval
	Ease   ease.TweenFunc
}

// bindProgress subscribes b to src. Samples older than the last applied one
// are dropped; nothing is written after the subscription is disposed.
func bindProgress(src *ProgressSource, b ProgressBinding) *Subscription {
	base := captureBase(b.Node)
	var lastOrdinal uint64
	disposed := false

	apply := func(s ProgressSample) {
		if disposed || b.Node.disposed {
			return
		}
		if s.Ordinal < lastOrdinal {
			return
		}
		if s.Ordinal == lastOrdinal && lastOrdinal != 0 {
			return
		}
		lastOrdinal = s.Ordinal
		for p, out := range b.Props {
			writeProperty(b.Node, base, p, MapValue(s.Value, b.Domain, out, b.Ease))
		}
		b.Node.MarkDirty()
	}

	inner := src.Subscribe(apply)
	apply(src.Current())
	return NewSubscription(func() {
		disposed = true
		inner.Dispose()
	})
}
