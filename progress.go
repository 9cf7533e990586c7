package aevum

// ProgressSample is one frame's reading of the page scroll position.
type ProgressSample struct {
	// Value is Offset/Extent clamped to [0,1]; 0 when Extent is 0.
	Value float64
	// Ordinal increases whenever Offset or Extent changes. Frames where
	// nothing moved repeat the previous ordinal.
	Ordinal uint64
	// Offset is the document-relative scroll offset of the viewport top.
	Offset float64
	// Extent is the scrollable height of the document.
	Extent float64
	// ViewportHeight is the visible document height at the time of sampling.
	ViewportHeight float64
}

// Within returns the sample's progress normalized into r, clamped to [0,1].
func (s ProgressSample) Within(r Range) float64 {
	return r.Local(s.Value)
}

// ProgressSource samples the camera once per frame and fans the sample out
// to its subscribers. It only reads geometry; every subscriber sees the same
// value for a given frame.
type ProgressSource struct {
	cam     *Camera
	last    ProgressSample
	sampled bool
	subs    []*progressSub
}

type progressSub struct {
	fn     func(ProgressSample)
	active bool
}

func newProgressSource(cam *Camera) *ProgressSource {
	return &ProgressSource{cam: cam}
}

// Sample reads the current scroll geometry. The ordinal advances only when
// the geometry differs from the previous sample.
func (p *ProgressSource) Sample() ProgressSample {
	offset := p.cam.ScrollOffset()
	extent := p.cam.ScrollExtent()
	viewH := p.cam.visibleHeight()

	if p.sampled && offset == p.last.Offset && extent == p.last.Extent && viewH == p.last.ViewportHeight {
		return p.last
	}

	var v float64
	if extent > 0 {
		v = clamp01(offset / extent)
	}
	p.last = ProgressSample{
		Value:          v,
		Ordinal:        p.last.Ordinal + 1,
		Offset:         offset,
		Extent:         extent,
		ViewportHeight: viewH,
	}
	p.sampled = true
	return p.last
}

// Current returns the most recently published sample.
func (p *ProgressSource) Current() ProgressSample {
	if !p.sampled {
		return p.Sample()
	}
	return p.last
}

// Subscribe registers fn to receive every published sample, starting with
// the next frame.
func (p *ProgressSource) Subscribe(fn func(ProgressSample)) *Subscription {
	sub := &progressSub{fn: fn, active: true}
	p.subs = append(p.subs, sub)
	return NewSubscription(func() {
		sub.active = false
		sub.fn = nil
		p.remove(sub)
	})
}

// Subscribers returns the number of live subscriptions.
func (p *ProgressSource) Subscribers() int {
	return len(p.subs)
}

// publish samples once and delivers the sample to every subscriber that was
// registered when publishing began. Subscribers disposed mid-delivery are
// skipped.
func (p *ProgressSource) publish() ProgressSample {
	s := p.Sample()
	if len(p.subs) == 0 {
		return s
	}
	snapshot := make([]*progressSub, len(p.subs))
	copy(snapshot, p.subs)
	for _, sub := range snapshot {
		if sub.active && sub.fn != nil {
			sub.fn(s)
		}
	}
	return s
}

func (p *ProgressSource) remove(target *progressSub) {
	for i, sub := range p.subs {
		if sub == target {
			copy(p.subs[i:], p.subs[i+1:])
			p.subs[len(p.subs)-1] = nil
			p.subs = p.subs[:len(p.subs)-1]
			return
		}
	}
}
