package aevum

import (
	"fmt"

	"go.uber.org/zap"
)

// MountHeroAnimation wires the hero: global scroll progress scales and dims
// the hero content, the title scrubs across the hero section's own scroll
// span, the subtitle, actions and showcase play their entrances, and the
// feature cards reveal as they scroll into view.
//
// Missing targets are skipped. The handle is usable even when err is non-nil;
// Release tears down whatever was set up.
func MountHeroAnimation(e *Engine, hero HeroTargets) (*MountHandle, error) {
	if e == nil {
		return nil, fmt.Errorf("mount hero: %w", ErrNotInitialized)
	}
	m := e.motion.Hero
	h, err := Mount(
		Use("hero progress", func() (*Subscription, error) {
			return e.BindProgress(ProgressBinding{
				Node:   hero.Content,
				Domain: m.Progress.Domain,
				Props: map[Property]Interval{
					PropScale: m.Progress.Scale,
					PropAlpha: m.Progress.Opacity,
				},
				Ease: easeOrLinear(m.Progress.Ease),
			})
		}),
		Use("hero title", func() (*Subscription, error) {
			_, sub, err := e.NewScrubTimeline(TimelineConfig{
				Name:    "hero title",
				Trigger: hero.Section,
				Start:   m.Title.Start,
				End:     m.Title.End,
				Steps: []ScrubStep{{
					Target: hero.Title,
					Range:  m.Title.Range,
					To:     m.Title.To,
					Ease:   easeOrLinear(m.Title.Ease),
				}},
			})
			return sub, err
		}),
		e.entranceReg("hero subtitle", hero.Subtitle, m.Subtitle),
		e.entranceReg("hero actions", hero.Actions, m.Actions),
		e.entranceReg("hero showcase", hero.Showcase, m.Showcase),
		e.revealReg("features", hero.Features, e.motion.Features),
	)
	if err != nil {
		e.log.Warn("hero mount incomplete", zap.Error(err))
	}
	return h, err
}

// MountHeaderEntrance plays the header's one-shot entrance: the bar slides
// down and fades in, then the logo, the actions, and the login label follow.
func MountHeaderEntrance(e *Engine, header HeaderTargets) (*MountHandle, error) {
	if e == nil {
		return nil, fmt.Errorf("mount header: %w", ErrNotInitialized)
	}
	m := e.motion.Header
	h, err := Mount(
		e.entranceReg("header bar", header.Bar, m.Bar),
		e.entranceReg("header logo", header.Logo, m.Logo),
		e.entranceReg("header actions", header.Actions, m.Actions),
		e.entranceReg("header label", header.Label, m.Label),
	)
	if err != nil {
		e.log.Warn("header mount incomplete", zap.Error(err))
	}
	return h, err
}

// MountSectionReveals reveals each section's heading and, in a separate
// group, its cards. Card groups use the motion config named after the
// section, falling back to the heading motion.
func MountSectionReveals(e *Engine, sections []SectionTargets) (*MountHandle, error) {
	if e == nil {
		return nil, fmt.Errorf("mount sections: %w", ErrNotInitialized)
	}
	var regs []Registration
	for _, s := range sections {
		if s.Heading != nil {
			regs = append(regs, e.revealReg(s.Name+" heading", []*Node{s.Heading}, e.motion.Headings))
		}
		if len(s.Cards) == 0 {
			continue
		}
		m, ok := e.motion.Sections[s.Name]
		if !ok {
			e.log.Debug("no motion for section, using heading motion", zap.String("section", s.Name))
			m = e.motion.Headings
		}
		regs = append(regs, e.revealReg(s.Name+" cards", s.Cards, m))
	}
	h, err := Mount(regs...)
	if err != nil {
		e.log.Warn("section mount incomplete", zap.Error(err))
	}
	return h, err
}

// MountCardHover lifts each card while the pointer is over it. A card still
// revealing ignores the pointer until its reveal lands.
func MountCardHover(e *Engine, cards []*Node) (*MountHandle, error) {
	if e == nil {
		return nil, fmt.Errorf("mount hover: %w", ErrNotInitialized)
	}
	m := e.motion.Hover
	regs := make([]Registration, 0, len(cards))
	for _, c := range cards {
		c := c
		name := "hover"
		if c != nil {
			name += " " + c.Name
		}
		regs = append(regs, Use(name, func() (*Subscription, error) {
			return e.BindHover(HoverLift{Node: c, Lift: m.Lift, Duration: m.Duration, Ease: easeOrLinear(m.Ease)})
		}))
	}
	h, err := Mount(regs...)
	if err != nil {
		e.log.Warn("hover mount incomplete", zap.Error(err))
	}
	return h, err
}

// MountPage mounts the header, hero, section, and card hover animations of a
// built page under one handle.
func MountPage(e *Engine, p *Page) (*MountHandle, error) {
	return Mount(
		nested("header", func() (*MountHandle, error) { return MountHeaderEntrance(e, p.Header) }),
		nested("hero", func() (*MountHandle, error) { return MountHeroAnimation(e, p.Hero) }),
		nested("sections", func() (*MountHandle, error) { return MountSectionReveals(e, p.Sections) }),
		nested("hover", func() (*MountHandle, error) { return MountCardHover(e, p.Cards()) }),
	)
}

// nested adapts a mount function into a registration owning its handle.
func nested(name string, mount func() (*MountHandle, error)) Registration {
	var h *MountHandle
	return Registration{
		Name: name,
		Setup: func() error {
			var err error
			h, err = mount()
			return err
		},
		Teardown: func() { h.Release() },
	}
}

func (e *Engine) entranceReg(name string, n *Node, m EntranceMotion) Registration {
	return Use(name, func() (*Subscription, error) {
		return e.PlayEntrance(Entrance{
			Target:   AnimationTarget{Node: n, Initial: m.From, Final: m.To},
			Duration: m.Duration,
			Delay:    m.Delay,
			Ease:     easeOrLinear(m.Ease),
		})
	})
}

func (e *Engine) revealReg(name string, nodes []*Node, m RevealMotion) Registration {
	return Use(name, func() (*Subscription, error) {
		members := make([]AnimationTarget, len(nodes))
		for i, n := range nodes {
			members[i] = AnimationTarget{Node: n, Initial: m.From, Final: m.To}
		}
		return e.reveal.Register(RevealGroup{
			Name:        name,
			Members:     members,
			Threshold:   m.Threshold,
			Margin:      m.Margin,
			PlayOnce:    m.Once,
			StaggerStep: m.Stagger,
			Duration:    m.Duration,
			Ease:        easeOrLinear(m.Ease),
		})
	})
}
