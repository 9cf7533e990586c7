package aevum

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Subscription is a disposer bound to exactly one registered observer or
// listener. Dispose is idempotent and removes only what the registration
// created. A nil *Subscription is valid and inert.
type Subscription struct {
	dispose func()
	onDone  func()
	done    bool
}

// NewSubscription wraps fn as a Subscription.
func NewSubscription(fn func()) *Subscription {
	return &Subscription{dispose: fn}
}

// noopSubscription returns an already-disposed subscription.
func noopSubscription() *Subscription {
	return &Subscription{done: true}
}

// Dispose runs the disposer on the first call. Later calls do nothing.
func (s *Subscription) Dispose() {
	if s == nil || s.done {
		return
	}
	s.done = true
	fn, done := s.dispose, s.onDone
	s.dispose, s.onDone = nil, nil
	if fn != nil {
		fn()
	}
	if done != nil {
		done()
	}
}

// Active reports whether Dispose has not run yet.
func (s *Subscription) Active() bool {
	return s != nil && !s.done
}

// Registration is a setup/teardown pair mounted by a MountHandle. Teardown
// runs on release even when Setup failed, so it must tolerate partially
// created state.
type Registration struct {
	Name     string
	Setup    func() error
	Teardown func()
}

// Use adapts a setup that returns a Subscription into a Registration whose
// teardown disposes it.
func Use(name string, setup func() (*Subscription, error)) Registration {
	var sub *Subscription
	return Registration{
		Name: name,
		Setup: func() error {
			var err error
			sub, err = setup()
			return err
		},
		Teardown: func() { sub.Dispose() },
	}
}

// MountHandle owns the registrations of one mounted animation set.
type MountHandle struct {
	regs     []Registration
	released bool
	log      *zap.Logger
}

// Mount runs each registration's setup in order. A failing setup does not
// stop its siblings; the returned error joins every setup failure and the
// handle is always usable. Release tears everything down.
func Mount(regs ...Registration) (*MountHandle, error) {
	h := &MountHandle{log: logger}
	var errs []error
	for _, r := range regs {
		if err := h.add(r); err != nil {
			errs = append(errs, err)
		}
	}
	return h, errors.Join(errs...)
}

// Add mounts one more registration. It fails with ErrReleased after Release
// instead of leaking a listener; the setup does not run in that case.
func (h *MountHandle) Add(r Registration) error {
	if h.released {
		return fmt.Errorf("add %q: %w", r.Name, ErrReleased)
	}
	return h.add(r)
}

func (h *MountHandle) add(r Registration) error {
	h.regs = append(h.regs, r)
	if r.Setup == nil {
		return nil
	}
	if err := r.Setup(); err != nil {
		h.log.Debug("registration setup failed", zap.String("registration", r.Name), zap.Error(err))
		return fmt.Errorf("setup %q: %w", r.Name, err)
	}
	return nil
}

// Release invokes every teardown exactly once in reverse registration order.
// Calling it again has no effect.
func (h *MountHandle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	for i := len(h.regs) - 1; i >= 0; i-- {
		if td := h.regs[i].Teardown; td != nil {
			td()
		}
	}
	h.log.Debug("mount released", zap.Int("registrations", len(h.regs)))
	h.regs = nil
}

// Released reports whether Release has been called.
func (h *MountHandle) Released() bool {
	return h.released
}

// Len returns the number of registrations currently owned.
func (h *MountHandle) Len() int {
	return len(h.regs)
}
